package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/gotruss/internal/assembly"
	"github.com/alexiusacademia/gotruss/internal/materials"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

var runTime = time.Date(2024, time.March, 7, 14, 5, 9, 0, time.UTC)

func sampleResult(t *testing.T) *assembly.Result {
	t.Helper()
	cfg := assembly.Config{
		SafetyFactor: 2.5,
		Members: [4]assembly.MemberSpec{
			assembly.ABCD: {Length: 60, Diameter: 0.375, Material: "steel"},
			assembly.AC:   {Length: 24, Diameter: 0.375, Material: "steel"},
			assembly.EB:   {Diameter: 0.5, Material: "steel"},
			assembly.FD:   {Diameter: 0.5, Material: "steel"},
		},
	}
	res, err := assembly.Evaluate(cfg, materials.Builtin())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return res
}

func TestStamp(t *testing.T) {
	if got := Stamp(runTime); got != "070324_140509" {
		t.Errorf("Stamp = %q, want 070324_140509", got)
	}

	p := PathsFor("out", runTime)
	want := Paths{
		Figure:  filepath.Join("out", "070324_140509.png"),
		RunInfo: filepath.Join("out", "070324_140509_run_info.txt"),
		PDF:     filepath.Join("out", "070324_140509_report.pdf"),
		XLSX:    filepath.Join("out", "070324_140509_report.xlsx"),
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("PathsFor mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRunInfo(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	if err := WriteRunInfo(&buf, res); err != nil {
		t.Fatalf("WriteRunInfo: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "Member dictionary\n") {
		t.Errorf("missing header:\n%s", out)
	}
	for _, want := range []string{
		"length:\nABCD: 60\nAC: 24\nEB: 0\nFD: 0\n",
		"fraction:\nABCD: 1.2\nAC: 0.75\nEB: 1\nFD: 1\n",
		"safety_factor:\n",
		"AC: 2.500\n",
		"sensitivity:\n",
		"[0.9901, -1.0101]",
		"first_failure_member: [AC]\n",
		"height: 9\n",
		"target_safety_factor: 2.5\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("run info missing %q:\n%s", want, out)
		}
	}

	var again bytes.Buffer
	if err := WriteRunInfo(&again, res); err != nil {
		t.Fatalf("WriteRunInfo: %v", err)
	}
	if diff := cmp.Diff(out, again.String()); diff != "" {
		t.Errorf("run info is not deterministic (-first +second):\n%s", diff)
	}
}

func TestFigureData(t *testing.T) {
	res := sampleResult(t)
	data := FigureData(res)

	if len(data.Members) != 4 {
		t.Fatalf("got %d members, want 4", len(data.Members))
	}
	if got := data.Governing(); !cmp.Equal(got, []string{"AC"}) {
		t.Errorf("Governing = %v, want [AC]", got)
	}
	if data.AllowableLoad != res.AllowableLoad || data.TargetFactor != 2.5 {
		t.Errorf("allowable %v target %v", data.AllowableLoad, data.TargetFactor)
	}
	if len(data.Members[assembly.EB].Points) != len(res.Members[assembly.EB].Points) {
		t.Errorf("EB points not carried over")
	}
}

func TestSave(t *testing.T) {
	res := sampleResult(t)
	dir := filepath.Join(t.TempDir(), "save_data")

	got, err := Save(res, Options{Dir: dir, Figure: true, PDF: true, XLSX: true, Now: runTime})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if diff := cmp.Diff(PathsFor(dir, runTime), got); diff != "" {
		t.Errorf("written paths (-want +got):\n%s", diff)
	}
	for _, p := range []string{got.Figure, got.RunInfo, got.PDF, got.XLSX} {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("stat %s: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}

	pdf, err := os.ReadFile(got.PDF)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Errorf("pdf report has no PDF header")
	}
}

func TestSave_RunInfoOnly(t *testing.T) {
	res := sampleResult(t)
	dir := t.TempDir()

	got, err := Save(res, Options{Dir: dir, Now: runTime})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got.Figure != "" || got.PDF != "" || got.XLSX != "" {
		t.Errorf("unexpected outputs: %+v", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "070324_140509_run_info.txt" {
		t.Errorf("directory holds %v", entries)
	}
}

func TestWriteXLSX(t *testing.T) {
	res := sampleResult(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteXLSX(path, res); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{SheetMembers, SheetSummary}, f.GetSheetList()); diff != "" {
		t.Errorf("sheets (-want +got):\n%s", diff)
	}

	rows, err := f.GetRows(SheetMembers)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d member rows, want header plus 4", len(rows))
	}
	var names []string
	for _, r := range rows[1:] {
		names = append(names, r[0])
	}
	if diff := cmp.Diff([]string{"ABCD", "AC", "EB", "FD"}, names); diff != "" {
		t.Errorf("member order (-want +got):\n%s", diff)
	}
	if governs := rows[2][len(memberColumns)-1]; governs != "TRUE" {
		t.Errorf("AC governs cell = %q, want TRUE", governs)
	}

	v, err := f.GetCellValue(SheetSummary, "B5")
	if err != nil {
		t.Fatal(err)
	}
	if v != "[AC]" {
		t.Errorf("first failure cell = %q, want [AC]", v)
	}
}
