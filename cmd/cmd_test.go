package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/alexiusacademia/gotruss/internal/config"
	"github.com/alexiusacademia/gotruss/internal/version"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with fresh flag values and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{config.EnvOutputDir, config.EnvMaterials, config.EnvSafetyFactor, config.EnvPreset} {
		t.Setenv(k, "")
	}
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "gotruss v"+version.Version) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestAnalyze_Defaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs")
	out, err := execute(t, "analyze", "--output-dir", dir, "--no-figure")
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}

	for _, want := range []string{
		"First Member(s) to Fail: [ABCD, AC]",
		"ALLOWABLE LOAD Q",
		"reach capacity together",
		"_run_info.txt",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	files := listDir(t, dir)
	if len(files) != 1 || !strings.HasSuffix(files[0], "_run_info.txt") {
		t.Errorf("output dir holds %v", files)
	}
}

func TestAnalyze_MemberOverridesAndReports(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "analyze", "-o", dir,
		"--ac-length", "24", "--eb-material", "aluminum", "--safety-factor", "3",
		"--pdf", "--xlsx", "--diagram")
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}
	if !strings.Contains(out, "SAFETY FACTOR BY MEMBER") {
		t.Errorf("missing bar chart:\n%s", out)
	}
	if !strings.Contains(out, "(SF 3.00)") {
		t.Errorf("safety factor flag not applied:\n%s", out)
	}

	var exts []string
	for _, name := range listDir(t, dir) {
		switch {
		case strings.HasSuffix(name, "_run_info.txt"):
			exts = append(exts, "txt")
		default:
			exts = append(exts, filepath.Ext(name))
		}
	}
	sort.Strings(exts)
	if diff := cmp.Diff([]string{".pdf", ".png", ".xlsx", "txt"}, exts); diff != "" {
		t.Errorf("written files (-want +got):\n%s", diff)
	}
}

func TestAnalyze_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truss.yaml")
	doc := "preset: catalog\nsafety_factor: 2\nmembers:\n  AC:\n    material: steel\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "analyze", "-f", path, "-o", filepath.Join(dir, "out"), "--no-figure")
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}
	for _, want := range []string{"Stainless 304", "steel", "(SF 2.00)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"infeasible geometry", []string{"--ac-length", "30"}, "diamond cannot close"},
		{"unknown material", []string{"--fd-material", "unobtainium"}, "unobtainium"},
		{"unknown preset", []string{"--preset", "bridge"}, `unknown preset "bridge"`},
		{"bad safety factor", []string{"--safety-factor", "-1"}, "safety factor"},
		{"missing config", []string{"-f", "does-not-exist.yaml"}, "does-not-exist.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			args := append([]string{"analyze", "-o", dir}, tt.args...)
			_, err := execute(t, args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got error %v, want one containing %q", err, tt.want)
			}
			if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
				t.Errorf("output directory created on failure")
			}
		})
	}
}

func TestSweep(t *testing.T) {
	out, err := execute(t, "sweep", "--preset", "catalog", "--steps", "5", "--table")
	if err != nil {
		t.Fatalf("sweep: %v\n%s", err, out)
	}
	for _, want := range []string{"SAFETY FACTOR SWEEP", "0.500", "2.000", "series: ABCD, AC, EB, FD"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, "sweep", "--from", "2", "--to", "1"); err == nil {
		t.Error("expected an error for an empty range")
	}
}

func TestMaterials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.csv")
	csv := "Material,Density (lb/in^3),Cost ($/lb),Yield Strength (ksi)\nTitanium Gr5,0.16,20,128\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "materials", "--file", path)
	if err != nil {
		t.Fatalf("materials: %v", err)
	}
	for _, want := range []string{"Titanium Gr5", "steel", "aluminum", "6061-T6"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gotruss.yaml")

	if _, err := execute(t, "config", "init", path, "--preset", "catalog"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	got, err := config.Load(path, config.Default())
	if err != nil {
		t.Fatalf("loading written config: %v", err)
	}
	if diff := cmp.Diff(config.Preset("catalog"), got); diff != "" {
		t.Errorf("written config (-want +got):\n%s", diff)
	}

	if _, err := execute(t, "config", "init", path); err == nil {
		t.Error("expected an error when the file exists")
	}
	if _, err := execute(t, "config", "init", path, "--force"); err != nil {
		t.Errorf("config init --force: %v", err)
	}
}
