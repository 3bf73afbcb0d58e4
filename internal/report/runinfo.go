package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexiusacademia/gotruss/internal/assembly"
)

// StampLayout names output files by run time, day first (ddmmyy_HHMMSS)
const StampLayout = "020106_150405"

// Stamp formats t for use in output file names
func Stamp(t time.Time) string {
	return t.Format(StampLayout)
}

// Paths holds the output file names of one run
type Paths struct {
	Figure  string
	RunInfo string
	PDF     string
	XLSX    string
}

// PathsFor returns the output file names for a run started at t
func PathsFor(dir string, t time.Time) Paths {
	base := filepath.Join(dir, Stamp(t))
	return Paths{
		Figure:  base + ".png",
		RunInfo: base + "_run_info.txt",
		PDF:     base + "_report.pdf",
		XLSX:    base + "_report.xlsx",
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func rounded(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func pointLists(pts []assembly.Point) string {
	xs := make([]string, len(pts))
	ys := make([]string, len(pts))
	for i, p := range pts {
		xs[i] = num(p.X)
		ys[i] = num(p.Y)
	}
	return fmt.Sprintf("[[%s], [%s]]", strings.Join(xs, ", "), strings.Join(ys, ", "))
}

type property struct {
	name  string
	value func(assembly.MemberResult) string
}

var properties = []property{
	{"length", func(m assembly.MemberResult) string { return num(m.Length) }},
	{"diameter", func(m assembly.MemberResult) string { return num(m.Diameter) }},
	{"material", func(m assembly.MemberResult) string { return m.Material }},
	{"strength", func(m assembly.MemberResult) string { return num(m.Strength) + " (" + m.StrengthKind + ")" }},
	{"area", func(m assembly.MemberResult) string { return num(m.Area) }},
	{"weight", func(m assembly.MemberResult) string { return num(m.Weight) }},
	{"cost", func(m assembly.MemberResult) string { return num(m.Cost) }},
	{"points", func(m assembly.MemberResult) string { return pointLists(m.Points) }},
	{"fraction", func(m assembly.MemberResult) string { return num(m.Fraction) }},
	{"max_force", func(m assembly.MemberResult) string { return num(m.MaxForce) }},
	{"max_Q_load", func(m assembly.MemberResult) string { return num(m.MaxLoad) }},
	{"safety_factor", func(m assembly.MemberResult) string { return rounded(m.SafetyFactor, 3) }},
	{"sensitivity", func(m assembly.MemberResult) string {
		return fmt.Sprintf("[%s, %s]", num(m.Sensitivity.Up), num(m.Sensitivity.Down))
	}},
}

// WriteRunInfo writes every computed value of a run, one block per property
// with one "NAME: value" line per member, followed by the global values.
// The output depends only on res.
func WriteRunInfo(w io.Writer, res *assembly.Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Member dictionary")
	for _, p := range properties {
		fmt.Fprintf(bw, "%s:\n", p.name)
		for _, m := range assembly.Members {
			fmt.Fprintf(bw, "%s: %s\n", m, p.value(res.Members[m]))
		}
	}

	g := res.Geometry
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Global values")
	fmt.Fprintf(bw, "half_length: %s\n", num(g.HalfLength))
	fmt.Fprintf(bw, "side_length: %s\n", num(g.Side))
	fmt.Fprintf(bw, "height: %s\n", num(g.Height))
	fmt.Fprintf(bw, "governing_max_Q_load: %s\n", num(res.GoverningMaxLoad))
	fmt.Fprintf(bw, "first_failure_member: [%s]\n", strings.Join(res.GoverningNames(), ", "))
	fmt.Fprintf(bw, "target_safety_factor: %s\n", num(res.SafetyFactor))
	fmt.Fprintf(bw, "allowable_load: %s\n", num(res.AllowableLoad))
	fmt.Fprintf(bw, "total_weight: %s\n", num(res.TotalWeight))
	fmt.Fprintf(bw, "total_cost: %s\n", num(res.TotalCost))

	return bw.Flush()
}

// SaveRunInfo writes the run info text file, creating its directory
func SaveRunInfo(path string, res *assembly.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteRunInfo(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
