package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alexiusacademia/gotruss/internal/assembly"
	"github.com/alexiusacademia/gotruss/internal/diagram"
	"github.com/alexiusacademia/gotruss/internal/report"
	"github.com/spf13/cobra"
)

var (
	// Output options
	analyzeNoFigure bool
	analyzePDF      bool
	analyzeXLSX     bool
	analyzeDiagram  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Calculate the allowable load of the truss assembly",
	Long: `Calculate member capacities, the first member(s) to fail, the allowable
load at the target safety factor and each member's safety factor and
sensitivity to a ±1% change of load.

Results are printed and saved under the output directory as a timestamped
figure (<ddmmyy_HHMMSS>.png) and run info dump (<ddmmyy_HHMMSS>_run_info.txt).

Examples:
  # Default all-steel assembly
  gotruss analyze

  # Materials-table variant with a PDF report
  gotruss analyze --preset catalog --pdf

  # Longer strut, aluminum hangers, safety factor 3
  gotruss analyze --ac-length 24 --eb-material aluminum --fd-material aluminum --safety-factor 3

  # From a config file, print a bar chart and skip the figure
  gotruss analyze -f gotruss.yaml --diagram --no-figure`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addInputFlags(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeNoFigure, "no-figure", false, "Do not save the PNG figure")
	analyzeCmd.Flags().BoolVar(&analyzePDF, "pdf", false, "Also save a PDF report")
	analyzeCmd.Flags().BoolVar(&analyzeXLSX, "xlsx", false, "Also save an XLSX report")
	analyzeCmd.Flags().BoolVar(&analyzeDiagram, "diagram", false, "Print a safety factor bar chart")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	in, err := loadInput(cmd)
	if err != nil {
		return err
	}

	res, err := assembly.Evaluate(in.cfg, in.catalog)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printAnalysis(out, res)

	if analyzeDiagram {
		fmt.Fprint(out, diagram.DrawSafetyFactorBars(report.FigureData(res)))
		fmt.Fprintln(out)
	}

	written, err := report.Save(res, report.Options{
		Dir:    in.file.OutputDir,
		Figure: !analyzeNoFigure,
		PDF:    analyzePDF,
		XLSX:   analyzeXLSX,
		Now:    time.Now(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "OUTPUT FILES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	for _, p := range []string{written.Figure, written.RunInfo, written.PDF, written.XLSX} {
		if p != "" {
			fmt.Fprintf(out, "  %s\n", p)
		}
	}
	fmt.Fprintln(out)
	return nil
}

func printAnalysis(out io.Writer, res *assembly.Result) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     "+diagram.Header.Render("TRUSS ASSEMBLY CAPACITY"))
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	// Input summary
	fmt.Fprintln(out, "INPUT DATA:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Member\tMaterial\tLength (in)\tDiameter (in)\tStrength (ksi)")
	for _, m := range assembly.Members {
		mr := res.Members[m]
		length := "-"
		if mr.Length > 0 {
			length = fmt.Sprintf("%.3f", mr.Length)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%.4f\t%.1f (%s)\n", m, mr.Material, length, mr.Diameter, mr.Strength, mr.StrengthKind)
	}
	fmt.Fprintf(w, "  Target safety factor:\t%.2f\n", res.SafetyFactor)
	w.Flush()
	fmt.Fprintln(out)

	// Geometry
	g := res.Geometry
	fmt.Fprintln(out, "GEOMETRY:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Half length of AC (h):\t%.4f in\n", g.HalfLength)
	fmt.Fprintf(w, "  Side of ABCD (s):\t%.4f in\n", g.Side)
	fmt.Fprintf(w, "  Half height (H):\t%.4f in\n", g.Height)
	fmt.Fprintf(w, "  Q per unit F_ABCD (2H/s):\t%.4f\n", g.FractionABCD)
	fmt.Fprintf(w, "  Q per unit F_AC (H/h):\t%.4f\n", g.FractionAC)
	w.Flush()
	fmt.Fprintln(out)

	// Capacities
	fmt.Fprintln(out, "MEMBER CAPACITY:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Member\tArea (in²)\tMax force (k)\tFraction\tMax Q (k)\tSF\t+1% (%)\t-1% (%)")
	for _, m := range assembly.Members {
		mr := res.Members[m]
		fmt.Fprintf(w, "  %s\t%.5f\t%.3f\t%.4f\t%.3f\t%.3f\t%.4f\t%.4f\n",
			m, mr.Area, mr.MaxForce, mr.Fraction, mr.MaxLoad, mr.SafetyFactor, mr.Sensitivity.Up, mr.Sensitivity.Down)
	}
	w.Flush()
	fmt.Fprintln(out)

	// Weight and cost
	fmt.Fprintln(out, "WEIGHT AND COST:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, m := range assembly.Members {
		mr := res.Members[m]
		fmt.Fprintf(w, "  %s:\t%.4f lb\t$%.2f\n", m, mr.Weight, mr.Cost)
	}
	fmt.Fprintf(w, "  Total:\t%.4f lb\t$%.2f\n", res.TotalWeight, res.TotalCost)
	w.Flush()
	fmt.Fprintln(out)

	data := report.FigureData(res)
	fmt.Fprint(out, diagram.DrawSummaryBox(data.SuperTitle(), []string{
		fmt.Sprintf("Governing max load Q = %.3f kips", res.GoverningMaxLoad),
		fmt.Sprintf("ALLOWABLE LOAD Q = %.3f kips (SF %.2f)", res.AllowableLoad, res.SafetyFactor),
	}))
	fmt.Fprintln(out)

	// Status
	fmt.Fprintln(out, "STATUS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	for _, m := range data.Members {
		fmt.Fprintf(out, "  %s\n", diagram.MemberStatus(m))
	}
	if len(res.Governing) > 1 {
		fmt.Fprintln(out, "  "+diagram.Muted.Render("Members "+strings.Join(res.GoverningNames(), ", ")+" reach capacity together"))
	}
	fmt.Fprintln(out)
}
