package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/gotruss/internal/assembly"
	"github.com/alexiusacademia/gotruss/internal/diagram"
	"github.com/spf13/cobra"
)

var (
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	sweepTable bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Chart member safety factors over a range of loads",
	Long: `Evaluate every member's safety factor while the load is scaled from
--from to --to times the allowable load, and chart the curves in the
terminal. A scale of 1 is the design point, where the governing member
sits at the target safety factor.

Examples:
  # Default assembly, half to double the allowable load
  gotruss sweep

  # Materials-table variant, finer steps, with the numbers
  gotruss sweep --preset catalog --from 0.8 --to 1.2 --steps 41 --table`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	addInputFlags(sweepCmd)

	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.5, "Smallest load scale")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 2, "Largest load scale")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 31, "Number of load scales")
	sweepCmd.Flags().BoolVar(&sweepTable, "table", false, "Also print the values")
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepSteps < 2 {
		return fmt.Errorf("--steps must be at least 2, got %d", sweepSteps)
	}
	if !(sweepTo > sweepFrom) {
		return fmt.Errorf("--to (%g) must be greater than --from (%g)", sweepTo, sweepFrom)
	}

	in, err := loadInput(cmd)
	if err != nil {
		return err
	}
	res, err := assembly.Evaluate(in.cfg, in.catalog)
	if err != nil {
		return err
	}
	points, err := assembly.Sweep(res, assembly.LinearScales(sweepFrom, sweepTo, sweepSteps))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     "+diagram.Header.Render("SAFETY FACTOR SWEEP"))
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Allowable load: %.3f kips (SF %.2f, governing %v)\n", res.AllowableLoad, res.SafetyFactor, res.GoverningNames())
	fmt.Fprintf(out, "  Load range:     %.3f to %.3f kips in %d steps\n", points[0].Load, points[len(points)-1].Load, len(points))
	fmt.Fprintln(out)

	if sweepTable {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprint(w, "  Scale\tLoad (k)")
		for _, m := range assembly.Members {
			fmt.Fprintf(w, "\t%s", m)
		}
		fmt.Fprintln(w, "\tMin")
		for _, p := range points {
			fmt.Fprintf(w, "  %.3f\t%.3f", p.Scale, p.Load)
			for _, m := range assembly.Members {
				fmt.Fprintf(w, "\t%.3f", p.SafetyFactors[m])
			}
			fmt.Fprintf(w, "\t%.3f\n", p.Governing)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	series := make([]diagram.SweepSeries, 0, len(assembly.Members))
	for _, m := range assembly.Members {
		s := diagram.SweepSeries{Name: m.String(), Values: make([]float64, len(points))}
		for i, p := range points {
			s.Values[i] = p.SafetyFactors[m]
		}
		series = append(series, s)
	}
	caption := fmt.Sprintf("safety factor vs load scale %.2f to %.2f", sweepFrom, sweepTo)
	fmt.Fprintln(out, diagram.DrawSweep(series, caption))
	fmt.Fprintln(out)
	return nil
}
