package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gotruss/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gotruss",
	Short: "Truss Assembly Capacity Calculator",
	Long: `gotruss - Go Truss Assembly Capacity Calculator

A CLI tool for the capacity check of a four-member pin-jointed truss
assembly: a diamond frame ABCD braced by the horizontal strut AC, loaded
in tension through the hangers EB and FD.

This tool helps engineers perform:
  - Geometry and force-fraction calculation
  - Member strength, weight and cost calculation
  - First-failure and allowable load determination
  - Safety factor and ±1% load sensitivity checks
  - Figure, text, PDF and spreadsheet reporting`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gotruss v%-47s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Truss Assembly Capacity Calculator                   ║")
		fmt.Fprintln(out, "  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for the capacity check of a four-member truss")
		fmt.Fprintln(out, "  assembly (ABCD, AC, EB, FD) under a single hanging load Q.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Member capacities from a built-in or custom materials table")
		fmt.Fprintln(out, "    • First member(s) to fail and allowable load at a safety factor")
		fmt.Fprintln(out, "    • Safety factor sweep over load scales")
		fmt.Fprintln(out, "    • PNG figure, run info dump, PDF and XLSX reports")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gotruss --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
