package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var materialsFile string

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the materials available to members",
	Long: `List the materials catalog: the built-in steel and aluminum at ultimate
strength plus the bundled engineering materials table at yield strength.

A custom table (.csv or .xlsx with Material, Density, Cost, Yield or
Ultimate columns) can be listed with --file; its entries take precedence.

Examples:
  gotruss materials
  gotruss materials --file my_materials.xlsx`,
	RunE: runMaterials,
}

func init() {
	rootCmd.AddCommand(materialsCmd)
	materialsCmd.Flags().StringVar(&materialsFile, "file", "", "Materials table (.csv or .xlsx)")
}

func runMaterials(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(materialsFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "MATERIALS (%d):\n", catalog.Len())
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Name\tStrength (ksi)\tBasis\tDensity (lb/in³)\tCost ($/lb)")
	for _, m := range catalog.All() {
		fmt.Fprintf(w, "  %s\t%.1f\t%s\t%.4f\t%.2f\n", m.Name, m.Strength, m.Basis, m.Density, m.CostPerPound)
	}
	w.Flush()
	fmt.Fprintln(out)
	return nil
}
