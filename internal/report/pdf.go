package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexiusacademia/gotruss/internal/assembly"
	"github.com/phpdave11/gofpdf"
)

// WritePDF writes a one-page summary: inputs, per-member results and, when
// figurePath names an existing PNG, the figure itself.
func WritePDF(path string, res *assembly.Result, figurePath string, at time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Truss capacity report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Truss Capacity Report")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Run: %s", at.Format("2006-01-02 15:04:05")))
	pdf.Ln(10)

	// Summary
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Result")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		fmt.Sprintf("First member(s) to fail: %s", strings.Join(res.GoverningNames(), ", ")),
		fmt.Sprintf("Governing max load: %.3f kips", res.GoverningMaxLoad),
		fmt.Sprintf("Target safety factor: %.2f", res.SafetyFactor),
		fmt.Sprintf("Allowable load: %.3f kips", res.AllowableLoad),
		fmt.Sprintf("Total weight: %.3f lb   Total cost: $%.2f", res.TotalWeight, res.TotalCost),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Member table
	header := []string{"Member", "Material", "L (in)", "d (in)", "Fraction", "Max load (k)", "SF", "+1% / -1%"}
	widths := []float64{18, 32, 18, 16, 20, 26, 16, 34}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, m := range assembly.Members {
		mr := res.Members[m]
		if mr.Governs {
			pdf.SetTextColor(200, 0, 0)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		row := []string{
			m.String(),
			mr.Material,
			fmt.Sprintf("%.3f", mr.Length),
			fmt.Sprintf("%.4f", mr.Diameter),
			fmt.Sprintf("%.4f", mr.Fraction),
			fmt.Sprintf("%.3f", mr.MaxLoad),
			fmt.Sprintf("%.3f", mr.SafetyFactor),
			fmt.Sprintf("%.4f / %.4f", mr.Sensitivity.Up, mr.Sensitivity.Down),
		}
		for i, c := range row {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetTextColor(0, 0, 0)

	if figurePath != "" {
		if _, err := os.Stat(figurePath); err == nil {
			pdf.Ln(6)
			pdf.ImageOptions(figurePath, 10, pdf.GetY(), 190, 0, false, gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	return pdf.OutputFileAndClose(path)
}
