package report

import (
	"fmt"

	"github.com/alexiusacademia/gotruss/internal/assembly"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook report
const (
	SheetMembers = "Members"
	SheetSummary = "Summary"
)

var memberColumns = []string{
	"Member", "Material", "Length (in)", "Diameter (in)", "Strength (ksi)", "Area (in²)",
	"Fraction", "Max force (kips)", "Max Q load (kips)", "Safety factor",
	"Sensitivity +1%", "Sensitivity -1%", "Weight (lb)", "Cost ($)", "Governs",
}

// WriteXLSX writes the per-member table and the global values to a workbook
func WriteXLSX(path string, res *assembly.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetMembers); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := make([]interface{}, len(memberColumns))
	for i, c := range memberColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetMembers, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(memberColumns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetMembers, "A1", last, bold); err != nil {
		return err
	}

	for i, m := range assembly.Members {
		mr := res.Members[m]
		row := []interface{}{
			m.String(), mr.Material, mr.Length, mr.Diameter, mr.Strength, mr.Area,
			mr.Fraction, mr.MaxForce, mr.MaxLoad, mr.SafetyFactor,
			mr.Sensitivity.Up, mr.Sensitivity.Down, mr.Weight, mr.Cost, mr.Governs,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetMembers, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetMembers, "A", "O", 16); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	g := res.Geometry
	summary := [][]interface{}{
		{"Half length (in)", g.HalfLength},
		{"Side length (in)", g.Side},
		{"Height (in)", g.Height},
		{"Governing max Q load (kips)", res.GoverningMaxLoad},
		{"First member(s) to fail", fmt.Sprint(res.GoverningNames())},
		{"Target safety factor", res.SafetyFactor},
		{"Allowable load (kips)", res.AllowableLoad},
		{"Total weight (lb)", res.TotalWeight},
		{"Total cost ($)", res.TotalCost},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 30); err != nil {
		return err
	}

	return f.SaveAs(path)
}
