package materials

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

//go:embed data/engineering_materials.csv
var defaultTable string

// Column headers of the materials table. Headers are matched on their
// leading word so that unit suffixes like "(lb/in³)" are optional.
const (
	ColumnMaterial = "Material"
	ColumnDensity  = "Density (lb/in³)"
	ColumnCost     = "Cost per lb ($)"
	ColumnYield    = "Yield Strength (ksi)"
)

type columns struct {
	name, density, cost, strength int
	basis                         Basis
}

func findColumns(header []string) (columns, error) {
	cols := columns{name: -1, density: -1, cost: -1, strength: -1, basis: Yield}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		switch {
		case strings.HasPrefix(key, "material") || key == "name":
			cols.name = i
		case strings.HasPrefix(key, "density"):
			cols.density = i
		case strings.HasPrefix(key, "cost"):
			cols.cost = i
		case strings.HasPrefix(key, "yield"):
			cols.strength = i
			cols.basis = Yield
		case strings.HasPrefix(key, "ultimate"):
			cols.strength = i
			cols.basis = Ultimate
		}
	}

	var missing []string
	if cols.name < 0 {
		missing = append(missing, ColumnMaterial)
	}
	if cols.density < 0 {
		missing = append(missing, ColumnDensity)
	}
	if cols.cost < 0 {
		missing = append(missing, ColumnCost)
	}
	if cols.strength < 0 {
		missing = append(missing, ColumnYield)
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("materials table is missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// fromRows builds a catalog from a header row followed by data rows.
// Blank rows are skipped.
func fromRows(rows [][]string) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("materials table is empty")
	}
	cols, err := findColumns(rows[0])
	if err != nil {
		return nil, err
	}

	cat := &Catalog{byName: make(map[string]Material)}
	for i, row := range rows[1:] {
		line := i + 2
		if isBlank(row) {
			continue
		}
		m := Material{Name: cell(row, cols.name), Basis: cols.basis}
		if m.Density, err = parseCell(row, cols.density); err != nil {
			return nil, fmt.Errorf("row %d: density: %w", line, err)
		}
		if m.CostPerPound, err = parseCell(row, cols.cost); err != nil {
			return nil, fmt.Errorf("row %d: cost: %w", line, err)
		}
		if m.Strength, err = parseCell(row, cols.strength); err != nil {
			return nil, fmt.Errorf("row %d: strength: %w", line, err)
		}
		if err := cat.add(m); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
	}
	if cat.Len() == 0 {
		return nil, fmt.Errorf("materials table has no rows")
	}
	return cat, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseCell(row []string, i int) (float64, error) {
	s := strings.TrimPrefix(cell(row, i), "$")
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadCSV reads a materials table in CSV form
func ReadCSV(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading materials csv: %w", err)
	}
	return fromRows(rows)
}

// LoadCSV reads a materials table from a CSV file
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cat, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Load picks the reader from the file extension (.csv, .xlsx)
func Load(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path)
	case ".csv", "":
		return LoadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported materials file %q (want .csv or .xlsx)", path)
	}
}

// Default returns the builtin steel/aluminum entries followed by the embedded
// engineering materials table.
func Default() *Catalog {
	table, err := ReadCSV(strings.NewReader(defaultTable))
	if err != nil {
		panic(fmt.Sprintf("embedded materials table: %v", err))
	}
	return Builtin().Merge(table)
}
