package materials

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads a materials table from the first sheet of a workbook.
// The sheet layout is the same as the CSV table.
func LoadXLSX(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: reading sheet %q: %w", path, sheet, err)
	}

	cat, err := fromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}
