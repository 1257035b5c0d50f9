package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes a single workbook with one sheet per non-empty
// table and returns the file path.
func (e *Exporter) ExportXLSX(dataset Dataset) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, table := range dataset {
		if len(table.Records) == 0 {
			continue
		}

		if first {
			// Reuse the default sheet for the first collection.
			f.SetSheetName(f.GetSheetName(0), table.Name)
			first = false
		} else {
			if _, err := f.NewSheet(table.Name); err != nil {
				return "", fmt.Errorf("failed to create sheet %s: %w", table.Name, err)
			}
		}

		if err := writeSheet(f, table); err != nil {
			return "", fmt.Errorf("xlsx export of %s failed: %w", table.Name, err)
		}
	}

	path := filepath.Join(e.dir, fmt.Sprintf("%s_export.xlsx", e.timestamp))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("XLSX export complete", "path", path)
	return path, nil
}

func writeSheet(f *excelize.File, table Table) error {
	header := table.Records[0].Fields
	for col, field := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(table.Name, cell, field); err != nil {
			return err
		}
	}

	for row, record := range table.Records {
		for col, field := range header {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(table.Name, cell, formatValue(record.Values[field])); err != nil {
				return err
			}
		}
	}
	return nil
}
