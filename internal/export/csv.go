package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// ExportCSV writes one file per non-empty table. The header comes from
// the first record's field order; records are assumed homogeneous.
func (e *Exporter) ExportCSV(dataset Dataset) ([]string, error) {
	var paths []string
	for _, table := range dataset {
		if len(table.Records) == 0 {
			continue
		}

		path := filepath.Join(e.dir, fmt.Sprintf("%s_%s.csv", e.timestamp, table.Name))
		if err := writeCSV(path, table); err != nil {
			return nil, fmt.Errorf("csv export of %s failed: %w", table.Name, err)
		}
		paths = append(paths, path)
	}

	e.logger.Info("CSV export complete", "files", len(paths))
	return paths, nil
}

func writeCSV(path string, table Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := table.Records[0].Fields
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, record := range table.Records {
		for i, field := range header {
			row[i] = formatValue(record.Values[field])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
