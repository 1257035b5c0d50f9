// Package export writes snapshots of the in-memory collections to
// CSV, XLSX and SQL (plus a SQLite database file).
package export

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatSQL  Format = "sql"
	FormatAll  Format = "all"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatXLSX, FormatSQL, FormatAll:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Record is one exported row. Fields fixes the column order; Values
// holds the cell per field name.
type Record struct {
	Fields []string
	Values map[string]any
}

// Table is one collection's snapshot.
type Table struct {
	Name    string
	Records []Record
}

// Dataset is the full snapshot, in export order.
type Dataset []Table

// Exporter writes a dataset to files under a directory. Every file
// name is prefixed with the exporter's creation timestamp.
type Exporter struct {
	dir        string
	sqliteName string
	timestamp  string
	logger     *slog.Logger
}

func NewExporter(dir, sqliteName string, logger *slog.Logger) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export dir %s: %w", dir, err)
	}
	return &Exporter{
		dir:        dir,
		sqliteName: sqliteName,
		timestamp:  time.Now().Format("20060102_150405"),
		logger:     logger,
	}, nil
}

// Export writes the dataset in the requested format and returns the
// written file paths.
func (e *Exporter) Export(dataset Dataset, format Format) ([]string, error) {
	switch format {
	case FormatCSV:
		return e.ExportCSV(dataset)
	case FormatXLSX:
		path, err := e.ExportXLSX(dataset)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	case FormatSQL:
		return e.ExportSQL(dataset)
	case FormatAll:
		var paths []string
		csvPaths, err := e.ExportCSV(dataset)
		if err != nil {
			return nil, err
		}
		paths = append(paths, csvPaths...)

		xlsxPath, err := e.ExportXLSX(dataset)
		if err != nil {
			return nil, err
		}
		paths = append(paths, xlsxPath)

		sqlPaths, err := e.ExportSQL(dataset)
		if err != nil {
			return nil, err
		}
		return append(paths, sqlPaths...), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// formatValue renders a cell for CSV and XLSX output.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
