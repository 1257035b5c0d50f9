package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ExportSQL writes the generated SQL script and, as a side effect,
// executes it against a SQLite database file named after the exporter's
// configured database name. Both paths are returned.
func (e *Exporter) ExportSQL(dataset Dataset) ([]string, error) {
	statements := generateStatements(dataset)

	scriptPath := filepath.Join(e.dir, fmt.Sprintf("%s_sql_export.sql", e.timestamp))
	script := strings.Join(statements, "\n") + "\n"
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write sql script: %w", err)
	}

	dbPath := filepath.Join(e.dir, e.sqliteName+".db")
	if err := e.applyToSQLite(dbPath, statements); err != nil {
		return nil, err
	}

	e.logger.Info("SQL export complete", "script", scriptPath, "database", dbPath)
	return []string{scriptPath, dbPath}, nil
}

func (e *Exporter) applyToSQLite(path string, statements []string) error {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to execute statement: %w", err)
		}
	}
	return nil
}

// generateStatements renders CREATE TABLE and INSERT statements per
// non-empty table. Column types are inferred from the first record;
// an `id` column becomes the primary key.
func generateStatements(dataset Dataset) []string {
	var statements []string
	for _, table := range dataset {
		if len(table.Records) == 0 {
			continue
		}

		first := table.Records[0]
		columns := make([]string, 0, len(first.Fields))
		for _, field := range first.Fields {
			columns = append(columns, fmt.Sprintf("%s %s", field, sqlType(first.Values[field])))
		}

		var b strings.Builder
		fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", table.Name)
		b.WriteString(strings.Join(columns, ",\n"))
		if _, hasID := first.Values["id"]; hasID {
			b.WriteString(",\nPRIMARY KEY (id)")
		}
		b.WriteString("\n);")
		statements = append(statements, b.String())

		for _, record := range table.Records {
			values := make([]string, 0, len(record.Fields))
			for _, field := range record.Fields {
				values = append(values, sqlLiteral(record.Values[field]))
			}
			statements = append(statements, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
				table.Name,
				strings.Join(record.Fields, ", "),
				strings.Join(values, ", ")))
		}
	}
	return statements
}

func sqlType(v any) string {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return "INTEGER"
	case float32, float64:
		return "REAL"
	default:
		return "TEXT"
	}
}

func sqlLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "1"
		}
		return "0"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", val)
	case time.Time:
		return "'" + val.Format(time.RFC3339) + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprintf("%v", val), "'", "''") + "'"
	}
}
