package database

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// Column is one live column of a table. Field and Type are lower case.
type Column struct {
	Field    string
	Type     string
	Nullable bool
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TableColumns reads the column list of table from the live database. An
// absent table yields no columns on sqlite and an error on mysql.
func TableColumns(db *gorm.DB, table string) ([]Column, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	var (
		cols []Column
		err  error
	)
	if db.Dialector.Name() == DriverSQLite {
		cols, err = sqliteColumns(db, table)
	} else {
		cols, err = mysqlColumns(db, table)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}
	return cols, nil
}

func sqliteColumns(db *gorm.DB, table string) ([]Column, error) {
	type pragmaRow struct {
		Name    string
		Type    string
		Notnull int
	}
	var rows []pragmaRow
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", table)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	cols := make([]Column, 0, len(rows))
	for _, r := range rows {
		cols = append(cols, Column{
			Field:    strings.ToLower(r.Name),
			Type:     strings.ToLower(r.Type),
			Nullable: r.Notnull == 0,
		})
	}
	return cols, nil
}

// mysqlColumns scans SHOW COLUMNS, which reports exact type strings.
func mysqlColumns(db *gorm.DB, table string) ([]Column, error) {
	type showRow struct {
		Field string
		Type  string
		Null  string
	}
	var rows []showRow
	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", table)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	cols := make([]Column, 0, len(rows))
	for _, r := range rows {
		cols = append(cols, Column{
			Field:    strings.ToLower(r.Field),
			Type:     strings.ToLower(r.Type),
			Nullable: strings.EqualFold(r.Null, "YES"),
		})
	}
	return cols, nil
}

// MissingColumns returns the expected columns absent from the table, in input order.
func MissingColumns(db *gorm.DB, table string, expected []string) ([]string, error) {
	columns, err := TableColumns(db, table)
	if err != nil {
		return nil, err
	}
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c.Field] = struct{}{}
	}
	var missing []string
	for _, name := range expected {
		if _, ok := present[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
