package matches

import (
	"errors"
	"fmt"

	"matchup-model/core/database"

	"gorm.io/gorm"
)

// Schema check statuses.
const (
	SchemaOK      = "ok"
	SchemaError   = "error"
	SchemaMissing = "missing"
)

// SchemaReport describes how the live table compares to MatchRow.
type SchemaReport struct {
	Table          string   `json:"table"`
	Status         string   `json:"status"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

var sideColumns = []string{
	"code", "side", "member1_name", "member2_name",
	"member1_points", "member1_rank", "member2_points", "member2_rank",
	"won", "missing", "stats",
}

// RequiredColumns lists the columns MatchRow reads and writes.
func RequiredColumns() []string {
	cols := []string{"id", "record_key", "round_number", "tournament_name", "year", "source_file"}
	for _, prefix := range []string{"team1_", "team2_"} {
		for _, c := range sideColumns {
			cols = append(cols, prefix+c)
		}
	}
	return cols
}

// CheckSchema verifies that the match_records table carries every required column.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	required := RequiredColumns()
	missing, err := database.MissingColumns(db, TableName, required)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", TableName, err)
	}

	report := &SchemaReport{Table: TableName, Status: SchemaOK, MissingColumns: missing}
	switch {
	case len(missing) == len(required):
		report.Status = SchemaMissing
		report.MissingColumns = nil
	case len(missing) > 0:
		report.Status = SchemaError
	}
	return report, nil
}
