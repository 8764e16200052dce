package matches

import (
	"context"
	"fmt"

	"matchup-model/core/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const saveBatchSize = 200

// Filter narrows a record listing. Zero values match everything.
type Filter struct {
	Tournament string
	Year       string
	Source     string
	// Team matches either side's code.
	Team   string
	Round  int
	Limit  int
	Offset int
}

// Store persists match records.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the match_records table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&MatchRow{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return nil
}

// SaveAll upserts records on their canonical key and returns the number written.
func (s *Store) SaveAll(ctx context.Context, records []model.MatchRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	rows := make([]MatchRow, len(records))
	for i, r := range records {
		rows[i] = NewMatchRow(r)
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "record_key"}},
			UpdateAll: true,
		}).
		CreateInBatches(&rows, saveBatchSize).Error
	if err != nil {
		return 0, fmt.Errorf("failed to save match records: %w", err)
	}
	return len(rows), nil
}

// List returns the records matching f in year, tournament, source and round order.
func (s *Store) List(ctx context.Context, f Filter) ([]model.MatchRecord, error) {
	q := f.apply(s.db.WithContext(ctx).Model(&MatchRow{})).
		Order("year, tournament_name, source_file, round_number, id")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var rows []MatchRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list match records: %w", err)
	}
	out := make([]model.MatchRecord, len(rows))
	for i, row := range rows {
		out[i] = row.ToRecord()
	}
	return out, nil
}

// Count returns the number of records matching f, ignoring paging.
func (s *Store) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64
	if err := f.apply(s.db.WithContext(ctx).Model(&MatchRow{})).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count match records: %w", err)
	}
	return n, nil
}

func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if f.Tournament != "" {
		q = q.Where("tournament_name = ?", f.Tournament)
	}
	if f.Year != "" {
		q = q.Where("year = ?", f.Year)
	}
	if f.Source != "" {
		q = q.Where("source_file = ?", f.Source)
	}
	if f.Team != "" {
		q = q.Where("team1_code = ? OR team2_code = ?", f.Team, f.Team)
	}
	if f.Round > 0 {
		q = q.Where("round_number = ?", f.Round)
	}
	return q
}
