package matches

import (
	"context"

	"matchup-model/core/model"
	"matchup-model/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles match record operations.
type Service struct {
	store  *Store
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new match record service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		store:  NewStore(db),
		db:     db,
		logger: logger,
	}
}

// Migrate prepares the match_records table.
func (s *Service) Migrate() error {
	return s.store.Migrate()
}

// Import upserts records and logs how many were written.
func (s *Service) Import(ctx context.Context, records []model.MatchRecord) (int, error) {
	n, err := s.store.SaveAll(ctx, records)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Stored match records", zap.Int("count", n))
	return n, nil
}

// Page is one page of a record listing.
type Page struct {
	Total   int64               `json:"total"`
	Records []model.MatchRecord `json:"records"`
}

// List returns the records matching f and the unpaged total.
func (s *Service) List(ctx context.Context, f Filter) (*Page, error) {
	total, err := s.store.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	records, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &Page{Total: total, Records: records}, nil
}

// Summary aggregates every record matching f, ignoring paging.
func (s *Service) Summary(ctx context.Context, f Filter) (reconcile.Summary, error) {
	f.Limit, f.Offset = 0, 0
	records, err := s.store.List(ctx, f)
	if err != nil {
		return reconcile.Summary{}, err
	}
	return reconcile.Summarize(records), nil
}

// Schema inspects the live table.
func (s *Service) Schema() (*SchemaReport, error) {
	return CheckSchema(s.db)
}
