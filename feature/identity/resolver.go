package identity

import (
	"context"
	"fmt"
	"sort"

	"matchup-model/core/diag"
	"matchup-model/core/model"
	"matchup-model/core/tuning"
	"matchup-model/feature/registry"

	"golang.org/x/sync/errgroup"
)

// Options controls the resolver.
type Options struct {
	KeySeparator   string
	Threshold      float64
	FieldSizeEvent string
	// Workers bounds concurrent years in EnrichAll. Values below 1 mean 1.
	Workers int
}

func (o Options) withDefaults() Options {
	if o.KeySeparator == "" {
		o.KeySeparator = tuning.KeySeparator
	}
	if o.Threshold <= 0 {
		o.Threshold = tuning.JaccardThreshold
	}
	if o.FieldSizeEvent == "" {
		o.FieldSizeEvent = tuning.FieldSizeEvent
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return o
}

// Members are the two debater names known for a team code.
type Members struct {
	Member1 string
	Member2 string
}

// Roster maps year to team code to members.
type Roster map[string]map[string]Members

// BuildRoster collects the first member names seen for every team code in
// each year. Team1 sides are scanned before Team2 sides; sides without two
// real names are skipped.
func BuildRoster(records []model.MatchRecord) Roster {
	roster := make(Roster)
	add := func(year string, side model.TeamSide) {
		if !realName(side.Member1) || !realName(side.Member2) || side.Code == "" {
			return
		}
		codes, ok := roster[year]
		if !ok {
			codes = make(map[string]Members)
			roster[year] = codes
		}
		if _, seen := codes[side.Code]; !seen {
			codes[side.Code] = Members{Member1: side.Member1, Member2: side.Member2}
		}
	}
	for _, r := range records {
		add(r.Context.Year, r.Team1)
	}
	for _, r := range records {
		add(r.Context.Year, r.Team2)
	}
	return roster
}

func realName(s string) bool {
	return s != "" && s != model.MissingName
}

// Resolver attaches registry statistics to match records.
type Resolver struct {
	cache *registry.Cache
	norm  *Normalizer
	opts  Options
}

// NewResolver creates a resolver reading registries through cache.
func NewResolver(cache *registry.Cache, norm *Normalizer, opts Options) *Resolver {
	return &Resolver{cache: cache, norm: norm, opts: opts.withDefaults()}
}

// Enrich resolves records one year at a time and returns enriched copies.
// Sides with no registry match keep nil statistics and are recorded as
// identity match failures.
func (r *Resolver) Enrich(ctx context.Context, records []model.MatchRecord, diags *diag.Diagnostics) ([]model.MatchRecord, error) {
	return r.enrich(ctx, records, 1, diags)
}

// EnrichAll is Enrich with years resolved concurrently. Output order matches input.
func (r *Resolver) EnrichAll(ctx context.Context, records []model.MatchRecord, diags *diag.Diagnostics) ([]model.MatchRecord, error) {
	return r.enrich(ctx, records, r.opts.Workers, diags)
}

func (r *Resolver) enrich(ctx context.Context, records []model.MatchRecord, workers int, diags *diag.Diagnostics) ([]model.MatchRecord, error) {
	out := make([]model.MatchRecord, len(records))
	copy(out, records)

	roster := BuildRoster(out)
	byYear := make(map[string][]int)
	for i, rec := range out {
		byYear[rec.Context.Year] = append(byYear[rec.Context.Year], i)
	}
	years := make([]string, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Strings(years)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, year := range years {
		g.Go(func() error {
			stats, err := r.resolveYear(gctx, year, roster[year], diags)
			if err != nil {
				return err
			}
			for _, i := range byYear[year] {
				out[i].Team1Stats = stats[out[i].Team1.Code]
				out[i].Team2Stats = stats[out[i].Team2.Code]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveYear computes statistics once per team code of a year.
func (r *Resolver) resolveYear(ctx context.Context, year string, members map[string]Members, diags *diag.Diagnostics) (map[string]*model.TeamStats, error) {
	stats := make(map[string]*model.TeamStats, len(members))
	if len(members) == 0 {
		return stats, nil
	}

	reg, err := r.cache.Get(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry for %s: %w", year, err)
	}
	teams := NewTeamIndex(reg.Teams, r.norm, r.opts.KeySeparator)
	events := NewEventIndex(reg.Events, r.opts.FieldSizeEvent, r.opts.Threshold)

	codes := make([]string, 0, len(members))
	for c := range members {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	source := registry.TeamsFile(year)
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m := members[code]
		team, ok := teams.Lookup(r.norm.TeamKeys(m.Member1, m.Member2, r.opts.KeySeparator))
		if !ok {
			diags.Record(diag.Entry{
				Kind:   diag.IdentityMatchFailure,
				Source: source,
				Team:   code,
				Reason: fmt.Sprintf("no registry entry for %s / %s", m.Member1, m.Member2),
			})
			continue
		}

		s, unmatched := ComputeStats(team, events)
		for _, name := range unmatched {
			diags.Record(diag.Entry{
				Kind:   diag.IdentityMatchFailure,
				Source: registry.EventsFile(year),
				Team:   code,
				Reason: fmt.Sprintf("no event matches tournament %q", name),
			})
		}
		stats[code] = s
	}
	return stats, nil
}
