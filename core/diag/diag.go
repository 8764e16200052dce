// Package diag accumulates the non-fatal failures of a pipeline run.
//
// Every failure is local to one block, round or record. Instead of printing them,
// pipeline stages record an Entry into a Diagnostics value that the caller passes
// through and inspects (or logs) once the batch is done.
package diag

import (
	"fmt"
	"sort"
	"sync"
)

// Kind classifies a failure.
type Kind string

const (
	// SegmentationFailure: a block had fewer than 3 lines after noise removal.
	SegmentationFailure Kind = "segmentation_failure"
	// ParseFailure: a round group (or a whole block) could not be decoded.
	ParseFailure Kind = "parse_failure"
	// ReconciliationAmbiguity: several reciprocal candidates, or contradictory outcomes.
	ReconciliationAmbiguity Kind = "reconciliation_ambiguity"
	// ReconciliationMiss: no reciprocal observation found by any strategy.
	ReconciliationMiss Kind = "reconciliation_miss"
	// IdentityMatchFailure: no registry entry or tournament match.
	IdentityMatchFailure Kind = "identity_match_failure"
)

// Kinds lists every kind in report order.
var Kinds = []Kind{
	SegmentationFailure,
	ParseFailure,
	ReconciliationAmbiguity,
	ReconciliationMiss,
	IdentityMatchFailure,
}

// Entry describes a single failure.
type Entry struct {
	Kind   Kind   `json:"kind"`
	Source string `json:"source,omitempty"`
	Team   string `json:"team,omitempty"`
	Round  int    `json:"round,omitempty"`
	Reason string `json:"reason"`
	// Fragment holds the offending lines, when there are any.
	Fragment []string `json:"fragment,omitempty"`
}

func (e Entry) String() string {
	s := string(e.Kind) + ": " + e.Reason
	if e.Team != "" {
		s += fmt.Sprintf(" (team %s", e.Team)
		if e.Round > 0 {
			s += fmt.Sprintf(", round %d", e.Round)
		}
		s += ")"
	}
	if e.Source != "" {
		s += " [" + e.Source + "]"
	}
	return s
}

// Diagnostics is safe for concurrent use.
type Diagnostics struct {
	mu      sync.Mutex
	entries []Entry
	counts  map[Kind]int
}

// New creates an empty Diagnostics.
func New() *Diagnostics {
	return &Diagnostics{counts: make(map[Kind]int)}
}

// Record adds an entry. A nil receiver discards it.
func (d *Diagnostics) Record(e Entry) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.counts == nil {
		d.counts = make(map[Kind]int)
	}
	d.entries = append(d.entries, e)
	d.counts[e.Kind]++
}

// Recordf is a shorthand for entries with only a reason.
func (d *Diagnostics) Recordf(kind Kind, source, format string, args ...any) {
	d.Record(Entry{Kind: kind, Source: source, Reason: fmt.Sprintf(format, args...)})
}

// Count returns the number of entries of the given kind.
func (d *Diagnostics) Count(kind Kind) int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[kind]
}

// Total returns the number of entries across all kinds.
func (d *Diagnostics) Total() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Counts returns a copy of the per-kind counts, including zero counts.
func (d *Diagnostics) Counts() map[Kind]int {
	out := make(map[Kind]int, len(Kinds))
	for _, k := range Kinds {
		out[k] = 0
	}
	if d == nil {
		return out
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, v := range d.counts {
		out[k] = v
	}
	return out
}

// Entries returns a copy of all entries, optionally filtered by kind.
func (d *Diagnostics) Entries(kinds ...Kind) []Entry {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(kinds) == 0 {
		return append([]Entry(nil), d.entries...)
	}
	want := make(map[Kind]struct{}, len(kinds))
	for _, k := range kinds {
		want[k] = struct{}{}
	}
	var out []Entry
	for _, e := range d.entries {
		if _, ok := want[e.Kind]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Merge appends all entries of other into d.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if d == nil || other == nil || d == other {
		return
	}
	for _, e := range other.Entries() {
		d.Record(e)
	}
}

// Summary is a JSON-friendly view of the counts.
type Summary struct {
	Counts map[Kind]int `json:"counts"`
	Total  int          `json:"total"`
}

// Summarize returns the per-kind counts sorted by kind order.
func (d *Diagnostics) Summarize() Summary {
	return Summary{Counts: d.Counts(), Total: d.Total()}
}

// SortedKinds returns the kinds that have at least one entry, most frequent first.
// Ties keep report order.
func (d *Diagnostics) SortedKinds() []Kind {
	counts := d.Counts()
	var out []Kind
	for _, k := range Kinds {
		if counts[k] > 0 {
			out = append(out, k)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return counts[out[i]] > counts[out[j]] })
	return out
}
