package identity

import (
	"regexp"
	"sort"
	"strings"

	"matchup-model/core/tuning"
	"matchup-model/feature/registry"
)

// TeamIndex maps team name keys to registry profiles.
type TeamIndex struct {
	byKey map[string]*registry.TeamRecord
}

// NewTeamIndex indexes every team with two named debaters under all of its
// keys. When two teams share a key the first registered keeps it.
func NewTeamIndex(teams []registry.TeamRecord, n *Normalizer, sep string) *TeamIndex {
	idx := &TeamIndex{byKey: make(map[string]*registry.TeamRecord)}
	for i := range teams {
		t := &teams[i]
		if !t.HasMembers() {
			continue
		}
		for _, key := range n.TeamKeys(t.Debater1.Name, t.Debater2.Name, sep) {
			if _, taken := idx.byKey[key]; !taken {
				idx.byKey[key] = t
			}
		}
	}
	return idx
}

// Lookup probes keys in order and returns the first hit.
func (idx *TeamIndex) Lookup(keys []string) (*registry.TeamRecord, bool) {
	for _, k := range keys {
		if t, ok := idx.byKey[k]; ok {
			return t, true
		}
	}
	return nil, false
}

// Len returns the number of indexed keys.
func (idx *TeamIndex) Len() int {
	return len(idx.byKey)
}

// EventInfo is the tournament metadata used by the statistics.
type EventInfo struct {
	Name      string
	State     string
	FieldSize int
	Date      string
	URL       string
}

type eventCandidate struct {
	info     EventInfo
	keywords map[string]struct{}
}

// EventIndex matches tournament names against one year's events.
// Only events reporting a field size for the configured sub-event are indexed.
type EventIndex struct {
	byName     map[string]EventInfo
	candidates []eventCandidate
	threshold  float64
}

// NewEventIndex builds the index. Candidates are kept sorted by name, so
// fuzzy ties resolve to the alphabetically first event.
func NewEventIndex(events []registry.EventRecord, fieldSizeEvent string, threshold float64) *EventIndex {
	idx := &EventIndex{byName: make(map[string]EventInfo), threshold: threshold}
	for _, e := range events {
		size, ok := e.FieldSize(fieldSizeEvent)
		if !ok {
			continue
		}
		if _, dup := idx.byName[e.Name]; dup {
			continue
		}
		date := e.Date
		if date == "" {
			date = e.DateRaw
		}
		info := EventInfo{Name: e.Name, State: e.State, FieldSize: size, Date: date, URL: e.URL}
		idx.byName[e.Name] = info
		idx.candidates = append(idx.candidates, eventCandidate{info: info, keywords: Keywords(e.Name)})
	}
	sort.Slice(idx.candidates, func(i, j int) bool {
		return idx.candidates[i].info.Name < idx.candidates[j].info.Name
	})
	return idx
}

// Len returns the number of indexed events.
func (idx *EventIndex) Len() int {
	return len(idx.byName)
}

// Match finds the event for a tournament name: an exact name first, else the
// candidate with the highest keyword Jaccard score above the threshold.
func (idx *EventIndex) Match(name string) (EventInfo, bool) {
	if info, ok := idx.byName[name]; ok {
		return info, true
	}

	query := Keywords(name)
	if len(query) == 0 {
		return EventInfo{}, false
	}

	var best EventInfo
	bestScore := 0.0
	found := false
	for _, c := range idx.candidates {
		if len(c.keywords) == 0 {
			continue
		}
		score := Jaccard(query, c.keywords)
		if score > bestScore && score > idx.threshold {
			best, bestScore, found = c.info, score, true
		}
	}
	return best, found
}

var (
	stopwordPattern    = regexp.MustCompile(`\b(20\d{2}|tournament|invitational|classic|championship|forum|of|the|and|in|at)\b`)
	punctuationPattern = regexp.MustCompile(`[^\w\s]`)
)

// Keywords reduces a tournament name to its distinctive lower-case tokens.
// Years, administrative terms, short words and punctuation are dropped.
func Keywords(name string) map[string]struct{} {
	s := stopwordPattern.ReplaceAllString(strings.ToLower(name), "")
	s = punctuationPattern.ReplaceAllString(s, " ")

	words := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		if len(w) >= tuning.MinKeywordLength {
			words[w] = struct{}{}
		}
	}
	return words
}

// Jaccard returns |a ∩ b| / |a ∪ b|, 0 for two empty sets.
func Jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
