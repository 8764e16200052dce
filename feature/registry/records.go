package registry

import (
	"strings"

	"matchup-model/core/utils"
)

// Debater is one member of a registered team.
type Debater struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// TournamentResult is one event a team attended.
type TournamentResult struct {
	Name          string `json:"name"`
	URL           string `json:"url,omitempty"`
	Place         string `json:"place"`
	PrelimRecord  string `json:"prelim_record,omitempty"`
	OverallRecord string `json:"overall_record,omitempty"`
	// Points is a number or a numeric string depending on the producer.
	Points     any `json:"points"`
	Checkmarks int `json:"checkmarks,omitempty"`
}

// PointsValue returns the points as a number, 0 when unparseable.
func (t TournamentResult) PointsValue() float64 {
	return utils.ToFloat(t.Points)
}

// PlaceValue returns the numeric placement.
func (t TournamentResult) PlaceValue() (int, bool) {
	if !utils.IsDigits(strings.TrimSpace(t.Place)) {
		return 0, false
	}
	return utils.ToInt(strings.TrimSpace(t.Place)), true
}

// TeamRecord is a team profile from the per-year team registry.
// Counters are loosely typed; use the accessor methods.
type TeamRecord struct {
	TeamID       int                `json:"team_id,omitempty"`
	URL          string             `json:"url,omitempty"`
	Year         string             `json:"year,omitempty"`
	State        string             `json:"state,omitempty"`
	Debater1     Debater            `json:"debater1"`
	Debater2     Debater            `json:"debater2"`
	RankPoints   any                `json:"rank_points,omitempty"`
	TotalWins    any                `json:"total_wins,omitempty"`
	TotalLosses  any                `json:"total_losses,omitempty"`
	PrelimWins   any                `json:"prelim_wins,omitempty"`
	PrelimLosses any                `json:"prelim_losses,omitempty"`
	NationalRank any                `json:"national_rank,omitempty"`
	StateRank    any                `json:"state_rank,omitempty"`
	Tournaments  []TournamentResult `json:"tournaments"`
}

func (r TeamRecord) Wins() int { return utils.ToInt(r.TotalWins) }
func (r TeamRecord) Losses() int { return utils.ToInt(r.TotalLosses) }
func (r TeamRecord) PrelimWon() int { return utils.ToInt(r.PrelimWins) }
func (r TeamRecord) PrelimLost() int { return utils.ToInt(r.PrelimLosses) }
func (r TeamRecord) Points() float64 { return utils.ToFloat(r.RankPoints) }
func (r TeamRecord) National() *int { return optionalRank(r.NationalRank) }
func (r TeamRecord) StateRanking() *int { return optionalRank(r.StateRank) }

// HasMembers reports whether both debater names are present.
func (r TeamRecord) HasMembers() bool {
	return strings.TrimSpace(r.Debater1.Name) != "" && strings.TrimSpace(r.Debater2.Name) != ""
}

func optionalRank(v any) *int {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(utils.ToString(v))
	if !utils.IsDigits(s) {
		return nil
	}
	n := utils.ToInt(s)
	return &n
}

// SubEvent is one competition held at a tournament.
type SubEvent struct {
	Name string `json:"name"`
	// Population is the field size, a number or a numeric string.
	Population any `json:"population"`
}

// EventRecord is a tournament from the per-year event registry.
type EventRecord struct {
	Name      string     `json:"name"`
	URL       string     `json:"url,omitempty"`
	State     string     `json:"state"`
	Date      string     `json:"date,omitempty"`
	DateRaw   string     `json:"date_raw,omitempty"`
	Location  string     `json:"location,omitempty"`
	StartDate string     `json:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty"`
	Events    []SubEvent `json:"events"`
}

// FieldSize returns the population of the first sub-event whose name contains
// filter. A zero or missing population is reported as absent.
func (e EventRecord) FieldSize(filter string) (int, bool) {
	for _, sub := range e.Events {
		if !strings.Contains(sub.Name, filter) {
			continue
		}
		n, ok := utils.ToIntOK(utils.ToString(sub.Population))
		if !ok || n <= 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// EventDetails is the content of a tournament detail page.
type EventDetails struct {
	Location  string
	StartDate string
	EndDate   string
	Events    []SubEvent
}

// WithDetails returns a copy of e carrying the detail page content.
func (e EventRecord) WithDetails(d EventDetails) EventRecord {
	e.Location = d.Location
	e.StartDate = d.StartDate
	e.EndDate = d.EndDate
	e.Events = d.Events
	return e
}
