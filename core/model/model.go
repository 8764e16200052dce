package model

import "matchup-model/core/tuning"

// Side is the position a team argued in a round.
type Side string

const (
	SideAff Side = "Aff"
	SideNeg Side = "Neg"
)

// Opposite returns the other side. Unknown values map to Aff.
func (s Side) Opposite() Side {
	if s == SideAff {
		return SideNeg
	}
	return SideAff
}

// ParseSide validates a raw side token.
func ParseSide(raw string) (Side, bool) {
	switch Side(raw) {
	case SideAff, SideNeg:
		return Side(raw), true
	default:
		return "", false
	}
}

// Outcome is the result of a round from one team's perspective.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeLoss Outcome = "L"
)

// Complement flips a win into a loss and vice versa.
func (o Outcome) Complement() Outcome {
	if o == OutcomeWin {
		return OutcomeLoss
	}
	return OutcomeWin
}

// Won returns 1 for a win and 0 otherwise.
func (o Outcome) Won() int {
	if o == OutcomeWin {
		return 1
	}
	return 0
}

// Sentinel opponent codes and missing-data markers.
const (
	OpponentBye     = "BYE"
	OpponentForfeit = "FORFEIT"
	MissingName     = "MISSING_DATA"
)

// IsDegenerateOpponent reports whether code is BYE or FORFEIT.
func IsDegenerateOpponent(code string) bool {
	return code == OpponentBye || code == OpponentForfeit
}

// Speaker is one member's performance in a round.
type Speaker struct {
	Points float64 `json:"points"`
	Rank   int     `json:"rank"`
}

// Speakers holds both members' scores, member 1 first.
type Speakers [2]Speaker

// ForfeitSpeakers is the zero-point, lowest-rank pair used for forfeits.
func ForfeitSpeakers() Speakers {
	return Speakers{
		{Points: 0, Rank: tuning.ForfeitRank},
		{Points: 0, Rank: tuning.ForfeitRank},
	}
}

// MissingSpeakers marks scores that could not be observed.
func MissingSpeakers() Speakers {
	return Speakers{
		{Points: tuning.MissingPoints, Rank: tuning.MissingRank},
		{Points: tuning.MissingPoints, Rank: tuning.MissingRank},
	}
}

// Zero reports whether both members scored zero points.
func (s Speakers) Zero() bool {
	return s[0].Points == 0 && s[1].Points == 0
}

// EventContext identifies the tournament and source document a round came from.
// Reciprocal matching only happens inside a single context.
type EventContext struct {
	Tournament string `json:"tournament"`
	Year       string `json:"year"`
	Source     string `json:"source"`
}

// Key returns a stable string form of the context.
func (c EventContext) Key() string {
	return c.Tournament + tuning.KeySeparator + c.Year + tuning.KeySeparator + c.Source
}
