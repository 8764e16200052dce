package reconcile

import (
	"strconv"
	"strings"

	"matchup-model/core/model"
	"matchup-model/core/tuning"
)

// PairKey returns the canonical key of a paired record. It is symmetric in the
// two team codes.
func PairKey(teamA, teamB string, round int, ctx model.EventContext) string {
	if teamB < teamA {
		teamA, teamB = teamB, teamA
	}
	return join("pair", teamA, teamB, strconv.Itoa(round), ctx.Key())
}

// SingleKey returns the key of a degenerate or unresolved record, which is
// owned by the reporting team alone.
func SingleKey(team string, round int, ctx model.EventContext) string {
	return join("single", team, strconv.Itoa(round), ctx.Key())
}

// RecordKey returns the dedupe key a record was emitted under.
func RecordKey(r model.MatchRecord) string {
	if r.Degenerate() {
		return SingleKey(r.Team1.Code, r.Round, r.Context)
	}
	return PairKey(r.Team1.Code, r.Team2.Code, r.Round, r.Context)
}

func join(parts ...string) string {
	return strings.Join(parts, tuning.KeySeparator)
}
