package reconcile

import (
	"fmt"
	"sort"

	"matchup-model/core/diag"
	"matchup-model/core/model"
)

// Reconcile merges the observations of a whole batch into match records.
// It needs the complete observation set: strategies 3 and 4 look at other
// observations of the same event context.
func Reconcile(observations []model.Observation, diags *diag.Diagnostics) []model.MatchRecord {
	records, _ := ReconcileWithStrategies(observations, diags)
	return records
}

// ReconcileWithStrategies is Reconcile that also reports which strategy produced
// each record. The two slices are parallel.
func ReconcileWithStrategies(observations []model.Observation, diags *diag.Diagnostics) ([]model.MatchRecord, []Strategy) {
	groups := groupByContext(observations)

	emitted := make(map[string]struct{})
	var records []model.MatchRecord
	var strategies []Strategy
	for _, g := range groups {
		recs, strats := reconcileGroup(g, emitted, diags)
		records = append(records, recs...)
		strategies = append(strategies, strats...)
	}
	return records, strategies
}

// groupByContext partitions observations by event context. Groups come back in
// sorted context order; each group is stably sorted by (round, team).
func groupByContext(observations []model.Observation) [][]model.Observation {
	byKey := make(map[model.EventContext][]model.Observation)
	var contexts []model.EventContext
	for _, obs := range observations {
		if _, ok := byKey[obs.Context]; !ok {
			contexts = append(contexts, obs.Context)
		}
		byKey[obs.Context] = append(byKey[obs.Context], obs)
	}

	sort.Slice(contexts, func(i, j int) bool {
		a, b := contexts[i], contexts[j]
		if a.Tournament != b.Tournament {
			return a.Tournament < b.Tournament
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Source < b.Source
	})

	groups := make([][]model.Observation, 0, len(contexts))
	for _, ctx := range contexts {
		g := byKey[ctx]
		sort.SliceStable(g, func(i, j int) bool {
			if g[i].Round != g[j].Round {
				return g[i].Round < g[j].Round
			}
			return g[i].Team < g[j].Team
		})
		groups = append(groups, g)
	}
	return groups
}

type teamRound struct {
	team  string
	round int
}

// groupIndex finds observations of one group by reporting team and round.
type groupIndex struct {
	obs    []model.Observation
	byTeam map[teamRound][]int
}

func newGroupIndex(group []model.Observation) *groupIndex {
	idx := &groupIndex{obs: group, byTeam: make(map[teamRound][]int)}
	for i, o := range group {
		k := teamRound{o.Team, o.Round}
		idx.byTeam[k] = append(idx.byTeam[k], i)
	}
	return idx
}

// candidates returns the observations of team in round that satisfy keep,
// skipping the observation at index self.
func (g *groupIndex) candidates(team string, round, self int, keep func(model.Observation) bool) []model.Observation {
	var out []model.Observation
	for _, i := range g.byTeam[teamRound{team, round}] {
		if i == self {
			continue
		}
		if keep(g.obs[i]) {
			out = append(out, g.obs[i])
		}
	}
	return out
}

func reconcileGroup(group []model.Observation, emitted map[string]struct{}, diags *diag.Diagnostics) ([]model.MatchRecord, []Strategy) {
	idx := newGroupIndex(group)

	var paired, unresolved []model.MatchRecord
	var pairedStrats []Strategy

	for i, obs := range group {
		opponent := obs.Opponent()

		if model.IsDegenerateOpponent(opponent) {
			key := SingleKey(obs.Team, obs.Round, obs.Context)
			if markEmitted(emitted, key) {
				paired = append(paired, degenerateRecord(obs))
				pairedStrats = append(pairedStrats, StrategyDegenerate)
			}
			continue
		}

		key := PairKey(obs.Team, opponent, obs.Round, obs.Context)
		if _, done := emitted[key]; done {
			continue
		}

		team2, strategy, ok := findReciprocal(idx, i, obs, diags)
		if ok {
			emitted[key] = struct{}{}
			rec := model.MatchRecord{
				Round:   obs.Round,
				Context: obs.Context,
				Team1:   obs.AsSide(),
				Team2:   team2,
			}
			if rec.Team1.Won == rec.Team2.Won {
				diags.Record(diag.Entry{
					Kind:   diag.ReconciliationAmbiguity,
					Source: obs.Context.Source,
					Team:   obs.Team,
					Round:  obs.Round,
					Reason: fmt.Sprintf("%s and %s both report a %s", obs.Team, team2.Code, outcomeWord(rec.Team1.Won)),
				})
			}
			paired = append(paired, rec)
			pairedStrats = append(pairedStrats, strategy)
			continue
		}

		if !markEmitted(emitted, SingleKey(obs.Team, obs.Round, obs.Context)) {
			continue
		}
		diags.Record(diag.Entry{
			Kind:   diag.ReconciliationMiss,
			Source: obs.Context.Source,
			Team:   obs.Team,
			Round:  obs.Round,
			Reason: fmt.Sprintf("no reciprocal observation from %s", opponent),
		})
		unresolved = append(unresolved, unresolvedRecord(obs))
	}

	strategies := pairedStrats
	for range unresolved {
		strategies = append(strategies, StrategyUnresolved)
	}
	return append(paired, unresolved...), strategies
}

// findReciprocal applies strategies 2 to 4 to a regular observation.
func findReciprocal(idx *groupIndex, self int, obs model.Observation, diags *diag.Diagnostics) (model.TeamSide, Strategy, bool) {
	opponent := obs.Opponent()

	exact := idx.candidates(opponent, obs.Round, self, func(o model.Observation) bool {
		return o.Opponent() == obs.Team
	})
	if len(exact) > 0 {
		if len(exact) > 1 {
			diags.Record(diag.Entry{
				Kind:   diag.ReconciliationAmbiguity,
				Source: obs.Context.Source,
				Team:   obs.Team,
				Round:  obs.Round,
				Reason: fmt.Sprintf("%d reciprocal observations from %s, using the first", len(exact), opponent),
			})
		}
		return exact[0].AsSide(), StrategyExact, true
	}

	forfeits := idx.candidates(opponent, obs.Round, self, func(o model.Observation) bool {
		return o.Opponent() == model.OpponentForfeit
	})
	if len(forfeits) > 0 {
		if len(forfeits) > 1 {
			diags.Record(diag.Entry{
				Kind:   diag.ReconciliationAmbiguity,
				Source: obs.Context.Source,
				Team:   obs.Team,
				Round:  obs.Round,
				Reason: fmt.Sprintf("%d forfeit observations from %s, using the first", len(forfeits), opponent),
			})
		}
		side := forfeits[0].AsSide()
		side.Side = obs.Side().Opposite()
		side.Speakers = model.ForfeitSpeakers()
		side.Won = model.OutcomeLoss.Won()
		return side, StrategyOpponentForfeit, true
	}

	if obs.Outcome() == model.OutcomeLoss && obs.Speakers().Zero() {
		wins := idx.candidates(opponent, obs.Round, self, func(o model.Observation) bool {
			return o.Outcome() == model.OutcomeWin
		})
		if len(wins) == 1 {
			return wins[0].AsSide(), StrategyImplicitForfeit, true
		}
	}

	return model.TeamSide{}, "", false
}

// degenerateRecord builds the record of a BYE or FORFEIT observation.
// The synthesized opponent wins against a forfeit and loses against a bye.
func degenerateRecord(obs model.Observation) model.MatchRecord {
	team1 := obs.AsSide()
	won := obs.Outcome().Complement().Won()
	if obs.Opponent() == model.OpponentForfeit {
		won = model.OutcomeWin.Won()
	}
	return model.MatchRecord{
		Round:   obs.Round,
		Context: obs.Context,
		Team1:   team1,
		Team2: model.TeamSide{
			Code: obs.Opponent(),
			Side: team1.Side.Opposite(),
			Won:  won,
		},
	}
}

// unresolvedRecord builds a partial record whose Team2 is marked missing.
func unresolvedRecord(obs model.Observation) model.MatchRecord {
	team1 := obs.AsSide()
	return model.MatchRecord{
		Round:   obs.Round,
		Context: obs.Context,
		Team1:   team1,
		Team2: model.TeamSide{
			Code:     obs.Opponent(),
			Side:     team1.Side.Opposite(),
			Member1:  model.MissingName,
			Member2:  model.MissingName,
			Speakers: model.MissingSpeakers(),
			Won:      obs.Outcome().Complement().Won(),
			Missing:  true,
		},
	}
}

// markEmitted records key and reports whether it was new.
func markEmitted(emitted map[string]struct{}, key string) bool {
	if _, done := emitted[key]; done {
		return false
	}
	emitted[key] = struct{}{}
	return true
}

func outcomeWord(won int) string {
	if won == 1 {
		return "win"
	}
	return "loss"
}
