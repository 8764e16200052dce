package reconcile

import (
	"testing"

	"matchup-model/core/diag"
	"matchup-model/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCtx = model.EventContext{Tournament: "State Qualifier", Year: "2024", Source: "2024_state.txt"}

func speakers(p1 float64, r1 int, p2 float64, r2 int) model.Speakers {
	return model.Speakers{{Points: p1, Rank: r1}, {Points: p2, Rank: r2}}
}

func regular(team, opp string, round int, side model.Side, out model.Outcome, sp model.Speakers) model.Observation {
	return model.Observation{
		Team:    team,
		Member1: team + " One",
		Member2: team + " Two",
		Round:   round,
		Context: testCtx,
		Result:  model.RegularRound{Opponent: opp, Side: side, Outcome: out, Speakers: sp},
	}
}

func bye(team string, round int) model.Observation {
	return model.Observation{Team: team, Round: round, Context: testCtx, Result: model.ByeRound{Speakers: speakers(30, 1, 29.5, 2)}}
}

func forfeit(team string, round int) model.Observation {
	return model.Observation{Team: team, Round: round, Context: testCtx, Result: model.ForfeitRound{}}
}

func TestReconcile_ExactReciprocal(t *testing.T) {
	obs := []model.Observation{
		regular("ABC", "XYZ", 1, model.SideAff, model.OutcomeWin, speakers(27.5, 2, 28, 1)),
		regular("XYZ", "ABC", 1, model.SideNeg, model.OutcomeLoss, speakers(27, 3, 26.5, 4)),
	}
	diags := diag.New()

	records, strategies := ReconcileWithStrategies(obs, diags)

	require.Len(t, records, 1)
	assert.Equal(t, []Strategy{StrategyExact}, strategies)
	r := records[0]
	assert.Equal(t, "ABC", r.Team1.Code)
	assert.Equal(t, "XYZ", r.Team2.Code)
	assert.Equal(t, model.SideAff, r.Team1.Side)
	assert.Equal(t, model.SideNeg, r.Team2.Side)
	assert.Equal(t, 1, r.Team1.Won+r.Team2.Won, "exactly one side wins")
	assert.Equal(t, 1, r.Team1.Won)
	assert.InDelta(t, 26.5, r.Team2.Speakers[1].Points, 1e-9)
	assert.Zero(t, diags.Total())
}

func TestReconcile_Degenerate(t *testing.T) {
	tests := []struct {
		name      string
		obs       model.Observation
		team1Won  int
		team2Won  int
		team2Code string
	}{
		{"Bye", bye("ABC", 2), 1, 0, model.OpponentBye},
		{"Forfeit", forfeit("ABC", 3), 0, 1, model.OpponentForfeit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, strategies := ReconcileWithStrategies([]model.Observation{tt.obs}, diag.New())

			require.Len(t, records, 1)
			assert.Equal(t, StrategyDegenerate, strategies[0])
			r := records[0]
			assert.Equal(t, tt.team2Code, r.Team2.Code)
			assert.Equal(t, model.SideAff, r.Team1.Side)
			assert.Equal(t, model.SideNeg, r.Team2.Side)
			assert.Equal(t, tt.team1Won, r.Team1.Won)
			assert.Equal(t, tt.team2Won, r.Team2.Won)
			assert.Empty(t, r.Team2.Member1)
			assert.Equal(t, model.Speakers{}, r.Team2.Speakers)
			assert.False(t, r.Team2.Missing)
		})
	}
}

func TestReconcile_DegenerateDeduplicated(t *testing.T) {
	records := Reconcile([]model.Observation{bye("ABC", 2), bye("ABC", 2)}, diag.New())
	assert.Len(t, records, 1)
}

func TestReconcile_Unresolved(t *testing.T) {
	obs := []model.Observation{
		regular("ABC", "QRS", 1, model.SideNeg, model.OutcomeWin, speakers(28, 1, 27, 2)),
	}
	diags := diag.New()

	records, strategies := ReconcileWithStrategies(obs, diags)

	require.Len(t, records, 1)
	assert.Equal(t, StrategyUnresolved, strategies[0])
	r := records[0]
	assert.Equal(t, "QRS", r.Team2.Code)
	assert.True(t, r.Team2.Missing)
	assert.Equal(t, model.MissingName, r.Team2.Member1)
	assert.Equal(t, model.MissingName, r.Team2.Member2)
	assert.Equal(t, model.MissingSpeakers(), r.Team2.Speakers)
	assert.Equal(t, model.SideAff, r.Team2.Side)
	assert.Equal(t, 0, r.Team2.Won)
	assert.Equal(t, 1, diags.Count(diag.ReconciliationMiss))

	entries := diags.Entries(diag.ReconciliationMiss)
	require.Len(t, entries, 1)
	assert.Equal(t, "ABC", entries[0].Team)
	assert.Equal(t, 1, entries[0].Round)
}

func TestReconcile_OpponentForfeited(t *testing.T) {
	obs := []model.Observation{
		regular("ABC", "XYZ", 1, model.SideNeg, model.OutcomeWin, speakers(28, 1, 27, 2)),
		forfeit("XYZ", 1),
	}
	diags := diag.New()

	records, strategies := ReconcileWithStrategies(obs, diags)

	require.Len(t, records, 2)
	assert.Equal(t, []Strategy{StrategyOpponentForfeit, StrategyDegenerate}, strategies)

	paired := records[0]
	assert.Equal(t, "ABC", paired.Team1.Code)
	assert.Equal(t, "XYZ", paired.Team2.Code)
	assert.Equal(t, model.SideAff, paired.Team2.Side, "side flipped from Team1")
	assert.Equal(t, model.ForfeitSpeakers(), paired.Team2.Speakers)
	assert.Equal(t, 0, paired.Team2.Won)

	assert.Equal(t, model.OpponentForfeit, records[1].Team2.Code)
	assert.Zero(t, diags.Total())
}

func TestReconcile_ImplicitForfeit(t *testing.T) {
	obs := []model.Observation{
		regular("ABC", "XYZ", 2, model.SideAff, model.OutcomeLoss, speakers(0, 4, 0, 4)),
		// XYZ printed a mangled opponent code, so no exact reciprocal exists.
		regular("XYZ", "AB", 2, model.SideNeg, model.OutcomeWin, speakers(28, 1, 28.5, 1)),
	}
	diags := diag.New()

	records, strategies := ReconcileWithStrategies(obs, diags)

	require.Len(t, records, 2)
	assert.Equal(t, []Strategy{StrategyImplicitForfeit, StrategyUnresolved}, strategies)
	assert.Equal(t, "ABC", records[0].Team1.Code)
	assert.Equal(t, "XYZ", records[0].Team2.Code)
	assert.Equal(t, 1, records[0].Team2.Won)
	assert.Equal(t, "AB", records[1].Team2.Code)
	assert.Equal(t, 1, diags.Count(diag.ReconciliationMiss))
}

func TestReconcile_ImplicitForfeitNeedsZeroPoints(t *testing.T) {
	obs := []model.Observation{
		regular("ABC", "XYZ", 2, model.SideAff, model.OutcomeLoss, speakers(27, 3, 26, 4)),
		regular("XYZ", "AB", 2, model.SideNeg, model.OutcomeWin, speakers(28, 1, 28.5, 1)),
	}
	records, strategies := ReconcileWithStrategies(obs, diag.New())

	require.Len(t, records, 2)
	assert.Equal(t, []Strategy{StrategyUnresolved, StrategyUnresolved}, strategies)
}

func TestReconcile_DuplicateReciprocalIsAmbiguous(t *testing.T) {
	obs := []model.Observation{
		regular("ABC", "XYZ", 1, model.SideAff, model.OutcomeWin, speakers(28, 1, 27, 2)),
		regular("XYZ", "ABC", 1, model.SideNeg, model.OutcomeLoss, speakers(26, 3, 25, 4)),
		regular("XYZ", "ABC", 1, model.SideNeg, model.OutcomeLoss, speakers(24, 3, 23, 4)),
	}
	diags := diag.New()

	records := Reconcile(obs, diags)

	require.Len(t, records, 1)
	assert.InDelta(t, 26, records[0].Team2.Speakers[0].Points, 1e-9, "first candidate wins")
	assert.Equal(t, 1, diags.Count(diag.ReconciliationAmbiguity))
}

func TestReconcile_BothSidesLostIsFlagged(t *testing.T) {
	obs := []model.Observation{
		regular("ABC", "XYZ", 1, model.SideAff, model.OutcomeLoss, speakers(28, 1, 27, 2)),
		regular("XYZ", "ABC", 1, model.SideNeg, model.OutcomeLoss, speakers(26, 3, 25, 4)),
	}
	diags := diag.New()

	records := Reconcile(obs, diags)

	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].Team1.Won)
	assert.Equal(t, 0, records[0].Team2.Won)
	assert.Equal(t, 1, diags.Count(diag.ReconciliationAmbiguity))
}

func TestReconcile_NoMatchingAcrossContexts(t *testing.T) {
	a := regular("ABC", "XYZ", 1, model.SideAff, model.OutcomeWin, speakers(28, 1, 27, 2))
	b := regular("XYZ", "ABC", 1, model.SideNeg, model.OutcomeLoss, speakers(26, 3, 25, 4))
	b.Context.Source = "2024_other.txt"
	diags := diag.New()

	records := Reconcile([]model.Observation{a, b}, diags)

	require.Len(t, records, 2)
	assert.True(t, records[0].Team2.Missing)
	assert.True(t, records[1].Team2.Missing)
	assert.Equal(t, 2, diags.Count(diag.ReconciliationMiss))
}

func TestReconcile_UnresolvedAfterPairedInGroup(t *testing.T) {
	obs := []model.Observation{
		regular("AAA", "QRS", 1, model.SideAff, model.OutcomeWin, speakers(28, 1, 27, 2)),
		regular("ABC", "XYZ", 1, model.SideAff, model.OutcomeWin, speakers(28, 1, 27, 2)),
		regular("XYZ", "ABC", 1, model.SideNeg, model.OutcomeLoss, speakers(26, 3, 25, 4)),
	}
	records := Reconcile(obs, diag.New())

	require.Len(t, records, 2)
	assert.False(t, records[0].Team2.Missing)
	assert.True(t, records[1].Team2.Missing)
}

func TestReconcile_Deterministic(t *testing.T) {
	obs := []model.Observation{
		regular("ABC", "XYZ", 1, model.SideAff, model.OutcomeWin, speakers(27.5, 2, 28, 1)),
		regular("XYZ", "ABC", 1, model.SideNeg, model.OutcomeLoss, speakers(27, 3, 26.5, 4)),
		regular("ABC", "DEF", 2, model.SideNeg, model.OutcomeLoss, speakers(27, 3, 26.5, 4)),
		regular("DEF", "ABC", 2, model.SideAff, model.OutcomeWin, speakers(29, 1, 28, 2)),
		bye("XYZ", 2),
		regular("DEF", "QRS", 1, model.SideAff, model.OutcomeWin, speakers(29, 1, 28, 2)),
	}
	reversed := make([]model.Observation, len(obs))
	for i := range obs {
		reversed[len(obs)-1-i] = obs[i]
	}

	first := Reconcile(obs, diag.New())
	second := Reconcile(obs, diag.New())
	third := Reconcile(reversed, diag.New())

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)

	seen := make(map[string]struct{})
	for _, r := range first {
		key := RecordKey(r)
		_, dup := seen[key]
		assert.False(t, dup, "duplicate record %s", key)
		seen[key] = struct{}{}
	}
	assert.Len(t, first, 4)
}

func TestReconcile_GroupsInContextOrder(t *testing.T) {
	late := bye("ABC", 1)
	late.Context = model.EventContext{Tournament: "Zeta Open", Year: "2023", Source: "z.txt"}
	early := bye("ABC", 1)
	early.Context = model.EventContext{Tournament: "Alpha Cup", Year: "2023", Source: "a.txt"}

	records := Reconcile([]model.Observation{late, early}, diag.New())

	require.Len(t, records, 2)
	assert.Equal(t, "Alpha Cup", records[0].Context.Tournament)
	assert.Equal(t, "Zeta Open", records[1].Context.Tournament)
}

func TestPairKey_Symmetric(t *testing.T) {
	assert.Equal(t, PairKey("ABC", "XYZ", 3, testCtx), PairKey("XYZ", "ABC", 3, testCtx))
	assert.NotEqual(t, PairKey("ABC", "XYZ", 3, testCtx), PairKey("ABC", "XYZ", 4, testCtx))
	assert.NotEqual(t, PairKey("ABC", "XYZ", 3, testCtx), SingleKey("ABC", 3, testCtx))
}
