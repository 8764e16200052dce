package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRecord_LooseValues(t *testing.T) {
	data := `{
	  "debater1": {"name": "John Smith"},
	  "debater2": {"name": "Jane Doe"},
	  "total_wins": "12",
	  "total_losses": 4,
	  "prelim_wins": 9.0,
	  "rank_points": "101.5",
	  "national_rank": "",
	  "state_rank": 7,
	  "tournaments": [{"name": "Open", "place": "3", "points": "20.5"}, {"name": "Cup", "place": "", "points": 10}]
	}`

	var team TeamRecord
	require.NoError(t, json.Unmarshal([]byte(data), &team))

	assert.True(t, team.HasMembers())
	assert.Equal(t, 12, team.Wins())
	assert.Equal(t, 4, team.Losses())
	assert.Equal(t, 9, team.PrelimWon())
	assert.Equal(t, 0, team.PrelimLost())
	assert.InDelta(t, 101.5, team.Points(), 1e-9)
	assert.Nil(t, team.National())
	require.NotNil(t, team.StateRanking())
	assert.Equal(t, 7, *team.StateRanking())

	place, ok := team.Tournaments[0].PlaceValue()
	assert.True(t, ok)
	assert.Equal(t, 3, place)
	_, ok = team.Tournaments[1].PlaceValue()
	assert.False(t, ok)
	assert.InDelta(t, 10, team.Tournaments[1].PointsValue(), 1e-9)
}

func TestTeamRecord_HasMembers(t *testing.T) {
	assert.False(t, TeamRecord{Debater1: Debater{Name: "John"}}.HasMembers())
	assert.False(t, TeamRecord{Debater1: Debater{Name: " "}, Debater2: Debater{Name: "Jane"}}.HasMembers())
}

func TestEventRecord_FieldSize(t *testing.T) {
	tests := []struct {
		name   string
		events []SubEvent
		want   int
		wantOK bool
	}{
		{"String population", []SubEvent{{Name: "Team Policy Debate", Population: "24"}}, 24, true},
		{"Number population", []SubEvent{{Name: "Team Policy Debate", Population: 30.0}}, 30, true},
		{"First match wins", []SubEvent{{Name: "Lincoln Douglas Debate", Population: "40"}, {Name: "Open Team Policy Debate", Population: "12"}, {Name: "Team Policy Debate", Population: "99"}}, 12, true},
		{"Zero population", []SubEvent{{Name: "Team Policy Debate", Population: "0"}}, 0, false},
		{"No event", []SubEvent{{Name: "Parliamentary Debate", Population: "10"}}, 0, false},
		{"Missing population", []SubEvent{{Name: "Team Policy Debate"}}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EventRecord{Events: tt.events}.FieldSize(TeamPolicyEvent)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
