package identity

import (
	"testing"

	"matchup-model/core/tuning"
	"matchup-model/feature/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tpEvent(name, state, population string) registry.EventRecord {
	return registry.EventRecord{
		Name:   name,
		State:  state,
		Events: []registry.SubEvent{{Name: tuning.FieldSizeEvent, Population: population}},
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"NCFCA Region 5 Qualifier", []string{"ncfca", "region", "qualifier"}},
		{"The 2024 Lone Star Invitational", []string{"lone", "star"}},
		{"Battle of the Bay Championship", []string{"battle", "bay"}},
		{"St. Louis Forum at the Arch", []string{"louis", "arch"}},
		{"The Classic", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Keywords(tt.in)
			assert.Len(t, got, len(tt.want))
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	set := func(words ...string) map[string]struct{} {
		m := make(map[string]struct{})
		for _, w := range words {
			m[w] = struct{}{}
		}
		return m
	}

	assert.InDelta(t, 1.0, Jaccard(set("a", "b"), set("b", "a")), 1e-9)
	assert.InDelta(t, 2.0/3.0, Jaccard(set("a", "b", "c"), set("a", "b")), 1e-9)
	assert.InDelta(t, 0.25, Jaccard(set("a", "b"), set("a", "c", "d")), 1e-9)
	assert.Zero(t, Jaccard(set(), set()))
}

func TestEventIndex_Match(t *testing.T) {
	events := []registry.EventRecord{
		tpEvent("Beta Spring Open", "OK", "10"),
		tpEvent("Alpha Spring Open", "TX", "20"),
		tpEvent("Region 5 Qualifier", "TX", "24"),
		{Name: "Speech Only Showcase", State: "CA", Events: []registry.SubEvent{{Name: "Impromptu", Population: "30"}}},
	}
	idx := NewEventIndex(events, tuning.FieldSizeEvent, tuning.JaccardThreshold)

	assert.Equal(t, 3, idx.Len(), "events without the field size event are not indexed")

	t.Run("Exact", func(t *testing.T) {
		info, ok := idx.Match("Beta Spring Open")
		require.True(t, ok)
		assert.Equal(t, "OK", info.State)
		assert.Equal(t, 10, info.FieldSize)
	})

	t.Run("Fuzzy", func(t *testing.T) {
		info, ok := idx.Match("NCFCA Region 5 Qualifier 2024")
		require.True(t, ok)
		assert.Equal(t, "Region 5 Qualifier", info.Name)
	})

	t.Run("Tie resolves to first name", func(t *testing.T) {
		info, ok := idx.Match("Spring Open")
		require.True(t, ok)
		assert.Equal(t, "Alpha Spring Open", info.Name)
	})

	t.Run("Below threshold", func(t *testing.T) {
		_, ok := idx.Match("Spring Gala Cup")
		assert.False(t, ok)
	})

	t.Run("Only stopwords", func(t *testing.T) {
		_, ok := idx.Match("The 2024 Invitational")
		assert.False(t, ok)
	})

	t.Run("Unindexed event", func(t *testing.T) {
		_, ok := idx.Match("Speech Only Showcase")
		assert.False(t, ok)
	})
}

func TestTeamIndex(t *testing.T) {
	n := defaultNormalizer(t)
	teams := []registry.TeamRecord{
		{TeamID: 1, Debater1: registry.Debater{Name: "John Smith"}, Debater2: registry.Debater{Name: "Jane Doe"}},
		{TeamID: 2, Debater1: registry.Debater{Name: "JOHN SMITH"}, Debater2: registry.Debater{Name: "Jane Doe"}},
		{TeamID: 3, Debater1: registry.Debater{Name: "Solo Person"}},
		{TeamID: 4, Debater1: registry.Debater{Name: "José de la Cruz"}, Debater2: registry.Debater{Name: "Ana Díaz"}},
	}
	idx := NewTeamIndex(teams, n, "|")

	t.Run("First registered wins", func(t *testing.T) {
		team, ok := idx.Lookup(n.TeamKeys("john smith", "jane doe", "|"))
		require.True(t, ok)
		assert.Equal(t, 1, team.TeamID)
	})

	t.Run("Reversed member order", func(t *testing.T) {
		team, ok := idx.Lookup(n.TeamKeys("Ana Diaz", "Jose De La Cruz", "|"))
		require.True(t, ok)
		assert.Equal(t, 4, team.TeamID)
	})

	t.Run("Initials", func(t *testing.T) {
		team, ok := idx.Lookup(n.TeamKeys("J Smith", "Jane D", "|"))
		require.True(t, ok)
		assert.Equal(t, 1, team.TeamID)
	})

	t.Run("Miss", func(t *testing.T) {
		_, ok := idx.Lookup(n.TeamKeys("Solo Person", "Other Person", "|"))
		assert.False(t, ok)
	})
}
