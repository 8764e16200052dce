package cumulative

import (
	"testing"

	"matchup-model/core/diag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNoise(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Friday, March 1, 2024", true},
		{"Page 3 of 12", true},
		{"Team Policy", true},
		{"Preliminary Round Results", true},
		{"NCFCA Region 5 Qualifier 2024", true},
		{"Spring Open 2019", true},
		{"Spring Open 1999", false},
		{"ABC HomeSchool Club", false},
		{"27.5*", false},
		{"2 - 0", false},
		{"page 3", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNoise(tt.line))
		})
	}
}

func TestNoiseFilter_ExtraMarkers(t *testing.T) {
	f := NewNoiseFilter("Cumulative Report")
	assert.True(t, f.IsNoise("Cumulative Report"))
	assert.True(t, f.IsNoise("Monday"))
	assert.False(t, IsNoise("Cumulative Report"))
}

func TestIsSummary(t *testing.T) {
	assert.True(t, IsSummary("2 - 0"))
	assert.True(t, IsSummary("10-2"))
	assert.True(t, IsSummary("3  -  3"))
	assert.False(t, IsSummary("2 - 0 W"))
	assert.False(t, IsSummary("Round 2 - 0"))
	assert.False(t, IsSummary("2 -"))
}

func TestSplitBlocks(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"Two closed blocks", []string{"a", "1 - 0", "b", "0 - 1"}, 2},
		{"Trailing partial", []string{"a", "1 - 0", "b", "c"}, 2},
		{"Trailing blank", []string{"a", "1 - 0", "", "  "}, 1},
		{"No summary", []string{"a", "b", "c"}, 1},
		{"Empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := SplitBlocks(tt.lines)
			assert.Len(t, blocks, tt.want)

			summaries := 0
			for _, l := range tt.lines {
				if IsSummary(l) {
					summaries++
				}
			}
			assert.LessOrEqual(t, len(blocks)-summaries, 1)
			assert.GreaterOrEqual(t, len(blocks), summaries)
		})
	}
}

func TestSplitBlocks_SummaryIsInclusive(t *testing.T) {
	blocks := SplitBlocks([]string{"a", "b", "c", "1 - 0", "d"})
	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"a", "b", "c", "1 - 0"}, blocks[0])
	assert.Equal(t, []string{"d"}, blocks[1])
}

func TestCleanBlock(t *testing.T) {
	got := CleanBlock([]string{"Page 2", "John Smith", "", "ABC Club", "Saturday, March 2, 2024", "Jane Doe"})
	assert.Equal(t, []string{"John Smith", "ABC Club", "Jane Doe"}, got)
}

func TestSegment(t *testing.T) {
	doc := NewDocument("2024_x.txt", "Page 1\nJohn Smith\nABC Club\nJane Doe\nFORFEIT\n0 - 1\nPage 2\nTeam Policy\n2024\n0 - 0\n")
	diags := diag.New()

	blocks := Segment(doc, diags)

	require.Len(t, blocks, 1)
	assert.Equal(t, 0, blocks[0].Index)
	assert.Equal(t, "John Smith", blocks[0].Lines[0])

	failures := diags.Entries(diag.SegmentationFailure)
	require.Len(t, failures, 1)
	assert.Equal(t, "2024_x.txt", failures[0].Source)
	assert.Equal(t, []string{"0 - 0"}, failures[0].Fragment)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "", "c"}, SplitLines("  a\r\nb \n\nc"))
}
