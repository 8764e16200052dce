package matches

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndList(t *testing.T) {
	store := NewStore(setupDB(t))
	ctx := context.Background()
	records := sampleRecords()

	n, err := store.SaveAll(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := store.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestStore_SaveAllUpserts(t *testing.T) {
	store := NewStore(setupDB(t))
	ctx := context.Background()
	records := sampleRecords()

	_, err := store.SaveAll(ctx, records)
	require.NoError(t, err)

	records[0].Team1Stats = nil
	records[0].Team1.Speakers[0].Points = 29
	_, err = store.SaveAll(ctx, records)
	require.NoError(t, err)

	total, err := store.Count(ctx, Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	got, err := store.List(ctx, Filter{Round: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Team1Stats)
	assert.Equal(t, 29.0, got[0].Team1.Speakers[0].Points)
}

func TestStore_Filters(t *testing.T) {
	store := NewStore(setupDB(t))
	ctx := context.Background()
	_, err := store.SaveAll(ctx, sampleRecords())
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"All", Filter{}, 3},
		{"Team on either side", Filter{Team: "XYZ"}, 2},
		{"Team and round", Filter{Team: "XYZ", Round: 2}, 1},
		{"Year", Filter{Year: "2024"}, 3},
		{"Other year", Filter{Year: "2019"}, 0},
		{"Tournament", Filter{Tournament: "NCFCA Region 5 Qualifier"}, 3},
		{"Source", Filter{Source: "other.txt"}, 0},
		{"Limit", Filter{Limit: 2}, 2},
		{"Offset", Filter{Limit: 10, Offset: 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestStore_SaveAllEmpty(t *testing.T) {
	n, err := NewStore(setupDB(t)).SaveAll(context.Background(), nil)
	assert.NoError(t, err)
	assert.Zero(t, n)
}
