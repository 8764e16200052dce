package registry

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"matchup-model/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDirSource_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := DirSource{Dir: filepath.Join(t.TempDir(), "registry")}

	teams := []TeamRecord{{
		Debater1:    Debater{Name: "John Smith"},
		Debater2:    Debater{Name: "Jane Doe"},
		TotalWins:   "12",
		Tournaments: []TournamentResult{{Name: "Open", Place: "1", Points: "20"}},
	}}
	events := []EventRecord{{Name: "Open", State: "tx", Events: []SubEvent{{Name: TeamPolicyEvent, Population: "16"}}}}

	require.NoError(t, src.SaveTeams("2024", teams))
	require.NoError(t, src.SaveEvents("2024", events))

	gotTeams, err := src.Teams(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, gotTeams, 1)
	assert.Equal(t, "John Smith", gotTeams[0].Debater1.Name)
	assert.Equal(t, 12, gotTeams[0].Wins())

	gotEvents, err := src.Events(ctx, "2024")
	require.NoError(t, err)
	size, ok := gotEvents[0].FieldSize(TeamPolicyEvent)
	assert.True(t, ok)
	assert.Equal(t, 16, size)
}

func TestDirSource_Errors(t *testing.T) {
	dir := t.TempDir()
	src := DirSource{Dir: dir}

	_, err := src.Teams(context.Background(), "2019")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, EventsFile("2019")), []byte("{not json"), 0o644))
	_, err = src.Events(context.Background(), "2019")
	assert.ErrorContains(t, err, "failed to decode")
	assert.False(t, errors.Is(err, ErrNotFound))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Teams(ctx, "2019")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorageSource(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	src := StorageSource{Client: client, Bucket: "debate", Prefix: "registry"}

	client.ExpectGet("debate", "registry/debate_teams_2024.json",
		`[{"debater1":{"name":"A B"},"debater2":{"name":"C D"},"total_wins":3}]`)
	client.On("GetObject", ctx, "debate", "registry/tournaments_2024.json", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey", Message: "missing"})
	client.On("GetObject", ctx, "debate", "registry/debate_teams_2023.json", mock.Anything).
		Return(nil, errors.New("connection reset"))

	teams, err := src.Teams(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, 3, teams[0].Wins())

	_, err = src.Events(ctx, "2024")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.Teams(ctx, "2023")
	assert.ErrorContains(t, err, "connection reset")
	assert.False(t, errors.Is(err, ErrNotFound))

	client.AssertExpectations(t)
}

func TestStorageSource_Save(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	src := StorageSource{Client: client, Bucket: "debate", Prefix: "registry/"}

	var uploaded []byte
	client.On("PutObject", ctx, "debate", "registry/tournaments_2024.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	err := src.SaveEvents(ctx, "2024", []EventRecord{{Name: "Open", State: "tx"}})
	require.NoError(t, err)

	assert.True(t, bytes.Contains(uploaded, []byte(`"name": "Open"`)))
	client.AssertExpectations(t)
}
