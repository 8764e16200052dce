package matches

import (
	"testing"

	"matchup-model/core/database"
	"matchup-model/core/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleRecords() []model.MatchRecord {
	region := model.EventContext{Tournament: "NCFCA Region 5 Qualifier", Year: "2024", Source: "2024_region5.txt"}
	abc := model.TeamSide{
		Code: "ABC", Side: model.SideAff, Member1: "John Smith", Member2: "Jane Doe",
		Speakers: model.Speakers{{Points: 28.5, Rank: 1}, {Points: 27, Rank: 2}}, Won: 1,
	}
	xyz := model.TeamSide{
		Code: "XYZ", Side: model.SideNeg, Member1: "Alex Roe", Member2: "Blair Poe",
		Speakers: model.Speakers{{Points: 27.5, Rank: 3}, {Points: 26, Rank: 4}},
	}
	stats := &model.TeamStats{
		TotalWins: 10, TotalLosses: 5, PrelimWins: 8, PrelimLosses: 2, NumTournaments: 3,
		RankPoints: 55.5, NationalRank: intPtr(12), WinRate: 10.0 / 15.0, PrelimWinRate: 0.8,
		TotalRounds: 15, AvgPointsPerTournament: floatPtr(20), NationalExposure: intPtr(2),
		AvgTournamentSize: floatPtr(18), TournamentPoints: floatPtr(24),
	}

	xyzRound2 := xyz
	xyzRound2.Side = model.SideAff
	return []model.MatchRecord{
		{Round: 1, Context: region, Team1: abc, Team2: xyz, Team1Stats: stats},
		{Round: 2, Context: region, Team1: abc, Team2: model.TeamSide{Code: model.OpponentBye, Side: model.SideNeg}, Team1Stats: stats},
		{Round: 2, Context: region, Team1: xyzRound2, Team2: model.TeamSide{
			Code: "QRS", Side: model.SideNeg, Member1: model.MissingName, Member2: model.MissingName,
			Speakers: model.MissingSpeakers(), Won: 1, Missing: true,
		}},
	}
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, NewStore(db).Migrate())
	return db
}
