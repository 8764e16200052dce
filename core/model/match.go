package model

// TeamSide is one half of a MatchRecord.
type TeamSide struct {
	Code     string   `json:"code"`
	Side     Side     `json:"side"`
	Member1  string   `json:"member1_name"`
	Member2  string   `json:"member2_name"`
	Speakers Speakers `json:"speakers"`
	Won      int      `json:"won"`
	// Missing is set when the side was synthesized because no reciprocal
	// observation could be found.
	Missing bool `json:"missing,omitempty"`
}

// MatchRecord is the reconciled two-sided record of one round.
type MatchRecord struct {
	Round   int          `json:"round_number"`
	Context EventContext `json:"context"`
	Team1   TeamSide     `json:"team1"`
	Team2   TeamSide     `json:"team2"`

	// Stats are attached by the identity resolver; nil means no registry match.
	Team1Stats *TeamStats `json:"team1_stats,omitempty"`
	Team2Stats *TeamStats `json:"team2_stats,omitempty"`
}

// Degenerate reports whether the record was produced without a real reciprocal.
func (m MatchRecord) Degenerate() bool {
	return IsDegenerateOpponent(m.Team2.Code) || m.Team2.Missing
}

// TeamStats are the registry-derived statistics for one team.
// Pointer fields are nil when the underlying data was unavailable.
type TeamStats struct {
	TotalWins              int      `json:"total_wins"`
	TotalLosses            int      `json:"total_losses"`
	PrelimWins             int      `json:"prelim_wins"`
	PrelimLosses           int      `json:"prelim_losses"`
	NumTournaments         int      `json:"num_tournaments"`
	RankPoints             float64  `json:"rank_points"`
	NationalRank           *int     `json:"national_rank,omitempty"`
	StateRank              *int     `json:"state_rank,omitempty"`
	WinRate                float64  `json:"win_rate"`
	PrelimWinRate          float64  `json:"prelim_win_rate"`
	TotalRounds            int      `json:"total_rounds"`
	AvgPointsPerTournament *float64 `json:"avg_points_per_tournament,omitempty"`
	NationalExposure       *int     `json:"national_exposure,omitempty"`
	AvgTournamentSize      *float64 `json:"avg_tournament_size,omitempty"`
	TournamentPoints       *float64 `json:"tournament_points,omitempty"`
}
