package reconcile

// Strategy names the rule that produced a MatchRecord.
type Strategy string

const (
	// StrategyDegenerate covers BYE and FORFEIT observations.
	StrategyDegenerate Strategy = "degenerate"
	// StrategyExact pairs two observations that name each other.
	StrategyExact Strategy = "exact"
	// StrategyOpponentForfeit synthesizes Team2 from the opponent's FORFEIT observation.
	StrategyOpponentForfeit Strategy = "opponent_forfeit"
	// StrategyImplicitForfeit pairs a zero-point loss with the opponent's only win.
	StrategyImplicitForfeit Strategy = "implicit_forfeit"
	// StrategyUnresolved fills Team2 with missing-data sentinels.
	StrategyUnresolved Strategy = "unresolved"
)

// Strategies lists every strategy in priority order.
var Strategies = []Strategy{
	StrategyDegenerate,
	StrategyExact,
	StrategyOpponentForfeit,
	StrategyImplicitForfeit,
	StrategyUnresolved,
}

// Summary provides aggregate statistics over a reconciled record set.
type Summary struct {
	// TotalRecords is the number of match records.
	TotalRecords int `json:"total_records"`

	// RegularRounds counts records with a real opponent on both sides.
	RegularRounds int `json:"regular_rounds"`

	// ByeRounds counts records whose Team2 is BYE.
	ByeRounds int `json:"bye_rounds"`

	// ForfeitRounds counts records whose Team2 is FORFEIT.
	ForfeitRounds int `json:"forfeit_rounds"`

	// UnresolvedRounds counts records with a synthesized missing Team2.
	UnresolvedRounds int `json:"unresolved_rounds"`

	// UniqueTeams is the number of distinct team codes, sentinels excluded.
	UniqueTeams int `json:"unique_teams"`

	// Team1WinRate and Team2WinRate are the mean of the Won flags per column.
	Team1WinRate float64 `json:"team1_win_rate"`
	Team2WinRate float64 `json:"team2_win_rate"`

	// AffWinRate is the share of Aff appearances that won.
	AffWinRate float64 `json:"aff_win_rate"`

	// RoundsByNumber counts records per round number.
	RoundsByNumber map[int]int `json:"rounds_by_number"`

	// Points summarizes speaker points above zero.
	Points PointStats `json:"points"`

	// Sources breaks the record set down per source document.
	Sources []SourceSummary `json:"sources"`
}

// PointStats describes the distribution of positive speaker points.
type PointStats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	// AffAvg and NegAvg split the average by the side the speaker argued.
	AffAvg float64 `json:"aff_avg"`
	NegAvg float64 `json:"neg_avg"`
}

// SourceSummary holds per-document counts.
type SourceSummary struct {
	Source     string `json:"source"`
	Tournament string `json:"tournament"`
	Year       string `json:"year"`
	Records    int    `json:"records"`
	Teams      int    `json:"teams"`
}
