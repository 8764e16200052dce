package model

// RoundKind tags the three shapes a round group can take.
type RoundKind int

const (
	KindRegular RoundKind = iota
	KindBye
	KindForfeit
)

func (k RoundKind) String() string {
	switch k {
	case KindBye:
		return "bye"
	case KindForfeit:
		return "forfeit"
	default:
		return "regular"
	}
}

// RoundResult is the closed set of decoded round variants.
// Only RegularRound, ByeRound and ForfeitRound implement it.
type RoundResult interface {
	Kind() RoundKind
	isRoundResult()
}

// RegularRound is a round against a real opponent, read verbatim from the sheet.
type RegularRound struct {
	Opponent string
	Side     Side
	Outcome  Outcome
	Speakers Speakers
}

// ByeRound is an automatic win. Speaker scores are still printed for byes.
type ByeRound struct {
	Speakers Speakers
}

// ForfeitRound is an automatic loss. No numeric fields are read.
type ForfeitRound struct{}

func (RegularRound) Kind() RoundKind { return KindRegular }
func (ByeRound) Kind() RoundKind     { return KindBye }
func (ForfeitRound) Kind() RoundKind { return KindForfeit }

func (RegularRound) isRoundResult() {}
func (ByeRound) isRoundResult()     {}
func (ForfeitRound) isRoundResult() {}

// Observation is one team's view of one round.
type Observation struct {
	Team    string
	Member1 string
	Member2 string
	// Round is 1-based and counts successfully parsed rounds within a block.
	Round   int
	Context EventContext
	Result  RoundResult
}

// Opponent returns the opponent code, or the BYE/FORFEIT sentinel.
func (o Observation) Opponent() string {
	switch r := o.Result.(type) {
	case RegularRound:
		return r.Opponent
	case ByeRound:
		return OpponentBye
	default:
		return OpponentForfeit
	}
}

// Side returns the side argued. Byes and forfeits are recorded as Aff.
func (o Observation) Side() Side {
	if r, ok := o.Result.(RegularRound); ok {
		return r.Side
	}
	return SideAff
}

// Outcome returns the round outcome. Byes are forced wins, forfeits forced losses.
func (o Observation) Outcome() Outcome {
	switch r := o.Result.(type) {
	case RegularRound:
		return r.Outcome
	case ByeRound:
		return OutcomeWin
	default:
		return OutcomeLoss
	}
}

// Speakers returns the member scores for the round.
func (o Observation) Speakers() Speakers {
	switch r := o.Result.(type) {
	case RegularRound:
		return r.Speakers
	case ByeRound:
		return r.Speakers
	default:
		return ForfeitSpeakers()
	}
}

// AsSide projects the observation onto one half of a MatchRecord.
func (o Observation) AsSide() TeamSide {
	return TeamSide{
		Code:     o.Team,
		Side:     o.Side(),
		Member1:  o.Member1,
		Member2:  o.Member2,
		Speakers: o.Speakers(),
		Won:      o.Outcome().Won(),
	}
}
