// Package tuning collects the heuristic constants used by the parser, the
// reconciliation engine and the identity resolver.
//
// The positional offsets describe the printed cumulative sheet layout and must not
// change unless the layout does. The matching thresholds are defaults; the
// identity resolver accepts overrides through configuration.
package tuning

// Block and round-group layout.
const (
	// HeaderLines is the number of lines identifying a team: member 1, code line, member 2.
	HeaderLines = 3

	// RegularRoundOffset is the number of lines between the header and the W/L token
	// of a regular first round: four score lines, the opponent code and the side.
	RegularRoundOffset = 6
	// ByeRoundOffset is the number of score lines preceding a BYE token.
	ByeRoundOffset = 4
	// ForfeitRoundOffset is the number of filler lines preceding a FORFEIT token.
	ForfeitRoundOffset = 3

	// RegularGroupLines is the size of a regular round group including its terminal token.
	RegularGroupLines = 7
	// ByeGroupLines is the size of a BYE round group including its terminal token.
	ByeGroupLines = 5
)

// Scores.
const (
	// ForfeitRank is the rank assigned to both members of a forfeiting team.
	ForfeitRank = 4
	// MissingPoints and MissingRank mark scores on an unresolved opponent side.
	// They are negative so they never collide with a real zero-point forfeit.
	MissingPoints = -1
	MissingRank   = -1
)

// Identity matching.
const (
	// JaccardThreshold is the minimum tournament-name similarity; a candidate must exceed it.
	JaccardThreshold = 0.3
	// MinKeywordLength drops tournament-name tokens shorter than this.
	MinKeywordLength = 3
	// KeySeparator joins the two member name variants of a team key.
	KeySeparator = "|"
	// FieldSizeEvent selects the sub-event whose population is the field size.
	FieldSizeEvent = "Team Policy Debate"
)
