package cumulative

import (
	"fmt"
	"strconv"
	"strings"

	"matchup-model/core/diag"
	"matchup-model/core/model"
	"matchup-model/core/tuning"
)

// Terminal tokens close a round group.
const (
	TokenWin     = "W"
	TokenLoss    = "L"
	TokenBye     = "BYE"
	TokenForfeit = "FORFEIT"
)

// IsTerminal reports whether line closes a round group.
func IsTerminal(line string) bool {
	switch line {
	case TokenWin, TokenLoss, TokenBye, TokenForfeit:
		return true
	}
	return false
}

// Header is the team identification at the top of a block.
type Header struct {
	Member1 string
	Member2 string
	// CodeLine holds the team code followed by the organization.
	CodeLine string
}

// Code returns the first whitespace-delimited token of the code line.
func (h Header) Code() string {
	fields := strings.Fields(h.CodeLine)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// RecoverHeader locates the header of a cleaned block and returns it with the
// round lines that follow it.
//
// Boilerplate can sit between the header and the first round, so the header is
// found by backing off from the first terminal token: 6 lines for W/L, 4 for
// BYE, 3 for FORFEIT. The 3 lines before that point are the header. Without a
// terminal token, or when the offset runs past the block start, the first 3
// lines are used.
func RecoverHeader(lines []string) (Header, []string) {
	if len(lines) < tuning.HeaderLines {
		return Header{}, nil
	}
	start := tuning.HeaderLines
	for i, l := range lines {
		if !IsTerminal(l) {
			continue
		}
		if s := i - roundOffset(l); s >= tuning.HeaderLines {
			start = s
		}
		break
	}
	h := lines[start-tuning.HeaderLines : start]
	return Header{Member1: h[0], CodeLine: h[1], Member2: h[2]}, lines[start:]
}

func roundOffset(terminal string) int {
	switch terminal {
	case TokenBye:
		return tuning.ByeRoundOffset
	case TokenForfeit:
		return tuning.ForfeitRoundOffset
	default:
		return tuning.RegularRoundOffset
	}
}

// SplitRounds groups round lines, each group ending with its terminal token.
// Lines after the last terminal (the summary line) are not part of any group.
func SplitRounds(lines []string) [][]string {
	var groups [][]string
	var current []string
	for _, l := range lines {
		if l == "" {
			continue
		}
		current = append(current, l)
		if IsTerminal(l) {
			groups = append(groups, current)
			current = nil
		}
	}
	return groups
}

// ParseBlock decodes a cleaned block into observations numbered 1..N. Rounds
// that fail to decode are recorded and skipped without consuming a number.
func ParseBlock(block Block, ctx model.EventContext, diags *diag.Diagnostics) []model.Observation {
	header, roundLines := RecoverHeader(block.Lines)
	team := header.Code()
	if team == "" {
		diags.Record(diag.Entry{
			Kind:     diag.ParseFailure,
			Source:   ctx.Source,
			Reason:   fmt.Sprintf("block %d has no team code", block.Index),
			Fragment: block.Lines,
		})
		return nil
	}

	groups := SplitRounds(roundLines)
	if len(groups) == 0 {
		diags.Record(diag.Entry{
			Kind:     diag.ParseFailure,
			Source:   ctx.Source,
			Team:     team,
			Reason:   fmt.Sprintf("block %d has no round groups", block.Index),
			Fragment: block.Lines,
		})
		return nil
	}

	observations := make([]model.Observation, 0, len(groups))
	for _, g := range groups {
		result, err := DecodeRound(g)
		if err != nil {
			diags.Record(diag.Entry{
				Kind:     diag.ParseFailure,
				Source:   ctx.Source,
				Team:     team,
				Round:    len(observations) + 1,
				Reason:   err.Error(),
				Fragment: g,
			})
			continue
		}
		observations = append(observations, model.Observation{
			Team:    team,
			Member1: header.Member1,
			Member2: header.Member2,
			Round:   len(observations) + 1,
			Context: ctx,
			Result:  result,
		})
	}
	return observations
}

// DecodeRound decodes one round group by its terminal token. Fixed positions
// are anchored on the terminal, so stray leading lines are ignored.
func DecodeRound(group []string) (model.RoundResult, error) {
	if len(group) == 0 {
		return nil, fmt.Errorf("empty round group")
	}
	terminal := group[len(group)-1]

	switch terminal {
	case TokenForfeit:
		return model.ForfeitRound{}, nil

	case TokenBye:
		if len(group) < tuning.ByeGroupLines {
			return nil, fmt.Errorf("bye group has %d lines, want %d", len(group), tuning.ByeGroupLines)
		}
		g := group[len(group)-tuning.ByeGroupLines:]
		sp, err := decodeSpeakers(g[:4])
		if err != nil {
			return nil, err
		}
		return model.ByeRound{Speakers: sp}, nil

	case TokenWin, TokenLoss:
		if len(group) < tuning.RegularGroupLines {
			return nil, fmt.Errorf("round group has %d lines, want %d", len(group), tuning.RegularGroupLines)
		}
		g := group[len(group)-tuning.RegularGroupLines:]
		sp, err := decodeSpeakers(g[:4])
		if err != nil {
			return nil, err
		}
		side, ok := model.ParseSide(g[5])
		if !ok {
			return nil, fmt.Errorf("invalid side %q", g[5])
		}
		return model.RegularRound{
			Opponent: g[4],
			Side:     side,
			Outcome:  model.Outcome(terminal),
			Speakers: sp,
		}, nil

	default:
		return nil, fmt.Errorf("unrecognized terminal token %q", terminal)
	}
}

// decodeSpeakers reads points, rank, points, rank.
func decodeSpeakers(lines []string) (model.Speakers, error) {
	var sp model.Speakers
	for m := 0; m < 2; m++ {
		pts, err := parsePoints(lines[2*m])
		if err != nil {
			return sp, err
		}
		rank, err := parseRank(lines[2*m+1])
		if err != nil {
			return sp, err
		}
		sp[m] = model.Speaker{Points: pts, Rank: rank}
	}
	return sp, nil
}

// stripMarker removes trailing "*" annotations.
func stripMarker(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "*"))
}

func parsePoints(s string) (float64, error) {
	v, err := strconv.ParseFloat(stripMarker(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid speaker points %q", s)
	}
	return v, nil
}

func parseRank(s string) (int, error) {
	v, err := strconv.Atoi(stripMarker(s))
	if err != nil {
		return 0, fmt.Errorf("invalid speaker rank %q", s)
	}
	return v, nil
}
