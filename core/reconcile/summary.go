package reconcile

import (
	"sort"

	"matchup-model/core/model"
)

// Summarize computes aggregate statistics over a record set.
func Summarize(records []model.MatchRecord) Summary {
	s := Summary{
		TotalRecords:   len(records),
		RoundsByNumber: make(map[int]int),
	}
	if len(records) == 0 {
		return s
	}

	teams := make(map[string]struct{})
	type sourceAcc struct {
		summary SourceSummary
		teams   map[string]struct{}
	}
	sources := make(map[string]*sourceAcc)

	var team1Wins, team2Wins, affWins, affTotal int
	var all, aff, neg []float64

	for _, r := range records {
		switch {
		case r.Team2.Code == model.OpponentBye:
			s.ByeRounds++
		case r.Team2.Code == model.OpponentForfeit:
			s.ForfeitRounds++
		case r.Team2.Missing:
			s.UnresolvedRounds++
		default:
			s.RegularRounds++
		}
		s.RoundsByNumber[r.Round]++
		team1Wins += r.Team1.Won
		team2Wins += r.Team2.Won

		acc, ok := sources[r.Context.Source]
		if !ok {
			acc = &sourceAcc{
				summary: SourceSummary{Source: r.Context.Source, Tournament: r.Context.Tournament, Year: r.Context.Year},
				teams:   make(map[string]struct{}),
			}
			sources[r.Context.Source] = acc
		}
		acc.summary.Records++

		for _, side := range []model.TeamSide{r.Team1, r.Team2} {
			if !model.IsDegenerateOpponent(side.Code) {
				teams[side.Code] = struct{}{}
				acc.teams[side.Code] = struct{}{}
			}
			if side.Side == model.SideAff {
				affTotal++
				affWins += side.Won
			}
			for _, sp := range side.Speakers {
				if sp.Points <= 0 {
					continue
				}
				all = append(all, sp.Points)
				if side.Side == model.SideAff {
					aff = append(aff, sp.Points)
				} else {
					neg = append(neg, sp.Points)
				}
			}
		}
	}

	s.UniqueTeams = len(teams)
	s.Team1WinRate = float64(team1Wins) / float64(len(records))
	s.Team2WinRate = float64(team2Wins) / float64(len(records))
	if affTotal > 0 {
		s.AffWinRate = float64(affWins) / float64(affTotal)
	}
	s.Points = pointStats(all, aff, neg)

	for _, acc := range sources {
		acc.summary.Teams = len(acc.teams)
		s.Sources = append(s.Sources, acc.summary)
	}
	sort.Slice(s.Sources, func(i, j int) bool { return s.Sources[i].Source < s.Sources[j].Source })

	return s
}

// CountStrategies tallies the strategies reported by ReconcileWithStrategies.
func CountStrategies(strategies []Strategy) map[Strategy]int {
	counts := make(map[Strategy]int, len(Strategies))
	for _, st := range Strategies {
		counts[st] = 0
	}
	for _, st := range strategies {
		counts[st]++
	}
	return counts
}

func pointStats(all, aff, neg []float64) PointStats {
	ps := PointStats{Count: len(all)}
	if len(all) == 0 {
		return ps
	}
	ps.Min, ps.Max = all[0], all[0]
	for _, p := range all {
		if p < ps.Min {
			ps.Min = p
		}
		if p > ps.Max {
			ps.Max = p
		}
	}
	ps.Avg = mean(all)
	ps.AffAvg = mean(aff)
	ps.NegAvg = mean(neg)
	return ps
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
