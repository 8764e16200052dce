package identity

import (
	"matchup-model/core/model"
	"matchup-model/feature/registry"
)

// ComputeStats derives the statistics of a registry team. Tournament based
// metrics need events; they stay nil when events is nil or nothing matched.
// The names of attended tournaments that matched no event are returned.
func ComputeStats(team *registry.TeamRecord, events *EventIndex) (*model.TeamStats, []string) {
	if team == nil {
		return nil, nil
	}

	s := &model.TeamStats{
		TotalWins:      team.Wins(),
		TotalLosses:    team.Losses(),
		PrelimWins:     team.PrelimWon(),
		PrelimLosses:   team.PrelimLost(),
		NumTournaments: len(team.Tournaments),
		RankPoints:     team.Points(),
		NationalRank:   team.National(),
		StateRank:      team.StateRanking(),
	}
	s.TotalRounds = s.TotalWins + s.TotalLosses
	s.WinRate = rate(s.TotalWins, s.TotalRounds)
	s.PrelimWinRate = rate(s.PrelimWins, s.PrelimWins+s.PrelimLosses)

	if len(team.Tournaments) > 0 {
		total := 0.0
		for _, t := range team.Tournaments {
			total += t.PointsValue()
		}
		avg := total / float64(len(team.Tournaments))
		s.AvgPointsPerTournament = &avg
	}

	if events == nil || events.Len() == 0 {
		return s, nil
	}

	var unmatched []string
	states := make(map[string]struct{})
	sizes := 0
	sizeSum := 0
	points := 0.0
	for _, t := range team.Tournaments {
		info, ok := events.Match(t.Name)
		if !ok {
			unmatched = append(unmatched, t.Name)
			continue
		}
		if info.State != "" {
			states[info.State] = struct{}{}
		}
		if info.FieldSize <= 0 {
			continue
		}
		sizes++
		sizeSum += info.FieldSize
		if place, ok := t.PlaceValue(); ok && place > 0 {
			points += float64(info.FieldSize) / float64(place)
		}
	}

	if len(states) > 0 {
		n := len(states)
		s.NationalExposure = &n
	}
	if sizes > 0 {
		avg := float64(sizeSum) / float64(sizes)
		s.AvgTournamentSize = &avg
	}
	if points > 0 {
		s.TournamentPoints = &points
	}
	return s, unmatched
}

func rate(won, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(won) / float64(total)
}
