package matches

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"matchup-model/core/model"
)

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing csv column")

// BaseColumns are the columns of an extracted record set.
var BaseColumns = []string{"Round_Number", "Tournament_Name", "Year", "Source_File"}

var sideFields = []string{
	"Code", "Side", "Member1_Name", "Member2_Name",
	"Member1_Points", "Member1_Rank", "Member2_Points", "Member2_Rank", "Won",
}

// StatColumns are the per-team statistics appended by WriteCSV when requested.
var StatColumns = []string{
	"Total_Wins", "Total_Losses", "Prelim_Wins", "Prelim_Losses", "Num_Tournaments",
	"Rank_Points", "National_Rank", "State_Rank", "Win_Rate", "Prelim_Win_Rate",
	"Total_Rounds", "Avg_Points_Per_Tournament", "National_Exposure",
	"Avg_Tournament_Size", "Tournament_Points",
}

var teams = []string{"Team1", "Team2"}

// Header returns the CSV header, with the statistics columns when withStats is set.
func Header(withStats bool) []string {
	h := append([]string(nil), BaseColumns...)
	for _, team := range teams {
		for _, f := range sideFields {
			h = append(h, team+"_"+f)
		}
	}
	if withStats {
		for _, team := range teams {
			for _, c := range StatColumns {
				h = append(h, team+"_"+c)
			}
		}
	}
	return h
}

// WriteCSV writes records with a header row. Statistics of unmatched teams are
// written as empty cells.
func WriteCSV(w io.Writer, records []model.MatchRecord, withStats bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(withStats)); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{strconv.Itoa(r.Round), r.Context.Tournament, r.Context.Year, r.Context.Source}
		row = append(row, sideCells(r.Team1)...)
		row = append(row, sideCells(r.Team2)...)
		if withStats {
			row = append(row, statCells(r.Team1Stats)...)
			row = append(row, statCells(r.Team2Stats)...)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func sideCells(s model.TeamSide) []string {
	return []string{
		s.Code,
		string(s.Side),
		s.Member1,
		s.Member2,
		formatFloat(s.Speakers[0].Points),
		strconv.Itoa(s.Speakers[0].Rank),
		formatFloat(s.Speakers[1].Points),
		strconv.Itoa(s.Speakers[1].Rank),
		strconv.Itoa(s.Won),
	}
}

func statCells(s *model.TeamStats) []string {
	if s == nil {
		return make([]string, len(StatColumns))
	}
	return []string{
		strconv.Itoa(s.TotalWins),
		strconv.Itoa(s.TotalLosses),
		strconv.Itoa(s.PrelimWins),
		strconv.Itoa(s.PrelimLosses),
		strconv.Itoa(s.NumTournaments),
		formatFloat(s.RankPoints),
		formatOptInt(s.NationalRank),
		formatOptInt(s.StateRank),
		formatFloat(s.WinRate),
		formatFloat(s.PrelimWinRate),
		strconv.Itoa(s.TotalRounds),
		formatOptFloat(s.AvgPointsPerTournament),
		formatOptInt(s.NationalExposure),
		formatOptFloat(s.AvgTournamentSize),
		formatOptFloat(s.TournamentPoints),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

// ReadCSV reads records written by WriteCSV. Statistics columns are optional;
// a team whose Total_Rounds cell is empty gets nil statistics.
func ReadCSV(r io.Reader) ([]model.MatchRecord, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range Header(false) {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	_, withStats := index["Team1_Total_Rounds"]

	var out []model.MatchRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := decodeRow(rowReader{index: index, row: row}, withStats)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

type rowReader struct {
	index map[string]int
	row   []string
	err   error
}

func (r *rowReader) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[i])
}

func (r *rowReader) int(col string) int {
	s := r.str(col)
	if s == "" || r.err != nil {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Some exporters write whole numbers as floats.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			r.err = fmt.Errorf("column %s: invalid integer %q", col, s)
			return 0
		}
		return int(f)
	}
	return n
}

func (r *rowReader) float(col string) float64 {
	s := r.str(col)
	if s == "" || r.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("column %s: invalid number %q", col, s)
		return 0
	}
	return f
}

func (r *rowReader) optInt(col string) *int {
	if r.str(col) == "" {
		return nil
	}
	n := r.int(col)
	return &n
}

func (r *rowReader) optFloat(col string) *float64 {
	if r.str(col) == "" {
		return nil
	}
	f := r.float(col)
	return &f
}

func decodeRow(r rowReader, withStats bool) (model.MatchRecord, error) {
	rec := model.MatchRecord{
		Round: r.int("Round_Number"),
		Context: model.EventContext{
			Tournament: r.str("Tournament_Name"),
			Year:       r.str("Year"),
			Source:     r.str("Source_File"),
		},
		Team1: r.side("Team1"),
		Team2: r.side("Team2"),
	}
	if withStats {
		rec.Team1Stats = r.stats("Team1")
		rec.Team2Stats = r.stats("Team2")
	}
	return rec, r.err
}

func (r *rowReader) side(team string) model.TeamSide {
	p := team + "_"
	s := model.TeamSide{
		Code:    r.str(p + "Code"),
		Side:    model.Side(r.str(p + "Side")),
		Member1: r.str(p + "Member1_Name"),
		Member2: r.str(p + "Member2_Name"),
		Speakers: model.Speakers{
			{Points: r.float(p + "Member1_Points"), Rank: r.int(p + "Member1_Rank")},
			{Points: r.float(p + "Member2_Points"), Rank: r.int(p + "Member2_Rank")},
		},
		Won: r.int(p + "Won"),
	}
	s.Missing = s.Member1 == model.MissingName && s.Member2 == model.MissingName &&
		s.Speakers == model.MissingSpeakers()
	return s
}

func (r *rowReader) stats(team string) *model.TeamStats {
	p := team + "_"
	if r.str(p+"Total_Rounds") == "" {
		return nil
	}
	return &model.TeamStats{
		TotalWins:              r.int(p + "Total_Wins"),
		TotalLosses:            r.int(p + "Total_Losses"),
		PrelimWins:             r.int(p + "Prelim_Wins"),
		PrelimLosses:           r.int(p + "Prelim_Losses"),
		NumTournaments:         r.int(p + "Num_Tournaments"),
		RankPoints:             r.float(p + "Rank_Points"),
		NationalRank:           r.optInt(p + "National_Rank"),
		StateRank:              r.optInt(p + "State_Rank"),
		WinRate:                r.float(p + "Win_Rate"),
		PrelimWinRate:          r.float(p + "Prelim_Win_Rate"),
		TotalRounds:            r.int(p + "Total_Rounds"),
		AvgPointsPerTournament: r.optFloat(p + "Avg_Points_Per_Tournament"),
		NationalExposure:       r.optInt(p + "National_Exposure"),
		AvgTournamentSize:      r.optFloat(p + "Avg_Tournament_Size"),
		TournamentPoints:       r.optFloat(p + "Tournament_Points"),
	}
}
