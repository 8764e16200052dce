package matches

import (
	"time"

	"matchup-model/core/model"
	"matchup-model/core/reconcile"
)

// TableName is the table holding match records.
const TableName = "match_records"

// SideRow is one team's half of a stored record.
type SideRow struct {
	Code          string           `gorm:"column:code;size:64"`
	Side          string           `gorm:"column:side;size:8"`
	Member1       string           `gorm:"column:member1_name;size:128"`
	Member2       string           `gorm:"column:member2_name;size:128"`
	Member1Points float64          `gorm:"column:member1_points"`
	Member1Rank   int              `gorm:"column:member1_rank"`
	Member2Points float64          `gorm:"column:member2_points"`
	Member2Rank   int              `gorm:"column:member2_rank"`
	Won           int              `gorm:"column:won"`
	Missing       bool             `gorm:"column:missing"`
	Stats         *model.TeamStats `gorm:"column:stats;type:text;serializer:json"`
}

// MatchRow represents the 'match_records' table.
type MatchRow struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	RecordKey  string    `gorm:"column:record_key;size:512;uniqueIndex"`
	Round      int       `gorm:"column:round_number"`
	Tournament string    `gorm:"column:tournament_name;size:255;index"`
	Year       string    `gorm:"column:year;size:16;index"`
	Source     string    `gorm:"column:source_file;size:255"`
	Team1      SideRow   `gorm:"embedded;embeddedPrefix:team1_"`
	Team2      SideRow   `gorm:"embedded;embeddedPrefix:team2_"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (MatchRow) TableName() string {
	return TableName
}

// NewMatchRow converts a record into its stored form.
func NewMatchRow(r model.MatchRecord) MatchRow {
	return MatchRow{
		RecordKey:  reconcile.RecordKey(r),
		Round:      r.Round,
		Tournament: r.Context.Tournament,
		Year:       r.Context.Year,
		Source:     r.Context.Source,
		Team1:      newSideRow(r.Team1, r.Team1Stats),
		Team2:      newSideRow(r.Team2, r.Team2Stats),
	}
}

func newSideRow(s model.TeamSide, stats *model.TeamStats) SideRow {
	return SideRow{
		Code:          s.Code,
		Side:          string(s.Side),
		Member1:       s.Member1,
		Member2:       s.Member2,
		Member1Points: s.Speakers[0].Points,
		Member1Rank:   s.Speakers[0].Rank,
		Member2Points: s.Speakers[1].Points,
		Member2Rank:   s.Speakers[1].Rank,
		Won:           s.Won,
		Missing:       s.Missing,
		Stats:         stats,
	}
}

// ToRecord converts the row back into a match record.
func (m MatchRow) ToRecord() model.MatchRecord {
	return model.MatchRecord{
		Round: m.Round,
		Context: model.EventContext{
			Tournament: m.Tournament,
			Year:       m.Year,
			Source:     m.Source,
		},
		Team1:      m.Team1.toSide(),
		Team2:      m.Team2.toSide(),
		Team1Stats: m.Team1.Stats,
		Team2Stats: m.Team2.Stats,
	}
}

func (s SideRow) toSide() model.TeamSide {
	return model.TeamSide{
		Code:    s.Code,
		Side:    model.Side(s.Side),
		Member1: s.Member1,
		Member2: s.Member2,
		Speakers: model.Speakers{
			{Points: s.Member1Points, Rank: s.Member1Rank},
			{Points: s.Member2Points, Rank: s.Member2Rank},
		},
		Won:     s.Won,
		Missing: s.Missing,
	}
}
