package postgres

import (
	"database/sql"
	"time"

	"github.com/openleague/openleague/internal/domain/match"
)

type matchTableModel struct {
	ID              string        `db:"id"`
	Kind            string        `db:"kind"`
	CompetitionID   string        `db:"competition_id"`
	Matchday        int           `db:"matchday"`
	Phase           string        `db:"phase"`
	GroupNo         sql.NullInt64 `db:"group_no"`
	Leg             int           `db:"leg"`
	BracketSlot     sql.NullInt64 `db:"bracket_slot"`
	NextBracketSlot sql.NullInt64 `db:"next_bracket_slot"`
	HomeTeamID      string        `db:"home_team_id"`
	AwayTeamID      string        `db:"away_team_id"`
	HomeGoals       sql.NullInt64 `db:"home_goals"`
	AwayGoals       sql.NullInt64 `db:"away_goals"`
	State           string        `db:"state"`
	ReportState     string        `db:"report_state"`
	KickoffAt       time.Time     `db:"kickoff_at"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

type matchInsertModel struct {
	ID              string        `db:"id"`
	Kind            string        `db:"kind"`
	CompetitionID   string        `db:"competition_id"`
	Matchday        int           `db:"matchday"`
	Phase           string        `db:"phase"`
	GroupNo         sql.NullInt64 `db:"group_no"`
	Leg             int           `db:"leg"`
	BracketSlot     sql.NullInt64 `db:"bracket_slot"`
	NextBracketSlot sql.NullInt64 `db:"next_bracket_slot"`
	HomeTeamID      string        `db:"home_team_id"`
	AwayTeamID      string        `db:"away_team_id"`
	State           string        `db:"state"`
	ReportState     string        `db:"report_state"`
	KickoffAt       time.Time     `db:"kickoff_at"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:            row.ID,
		Kind:          match.Kind(row.Kind),
		CompetitionID: row.CompetitionID,
		Matchday:      row.Matchday,
		Phase:         match.Phase(row.Phase),
		Group:         nullInt64ToIntPtr(row.GroupNo),
		Leg:           row.Leg,
		SlotID:        nullInt64ToIntPtr(row.BracketSlot),
		NextSlotID:    nullInt64ToIntPtr(row.NextBracketSlot),
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		HomeGoals:     nullInt64ToIntPtr(row.HomeGoals),
		AwayGoals:     nullInt64ToIntPtr(row.AwayGoals),
		State:         match.State(row.State),
		ReportState:   match.ReportState(row.ReportState),
		KickoffAt:     row.KickoffAt,
	}
}

func matchesFromRows(rows []matchTableModel) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out
}

type scorerTotalModel struct {
	PlayerID string `db:"player_id"`
	Matches  int    `db:"matches"`
	Goals    int    `db:"goals"`
	Assists  int    `db:"assists"`
}

type playerLineModel struct {
	PlayerID    string `db:"player_id"`
	Goals       int    `db:"goals"`
	Assists     int    `db:"assists"`
	YellowCards int    `db:"yellow_cards"`
	RedCards    int    `db:"red_cards"`
}
