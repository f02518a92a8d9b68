package postgres

import (
	"database/sql"
	"time"

	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/report"
)

type reportTableModel struct {
	ID         string         `db:"id"`
	MatchID    string         `db:"match_id"`
	MatchKind  string         `db:"match_kind"`
	TeamID     sql.NullString `db:"team_id"`
	HomeGoals  int            `db:"home_goals"`
	AwayGoals  int            `db:"away_goals"`
	ProofURL   string         `db:"proof_url"`
	ReportedBy string         `db:"reported_by"`
	CreatedAt  time.Time      `db:"created_at"`
}

type reportInsertModel struct {
	ID         string         `db:"id"`
	MatchID    string         `db:"match_id"`
	MatchKind  string         `db:"match_kind"`
	TeamID     sql.NullString `db:"team_id"`
	HomeGoals  int            `db:"home_goals"`
	AwayGoals  int            `db:"away_goals"`
	ProofURL   string         `db:"proof_url"`
	ReportedBy string         `db:"reported_by"`
}

type reportLineTableModel struct {
	ReportID    string `db:"report_id"`
	PlayerID    string `db:"player_id"`
	Goals       int    `db:"goals"`
	Assists     int    `db:"assists"`
	YellowCards int    `db:"yellow_cards"`
	RedCards    int    `db:"red_cards"`
}

func reportFromRow(row reportTableModel) report.Report {
	return report.Report{
		ID:         row.ID,
		MatchID:    row.MatchID,
		MatchKind:  match.Kind(row.MatchKind),
		TeamID:     row.TeamID.String,
		HomeGoals:  row.HomeGoals,
		AwayGoals:  row.AwayGoals,
		ProofURL:   row.ProofURL,
		ReportedBy: row.ReportedBy,
		CreatedAt:  row.CreatedAt,
	}
}

func teamIDToNullString(teamID string) sql.NullString {
	if teamID == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: teamID, Valid: true}
}
