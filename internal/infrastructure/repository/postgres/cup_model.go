package postgres

import (
	"database/sql"
	"time"

	"github.com/openleague/openleague/internal/domain/cup"
)

type cupTableModel struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Season       string         `db:"season"`
	WinnerTeamID sql.NullString `db:"winner_team_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type cupInsertModel struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Season string `db:"season"`
}

func cupFromRow(row cupTableModel) cup.Cup {
	return cup.Cup{
		ID:           row.ID,
		Name:         row.Name,
		Season:       row.Season,
		WinnerTeamID: row.WinnerTeamID.String,
	}
}
