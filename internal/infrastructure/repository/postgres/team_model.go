package postgres

import (
	"time"

	"github.com/openleague/openleague/internal/domain/team"
)

type teamTableModel struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	LeagueID      string    `db:"league_id"`
	ManagerUserID string    `db:"manager_user_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:            row.ID,
		Name:          row.Name,
		LeagueID:      row.LeagueID,
		ManagerUserID: row.ManagerUserID,
	}
}
