package postgres

import (
	"time"

	"github.com/openleague/openleague/internal/domain/league"
)

type leagueTableModel struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	Season           string    `db:"season"`
	Status           string    `db:"status"`
	FixtureGenerated bool      `db:"fixture_generated"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:               row.ID,
		Name:             row.Name,
		Season:           row.Season,
		Status:           league.Status(row.Status),
		FixtureGenerated: row.FixtureGenerated,
	}
}
