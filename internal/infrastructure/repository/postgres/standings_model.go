package postgres

import (
	"time"

	"github.com/openleague/openleague/internal/domain/standings"
)

type standingTableModel struct {
	ID              int64     `db:"id"`
	CompetitionKind string    `db:"competition_kind"`
	CompetitionID   string    `db:"competition_id"`
	GroupNo         int       `db:"group_no"`
	TeamID          string    `db:"team_id"`
	Played          int       `db:"played"`
	Won             int       `db:"won"`
	Drawn           int       `db:"drawn"`
	Lost            int       `db:"lost"`
	GoalsFor        int       `db:"goals_for"`
	GoalsAgainst    int       `db:"goals_against"`
	GoalDifference  int       `db:"goal_difference"`
	Points          int       `db:"points"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type standingInsertModel struct {
	CompetitionKind string `db:"competition_kind"`
	CompetitionID   string `db:"competition_id"`
	GroupNo         int    `db:"group_no"`
	TeamID          string `db:"team_id"`
	Played          int    `db:"played"`
	Won             int    `db:"won"`
	Drawn           int    `db:"drawn"`
	Lost            int    `db:"lost"`
	GoalsFor        int    `db:"goals_for"`
	GoalsAgainst    int    `db:"goals_against"`
	GoalDifference  int    `db:"goal_difference"`
	Points          int    `db:"points"`
}

func standingFromRow(scope standings.Scope, row standingTableModel) standings.Row {
	return standings.Row{
		Scope:          scope,
		TeamID:         row.TeamID,
		Played:         row.Played,
		Won:            row.Won,
		Drawn:          row.Drawn,
		Lost:           row.Lost,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
	}
}
