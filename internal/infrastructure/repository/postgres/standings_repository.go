package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openleague/openleague/internal/domain/standings"
	qb "github.com/openleague/openleague/internal/platform/querybuilder"
)

// StandingsRepository is the incremental ledger behind league tables and
// cup group tables. Each confirmed result lands as one upsert-increment
// per team.
type StandingsRepository struct {
	db *sqlx.DB
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

func (r *StandingsRepository) ApplyDelta(ctx context.Context, scope standings.Scope, delta standings.Delta) error {
	if err := scope.Validate(); err != nil {
		return fmt.Errorf("validate standings scope: %w", err)
	}

	insertModel := standingInsertModel{
		CompetitionKind: string(scope.Kind),
		CompetitionID:   scope.CompetitionID,
		GroupNo:         scope.Group,
		TeamID:          delta.TeamID,
		Played:          delta.Played,
		Won:             delta.Won,
		Drawn:           delta.Drawn,
		Lost:            delta.Lost,
		GoalsFor:        delta.GoalsFor,
		GoalsAgainst:    delta.GoalsAgainst,
		GoalDifference:  delta.GoalDifference,
		Points:          delta.Points,
	}
	query, args, err := qb.InsertModel("standings", insertModel, `ON CONFLICT (competition_kind, competition_id, group_no, team_id)
DO UPDATE SET
    played = standings.played + EXCLUDED.played,
    won = standings.won + EXCLUDED.won,
    drawn = standings.drawn + EXCLUDED.drawn,
    lost = standings.lost + EXCLUDED.lost,
    goals_for = standings.goals_for + EXCLUDED.goals_for,
    goals_against = standings.goals_against + EXCLUDED.goals_against,
    goal_difference = standings.goal_difference + EXCLUDED.goal_difference,
    points = standings.points + EXCLUDED.points,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build apply standings delta query: %w", err)
	}

	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("apply standings delta: %w", err)
	}
	return nil
}

func (r *StandingsRepository) ListByScope(ctx context.Context, scope standings.Scope) ([]standings.Row, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(
			qb.Eq("competition_kind", string(scope.Kind)),
			qb.Eq("competition_id", scope.CompetitionID),
			qb.Eq("group_no", scope.Group),
		).
		OrderBy("points DESC", "goal_difference DESC", "goals_for DESC", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standings.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingFromRow(scope, row))
	}

	return out, nil
}

func (r *StandingsRepository) ResetScope(ctx context.Context, scope standings.Scope) error {
	query, args, err := qb.Update("standings").
		Set("played", 0).
		Set("won", 0).
		Set("drawn", 0).
		Set("lost", 0).
		Set("goals_for", 0).
		Set("goals_against", 0).
		Set("goal_difference", 0).
		Set("points", 0).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("competition_kind", string(scope.Kind)),
			qb.Eq("competition_id", scope.CompetitionID),
			qb.Eq("group_no", scope.Group),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset standings query: %w", err)
	}

	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset standings: %w", err)
	}
	return nil
}
