package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openleague/openleague/internal/domain/league"
	qb "github.com/openleague/openleague/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("id", leagueID)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := executorFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) MarkFixtureGenerated(ctx context.Context, leagueID string) error {
	query, args, err := qb.Update("leagues").
		Set("fixture_generated", true).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark fixture generated query: %w", err)
	}

	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark fixture generated: %w", err)
	}
	return nil
}

func (r *LeagueRepository) SetStatus(ctx context.Context, leagueID string, status league.Status) error {
	query, args, err := qb.Update("leagues").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set league status query: %w", err)
	}

	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set league status: %w", err)
	}
	return nil
}
