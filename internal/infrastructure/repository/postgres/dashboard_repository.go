package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openleague/openleague/internal/domain/match"
	qb "github.com/openleague/openleague/internal/platform/querybuilder"
)

// DashboardRepository runs the aggregate counters behind the admin
// dashboard.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountMatchesByReportState(ctx context.Context, state match.ReportState) (int, error) {
	return r.count(ctx, qb.Select("COUNT(*)").From("matches").
		Where(qb.Eq("report_state", string(state))))
}

func (r *DashboardRepository) CountApprovedMatches(ctx context.Context) (int, error) {
	return r.count(ctx, qb.Select("COUNT(*)").From("matches").
		Where(qb.Eq("state", string(match.StateApproved))))
}

func (r *DashboardRepository) CountLeagues(ctx context.Context) (int, error) {
	return r.count(ctx, qb.Select("COUNT(*)").From("leagues"))
}

func (r *DashboardRepository) CountCups(ctx context.Context) (int, error) {
	return r.count(ctx, qb.Select("COUNT(*)").From("cups"))
}

func (r *DashboardRepository) count(ctx context.Context, builder *qb.SelectBuilder) (int, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := executorFrom(ctx, r.db).GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("run count query: %w", err)
	}

	return count, nil
}
