package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openleague/openleague/internal/domain/match"
	qb "github.com/openleague/openleague/internal/platform/querybuilder"
	"github.com/openleague/openleague/internal/usecase"
)

// MatchRepository is the write side of the matches table. Every method
// joins the ambient transaction when one is carried by the context.
type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, kind match.Kind, matchID string) (match.Match, bool, error) {
	return r.getOne(ctx, kind, matchID, false)
}

func (r *MatchRepository) GetForUpdate(ctx context.Context, kind match.Kind, matchID string) (match.Match, bool, error) {
	return r.getOne(ctx, kind, matchID, true)
}

func (r *MatchRepository) getOne(ctx context.Context, kind match.Kind, matchID string, forUpdate bool) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("id", matchID),
			qb.Eq("kind", string(kind)),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}
	if forUpdate {
		query += " FOR UPDATE"
	}

	var row matchTableModel
	if err := executorFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) SetReportState(ctx context.Context, kind match.Kind, matchID string, state match.ReportState) error {
	query, args, err := qb.Update("matches").
		Set("report_state", string(state)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", matchID),
			qb.Eq("kind", string(kind)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set report state query: %w", err)
	}

	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set report state: %w", err)
	}
	return nil
}

func (r *MatchRepository) Confirm(ctx context.Context, kind match.Kind, matchID string, homeGoals, awayGoals int, state match.ReportState) error {
	query, args, err := qb.Update("matches").
		Set("home_goals", homeGoals).
		Set("away_goals", awayGoals).
		Set("state", string(match.StateApproved)).
		Set("report_state", string(state)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", matchID),
			qb.Eq("kind", string(kind)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build confirm match query: %w", err)
	}

	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("confirm match: %w", err)
	}
	return nil
}

func (r *MatchRepository) ListBySlot(ctx context.Context, cupID string, slotID int) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("kind", string(match.KindCup)),
			qb.Eq("competition_id", cupID),
			qb.Eq("bracket_slot", slotID),
		).
		OrderBy("leg", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list slot legs query: %w", err)
	}

	var rows []matchTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list slot legs: %w", err)
	}

	return matchesFromRows(rows), nil
}

func (r *MatchRepository) AssignSlotTeam(ctx context.Context, cupID string, slotID int, side match.Side, teamID string) error {
	var column string
	switch side {
	case match.SideHome:
		column = "home_team_id"
	case match.SideAway:
		column = "away_team_id"
	default:
		return fmt.Errorf("unknown bracket side %q", side)
	}

	query, args, err := qb.Update("matches").
		Set(column, teamID).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("kind", string(match.KindCup)),
			qb.Eq("competition_id", cupID),
			qb.Eq("bracket_slot", slotID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build assign slot team query: %w", err)
	}

	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("assign slot team: %w", err)
	}
	return nil
}

func (r *MatchRepository) InsertBatch(ctx context.Context, matches []match.Match) error {
	if len(matches) == 0 {
		return nil
	}

	builder := qb.InsertInto("matches").Columns(
		"id", "kind", "competition_id", "matchday", "phase", "group_no",
		"leg", "bracket_slot", "next_bracket_slot",
		"home_team_id", "away_team_id",
		"state", "report_state", "kickoff_at",
	)
	for _, m := range matches {
		builder.Values(
			m.ID, string(m.Kind), m.CompetitionID, m.Matchday, string(m.Phase), intPtrToNullInt64(m.Group),
			m.Leg, intPtrToNullInt64(m.SlotID), intPtrToNullInt64(m.NextSlotID),
			m.HomeTeamID, m.AwayTeamID,
			string(m.State), string(m.ReportState), m.KickoffAt,
		)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert matches query: %w", err)
	}

	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: duplicate match in batch", usecase.ErrConflict)
		}
		return fmt.Errorf("insert matches: %w", err)
	}
	return nil
}
