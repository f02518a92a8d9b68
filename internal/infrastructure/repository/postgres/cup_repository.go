package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openleague/openleague/internal/domain/cup"
	qb "github.com/openleague/openleague/internal/platform/querybuilder"
	"github.com/openleague/openleague/internal/usecase"
)

type CupRepository struct {
	db *sqlx.DB
}

func NewCupRepository(db *sqlx.DB) *CupRepository {
	return &CupRepository{db: db}
}

func (r *CupRepository) Insert(ctx context.Context, item cup.Cup) error {
	insertModel := cupInsertModel{
		ID:     item.ID,
		Name:   item.Name,
		Season: item.Season,
	}
	query, args, err := qb.InsertModel("cups", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert cup query: %w", err)
	}

	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cup=%s already exists", usecase.ErrConflict, item.ID)
		}
		return fmt.Errorf("insert cup: %w", err)
	}
	return nil
}

func (r *CupRepository) GetByID(ctx context.Context, cupID string) (cup.Cup, bool, error) {
	query, args, err := qb.Select("*").From("cups").
		Where(qb.Eq("id", cupID)).
		ToSQL()
	if err != nil {
		return cup.Cup{}, false, fmt.Errorf("build get cup query: %w", err)
	}

	var row cupTableModel
	if err := executorFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return cup.Cup{}, false, nil
		}
		return cup.Cup{}, false, fmt.Errorf("get cup: %w", err)
	}

	return cupFromRow(row), true, nil
}

func (r *CupRepository) List(ctx context.Context) ([]cup.Cup, error) {
	query, args, err := qb.Select("*").From("cups").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list cups query: %w", err)
	}

	var rows []cupTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list cups: %w", err)
	}

	out := make([]cup.Cup, 0, len(rows))
	for _, row := range rows {
		out = append(out, cupFromRow(row))
	}

	return out, nil
}

func (r *CupRepository) SetWinner(ctx context.Context, cupID, teamID string) error {
	query, args, err := qb.Update("cups").
		Set("winner_team_id", teamID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", cupID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set cup winner query: %w", err)
	}

	if _, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set cup winner: %w", err)
	}
	return nil
}
