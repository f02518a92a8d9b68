package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/report"
	qb "github.com/openleague/openleague/internal/platform/querybuilder"
	"github.com/openleague/openleague/internal/usecase"
)

// ReportRepository persists match reports and their per-player stat lines.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Insert(ctx context.Context, item report.Report) error {
	exec := executorFrom(ctx, r.db)

	insertModel := reportInsertModel{
		ID:         item.ID,
		MatchID:    item.MatchID,
		MatchKind:  string(item.MatchKind),
		TeamID:     teamIDToNullString(item.TeamID),
		HomeGoals:  item.HomeGoals,
		AwayGoals:  item.AwayGoals,
		ProofURL:   item.ProofURL,
		ReportedBy: item.ReportedBy,
	}
	query, args, err := qb.InsertModel("match_reports", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert report query: %w", err)
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		// The partial unique index on (match_kind, match_id, team_id)
		// backstops the in-transaction duplicate check.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: team already reported this match", usecase.ErrConflict)
		}
		return fmt.Errorf("insert report: %w", err)
	}

	if len(item.PlayerLines) == 0 {
		return nil
	}

	builder := qb.InsertInto("report_player_lines").Columns(
		"report_id", "player_id", "goals", "assists", "yellow_cards", "red_cards",
	)
	for _, line := range item.PlayerLines {
		builder.Values(item.ID, line.PlayerID, line.Goals, line.Assists, line.YellowCards, line.RedCards)
	}
	linesQuery, linesArgs, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player lines query: %w", err)
	}
	if _, err := exec.ExecContext(ctx, linesQuery, linesArgs...); err != nil {
		return fmt.Errorf("insert player lines: %w", err)
	}

	return nil
}

func (r *ReportRepository) ListByMatch(ctx context.Context, kind match.Kind, matchID string) ([]report.Report, error) {
	query, args, err := qb.Select("*").From("match_reports").
		Where(
			qb.Eq("match_id", matchID),
			qb.Eq("match_kind", string(kind)),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list reports query: %w", err)
	}

	var rows []reportTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	out := make([]report.Report, 0, len(rows))
	for _, row := range rows {
		out = append(out, reportFromRow(row))
	}

	return r.attachPlayerLines(ctx, out)
}

func (r *ReportRepository) ListByMatchIDs(ctx context.Context, matchIDs []string) (map[string][]report.Report, error) {
	if len(matchIDs) == 0 {
		return map[string][]report.Report{}, nil
	}

	values := make([]any, 0, len(matchIDs))
	for _, id := range matchIDs {
		values = append(values, id)
	}
	query, args, err := qb.Select("*").From("match_reports").
		Where(qb.In("match_id", values)).
		OrderBy("match_id", "created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list reports by matches query: %w", err)
	}

	var rows []reportTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list reports by matches: %w", err)
	}

	items := make([]report.Report, 0, len(rows))
	for _, row := range rows {
		items = append(items, reportFromRow(row))
	}
	items, err = r.attachPlayerLines(ctx, items)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]report.Report, len(matchIDs))
	for _, item := range items {
		out[item.MatchID] = append(out[item.MatchID], item)
	}

	return out, nil
}

func (r *ReportRepository) ExistsForTeam(ctx context.Context, kind match.Kind, matchID, teamID string) (bool, error) {
	query, args, err := qb.Select("COUNT(*)").From("match_reports").
		Where(
			qb.Eq("match_id", matchID),
			qb.Eq("match_kind", string(kind)),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build count team reports query: %w", err)
	}

	var count int
	if err := executorFrom(ctx, r.db).GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("count team reports: %w", err)
	}

	return count > 0, nil
}

func (r *ReportRepository) attachPlayerLines(ctx context.Context, items []report.Report) ([]report.Report, error) {
	if len(items) == 0 {
		return items, nil
	}

	ids := make([]any, 0, len(items))
	index := make(map[string]int, len(items))
	for i, item := range items {
		ids = append(ids, item.ID)
		index[item.ID] = i
	}

	query, args, err := qb.Select("*").From("report_player_lines").
		Where(qb.In("report_id", ids)).
		OrderBy("report_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player lines query: %w", err)
	}

	var rows []reportLineTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player lines: %w", err)
	}

	for _, row := range rows {
		i, ok := index[row.ReportID]
		if !ok {
			continue
		}
		items[i].PlayerLines = append(items[i].PlayerLines, report.PlayerLine{
			PlayerID:    row.PlayerID,
			Goals:       row.Goals,
			Assists:     row.Assists,
			YellowCards: row.YellowCards,
			RedCards:    row.RedCards,
		})
	}

	return items, nil
}
