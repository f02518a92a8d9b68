package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openleague/openleague/internal/domain/match"
	qb "github.com/openleague/openleague/internal/platform/querybuilder"
)

// MatchQueryRepository is the read side of the matches table.
type MatchQueryRepository struct {
	db *sqlx.DB
}

func NewMatchQueryRepository(db *sqlx.DB) *MatchQueryRepository {
	return &MatchQueryRepository{db: db}
}

func (r *MatchQueryRepository) ListByReportStates(ctx context.Context, states []match.ReportState) ([]match.Match, error) {
	values := make([]any, 0, len(states))
	for _, state := range states {
		values = append(values, string(state))
	}

	query, args, err := qb.Select("*").From("matches").
		Where(qb.In("report_state", values)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by report state query: %w", err)
	}

	var rows []matchTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches by report state: %w", err)
	}

	return matchesFromRows(rows), nil
}

func (r *MatchQueryRepository) ListPendingByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Expr("(home_team_id = ? OR away_team_id = ?)", teamID, teamID),
			qb.In("report_state", []any{
				string(match.ReportStateAwaiting),
				string(match.ReportStatePartial),
			}),
			qb.Expr("NOT EXISTS (SELECT 1 FROM match_reports r WHERE r.match_id = matches.id AND r.match_kind = matches.kind AND r.team_id = ?)", teamID),
		).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending matches query: %w", err)
	}

	var rows []matchTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pending matches: %w", err)
	}

	return matchesFromRows(rows), nil
}

func (r *MatchQueryRepository) ListRecentApproved(ctx context.Context, limit int) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("state", string(match.StateApproved))).
		OrderBy("updated_at DESC", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list recent results query: %w", err)
	}

	var rows []matchTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recent results: %w", err)
	}

	return matchesFromRows(rows), nil
}

func (r *MatchQueryRepository) ListByCompetition(ctx context.Context, kind match.Kind, competitionID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("kind", string(kind)),
			qb.Eq("competition_id", competitionID),
		).
		OrderBy("matchday", "leg", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competition matches query: %w", err)
	}

	var rows []matchTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competition matches: %w", err)
	}

	return matchesFromRows(rows), nil
}

func (r *MatchQueryRepository) ListApprovedByCompetition(ctx context.Context, kind match.Kind, competitionID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("kind", string(kind)),
			qb.Eq("competition_id", competitionID),
			qb.Eq("state", string(match.StateApproved)),
		).
		OrderBy("matchday", "leg", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list approved matches query: %w", err)
	}

	var rows []matchTableModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list approved matches: %w", err)
	}

	return matchesFromRows(rows), nil
}

func (r *MatchQueryRepository) CountUnresolvedByCompetition(ctx context.Context, kind match.Kind, competitionID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("matches").
		Where(
			qb.Eq("kind", string(kind)),
			qb.Eq("competition_id", competitionID),
			qb.Expr("state <> ?", string(match.StateApproved)),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count unresolved matches query: %w", err)
	}

	var count int
	if err := executorFrom(ctx, r.db).GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count unresolved matches: %w", err)
	}

	return count, nil
}

func (r *MatchQueryRepository) GetDetail(ctx context.Context, kind match.Kind, matchID string) (match.Detail, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("id", matchID),
			qb.Eq("kind", string(kind)),
		).
		ToSQL()
	if err != nil {
		return match.Detail{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := executorFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Detail{}, false, nil
		}
		return match.Detail{}, false, fmt.Errorf("get match: %w", err)
	}

	linesQuery, linesArgs, err := qb.Select(
		"l.player_id",
		"SUM(l.goals) AS goals",
		"SUM(l.assists) AS assists",
		"SUM(l.yellow_cards) AS yellow_cards",
		"SUM(l.red_cards) AS red_cards",
	).
		From("report_player_lines l JOIN match_reports r ON r.id = l.report_id").
		Where(
			qb.Eq("r.match_id", matchID),
			qb.Eq("r.match_kind", string(kind)),
		).
		GroupBy("l.player_id").
		OrderBy("l.player_id").
		ToSQL()
	if err != nil {
		return match.Detail{}, false, fmt.Errorf("build list player lines query: %w", err)
	}

	var lineRows []playerLineModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &lineRows, linesQuery, linesArgs...); err != nil {
		return match.Detail{}, false, fmt.Errorf("list player lines: %w", err)
	}

	detail := match.Detail{Match: matchFromRow(row)}
	for _, line := range lineRows {
		detail.PlayerLines = append(detail.PlayerLines, match.PlayerLine{
			PlayerID:    line.PlayerID,
			Goals:       line.Goals,
			Assists:     line.Assists,
			YellowCards: line.YellowCards,
			RedCards:    line.RedCards,
		})
	}

	return detail, true, nil
}

func (r *MatchQueryRepository) TopScorersByLeague(ctx context.Context, leagueID string, limit int) ([]match.ScorerTotal, error) {
	query, args, err := qb.Select(
		"l.player_id",
		"COUNT(DISTINCT r.match_id) AS matches",
		"SUM(l.goals) AS goals",
		"SUM(l.assists) AS assists",
	).
		From("report_player_lines l JOIN match_reports r ON r.id = l.report_id JOIN matches m ON m.id = r.match_id AND m.kind = r.match_kind").
		Where(
			qb.Eq("m.kind", string(match.KindLeague)),
			qb.Eq("m.competition_id", leagueID),
			qb.Eq("m.state", string(match.StateApproved)),
		).
		GroupBy("l.player_id").
		OrderBy("goals DESC", "assists DESC", "l.player_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build top scorers query: %w", err)
	}

	var rows []scorerTotalModel
	if err := executorFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list top scorers: %w", err)
	}

	out := make([]match.ScorerTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.ScorerTotal{
			PlayerID: row.PlayerID,
			Matches:  row.Matches,
			Goals:    row.Goals,
			Assists:  row.Assists,
		})
	}

	return out, nil
}
