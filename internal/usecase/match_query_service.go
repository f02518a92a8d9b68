package usecase

import (
	"context"
	"fmt"

	"github.com/openleague/openleague/internal/domain/cup"
	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/report"
	"github.com/openleague/openleague/internal/domain/team"
	"github.com/openleague/openleague/internal/domain/user"
	"github.com/openleague/openleague/internal/platform/logging"
)

const (
	defaultRecentLimit  = 20
	maxRecentLimit      = 100
	defaultScorersLimit = 10
	maxScorersLimit     = 50
)

// ReviewItem pairs a contested or half-reported match with every report on
// file, so an admin sees both claims side by side.
type ReviewItem struct {
	Match   match.Match
	Reports []report.Report
}

// MatchQueryService serves the read paths around matches: the admin review
// queue, manager worklists, public results and scorer charts.
type MatchQueryService struct {
	queries match.QueryRepository
	reports report.Repository
	teams   team.Repository
	cups    cup.Repository
	logger  *logging.Logger
}

func NewMatchQueryService(
	queries match.QueryRepository,
	reports report.Repository,
	teams team.Repository,
	cups cup.Repository,
	logger *logging.Logger,
) *MatchQueryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchQueryService{
		queries: queries,
		reports: reports,
		teams:   teams,
		cups:    cups,
		logger:  logger,
	}
}

// ListForReview returns every match waiting on an admin: disputed ones
// first priority, half-reported ones for chasing the missing side.
func (s *MatchQueryService) ListForReview(ctx context.Context) ([]ReviewItem, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.ListForReview")
	defer span.End()

	matches, err := s.queries.ListByReportStates(ctx, []match.ReportState{
		match.ReportStateDisputed,
		match.ReportStatePartial,
	})
	if err != nil {
		return nil, fmt.Errorf("list matches for review: %w", err)
	}
	if len(matches) == 0 {
		return []ReviewItem{}, nil
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	byMatch, err := s.reports.ListByMatchIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list reports for review: %w", err)
	}

	items := make([]ReviewItem, 0, len(matches))
	for _, m := range matches {
		items = append(items, ReviewItem{Match: m, Reports: byMatch[m.ID]})
	}

	return items, nil
}

// ListPendingForManager returns the matches the principal's team still owes
// a report for.
func (s *MatchQueryService) ListPendingForManager(ctx context.Context, principal user.Principal) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.ListPendingForManager")
	defer span.End()

	managed, ok, err := s.teams.GetByManager(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("load managed team: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: user=%s manages no team", ErrForbidden, principal.UserID)
	}

	matches, err := s.queries.ListPendingByTeam(ctx, managed.ID)
	if err != nil {
		return nil, fmt.Errorf("list pending matches: %w", err)
	}

	return matches, nil
}

// ListRecent returns the latest confirmed results, newest first.
func (s *MatchQueryService) ListRecent(ctx context.Context, limit int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.ListRecent")
	defer span.End()

	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	matches, err := s.queries.ListRecentApproved(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent results: %w", err)
	}

	return matches, nil
}

// GetDetail returns one match with its player lines.
func (s *MatchQueryService) GetDetail(ctx context.Context, kind match.Kind, matchID string) (match.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.GetDetail")
	defer span.End()

	if matchID == "" {
		return match.Detail{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	detail, ok, err := s.queries.GetDetail(ctx, kind, matchID)
	if err != nil {
		return match.Detail{}, fmt.Errorf("get match detail: %w", err)
	}
	if !ok {
		return match.Detail{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return detail, nil
}

// ListByCompetition returns a competition's full calendar.
func (s *MatchQueryService) ListByCompetition(ctx context.Context, kind match.Kind, competitionID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.ListByCompetition")
	defer span.End()

	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	matches, err := s.queries.ListByCompetition(ctx, kind, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list competition matches: %w", err)
	}

	return matches, nil
}

// CupBracket returns a cup with its knockout fixtures, grouped by slot on
// the handler side.
func (s *MatchQueryService) CupBracket(ctx context.Context, cupID string) (cup.Cup, []match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.CupBracket")
	defer span.End()

	if cupID == "" {
		return cup.Cup{}, nil, fmt.Errorf("%w: cup id is required", ErrInvalidInput)
	}

	c, ok, err := s.cups.GetByID(ctx, cupID)
	if err != nil {
		return cup.Cup{}, nil, fmt.Errorf("get cup: %w", err)
	}
	if !ok {
		return cup.Cup{}, nil, fmt.Errorf("%w: cup=%s", ErrNotFound, cupID)
	}

	matches, err := s.queries.ListByCompetition(ctx, match.KindCup, cupID)
	if err != nil {
		return cup.Cup{}, nil, fmt.Errorf("list cup matches: %w", err)
	}

	knockout := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.Elimination() {
			knockout = append(knockout, m)
		}
	}

	return c, knockout, nil
}

// TopScorers ranks a league's players by confirmed goals.
func (s *MatchQueryService) TopScorers(ctx context.Context, leagueID string, limit int) ([]match.ScorerTotal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchQueryService.TopScorers")
	defer span.End()

	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultScorersLimit
	}
	if limit > maxScorersLimit {
		limit = maxScorersLimit
	}

	totals, err := s.queries.TopScorersByLeague(ctx, leagueID, limit)
	if err != nil {
		return nil, fmt.Errorf("list top scorers: %w", err)
	}

	return totals, nil
}
