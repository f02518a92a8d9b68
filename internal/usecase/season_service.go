package usecase

import (
	"context"
	"fmt"

	"github.com/openleague/openleague/internal/domain/league"
	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/platform/logging"
)

// SeasonService closes out league seasons once every result is settled.
type SeasonService struct {
	tx      TxManager
	leagues league.Repository
	queries match.QueryRepository
	logger  *logging.Logger
}

func NewSeasonService(
	tx TxManager,
	leagues league.Repository,
	queries match.QueryRepository,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonService{
		tx:      tx,
		leagues: leagues,
		queries: queries,
		logger:  logger,
	}
}

// ListLeagues returns every league, open and archived.
func (s *SeasonService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListLeagues")
	defer span.End()

	leagues, err := s.leagues.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

// FinalizeSeason archives a league. It refuses while any match still lacks
// a confirmed result, so a closed season can never change its table.
func (s *SeasonService) FinalizeSeason(ctx context.Context, leagueID, adminUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.FinalizeSeason")
	defer span.End()

	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, ok, err := s.leagues.GetByID(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("load league: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
		}
		if l.Status == league.StatusArchived {
			return fmt.Errorf("%w: league=%s is already archived", ErrConflict, leagueID)
		}

		unresolved, err := s.queries.CountUnresolvedByCompetition(ctx, match.KindLeague, leagueID)
		if err != nil {
			return fmt.Errorf("count unresolved matches: %w", err)
		}
		if unresolved > 0 {
			return fmt.Errorf("%w: league=%s still has %d unresolved matches", ErrConflict, leagueID, unresolved)
		}

		if err := s.leagues.SetStatus(ctx, leagueID, league.StatusArchived); err != nil {
			return fmt.Errorf("archive league: %w", err)
		}

		s.logger.InfoContext(ctx, "season finalized",
			"league_id", leagueID,
			"admin_user_id", adminUserID,
		)

		return nil
	})
}
