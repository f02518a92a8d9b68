package usecase

import (
	"context"
	"fmt"

	"github.com/openleague/openleague/internal/domain/cup"
	"github.com/openleague/openleague/internal/domain/league"
	"github.com/openleague/openleague/internal/domain/standings"
	"github.com/openleague/openleague/internal/platform/cache"
	"github.com/openleague/openleague/internal/platform/logging"
)

// StandingsService serves league tables and cup group tables. Reads go
// through a short-lived cache because tables are the hottest public
// endpoint and tolerate a few seconds of staleness.
type StandingsService struct {
	leagues   league.Repository
	cups      cup.Repository
	standings standings.Repository
	cache     *cache.Store
	logger    *logging.Logger
}

func NewStandingsService(
	leagues league.Repository,
	cups cup.Repository,
	standingsRepo standings.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		leagues:   leagues,
		cups:      cups,
		standings: standingsRepo,
		cache:     store,
		logger:    logger,
	}
}

// LeagueTable returns the league's ledger rows ranked by points, goal
// difference, goals scored, then team id.
func (s *StandingsService) LeagueTable(ctx context.Context, leagueID string) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.LeagueTable")
	defer span.End()

	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	key := fmt.Sprintf("standings:league:%s", leagueID)
	rows, err := s.loadTable(ctx, key, func(ctx context.Context) ([]standings.Row, error) {
		_, ok, err := s.leagues.GetByID(ctx, leagueID)
		if err != nil {
			return nil, fmt.Errorf("get league: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
		}

		return s.standings.ListByScope(ctx, standings.LeagueScope(leagueID))
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// CupGroupTable returns one cup group's ledger rows.
func (s *StandingsService) CupGroupTable(ctx context.Context, cupID string, groupNo int) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.CupGroupTable")
	defer span.End()

	if cupID == "" {
		return nil, fmt.Errorf("%w: cup id is required", ErrInvalidInput)
	}
	if groupNo < 1 {
		return nil, fmt.Errorf("%w: group number must be positive", ErrInvalidInput)
	}

	key := fmt.Sprintf("standings:cup:%s:%d", cupID, groupNo)
	rows, err := s.loadTable(ctx, key, func(ctx context.Context) ([]standings.Row, error) {
		_, ok, err := s.cups.GetByID(ctx, cupID)
		if err != nil {
			return nil, fmt.Errorf("get cup: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: cup=%s", ErrNotFound, cupID)
		}

		return s.standings.ListByScope(ctx, standings.CupGroupScope(cupID, groupNo))
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (s *StandingsService) loadTable(ctx context.Context, key string, load func(context.Context) ([]standings.Row, error)) ([]standings.Row, error) {
	loader := func(ctx context.Context) (any, error) {
		rows, err := load(ctx)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].Position = i + 1
		}
		return rows, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]standings.Row), nil
	}

	value, err := s.cache.GetOrLoad(ctx, key, loader)
	if err != nil {
		return nil, err
	}

	rows, ok := value.([]standings.Row)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for %s", key)
	}

	return rows, nil
}
