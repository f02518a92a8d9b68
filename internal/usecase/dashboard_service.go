package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/team"
	"github.com/openleague/openleague/internal/platform/logging"
)

// DashboardRepository serves the aggregate counters behind the admin
// dashboard.
type DashboardRepository interface {
	CountMatchesByReportState(ctx context.Context, state match.ReportState) (int, error)
	CountApprovedMatches(ctx context.Context) (int, error)
	CountLeagues(ctx context.Context) (int, error)
	CountCups(ctx context.Context) (int, error)
}

type DashboardSnapshot struct {
	Disputed          int `json:"disputed"`
	PartiallyReported int `json:"partially_reported"`
	AwaitingReports   int `json:"awaiting_reports"`
	ApprovedMatches   int `json:"approved_matches"`
	Teams             int `json:"teams"`
	Leagues           int `json:"leagues"`
	Cups              int `json:"cups"`
}

// DashboardService aggregates the admin landing-page counters. The counts
// are independent queries, so they fan out concurrently.
type DashboardService struct {
	counters DashboardRepository
	teams    team.Repository
	logger   *logging.Logger
}

func NewDashboardService(counters DashboardRepository, teams team.Repository, logger *logging.Logger) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DashboardService{
		counters: counters,
		teams:    teams,
		logger:   logger,
	}
}

func (s *DashboardService) Snapshot(ctx context.Context) (DashboardSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Snapshot")
	defer span.End()

	var snapshot DashboardSnapshot

	workers := pool.New().WithContext(ctx).WithCancelOnError()
	workers.Go(func(ctx context.Context) error {
		count, err := s.counters.CountMatchesByReportState(ctx, match.ReportStateDisputed)
		if err != nil {
			return fmt.Errorf("count disputed matches: %w", err)
		}
		snapshot.Disputed = count
		return nil
	})
	workers.Go(func(ctx context.Context) error {
		count, err := s.counters.CountMatchesByReportState(ctx, match.ReportStatePartial)
		if err != nil {
			return fmt.Errorf("count partially reported matches: %w", err)
		}
		snapshot.PartiallyReported = count
		return nil
	})
	workers.Go(func(ctx context.Context) error {
		count, err := s.counters.CountMatchesByReportState(ctx, match.ReportStateAwaiting)
		if err != nil {
			return fmt.Errorf("count awaiting matches: %w", err)
		}
		snapshot.AwaitingReports = count
		return nil
	})
	workers.Go(func(ctx context.Context) error {
		count, err := s.counters.CountApprovedMatches(ctx)
		if err != nil {
			return fmt.Errorf("count approved matches: %w", err)
		}
		snapshot.ApprovedMatches = count
		return nil
	})
	workers.Go(func(ctx context.Context) error {
		count, err := s.teams.CountAll(ctx)
		if err != nil {
			return fmt.Errorf("count teams: %w", err)
		}
		snapshot.Teams = count
		return nil
	})
	workers.Go(func(ctx context.Context) error {
		count, err := s.counters.CountLeagues(ctx)
		if err != nil {
			return fmt.Errorf("count leagues: %w", err)
		}
		snapshot.Leagues = count
		return nil
	})
	workers.Go(func(ctx context.Context) error {
		count, err := s.counters.CountCups(ctx)
		if err != nil {
			return fmt.Errorf("count cups: %w", err)
		}
		snapshot.Cups = count
		return nil
	})

	if err := workers.Wait(); err != nil {
		return DashboardSnapshot{}, err
	}

	return snapshot, nil
}
