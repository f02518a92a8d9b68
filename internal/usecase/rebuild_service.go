package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/openleague/openleague/internal/domain/cup"
	"github.com/openleague/openleague/internal/domain/league"
	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/standings"
	"github.com/openleague/openleague/internal/platform/logging"
)

const (
	rebuildStatusSuccess = "success"
	rebuildStatusFailed  = "failed"

	defaultRebuildWorkers = 4
	maxRebuildWorkers     = 16
)

// Both cup groups share the ledger, so a cup rebuild resets and replays
// two scopes.
var cupGroupNumbers = []int{1, 2}

type RebuildInput struct {
	MaxWorkers int
}

type RebuildResult struct {
	CompetitionCount int                 `json:"competition_count"`
	SuccessCount     int                 `json:"success_count"`
	FailedCount      int                 `json:"failed_count"`
	WorkerCount      int                 `json:"worker_count"`
	Tasks            []RebuildTaskResult `json:"tasks"`
}

type RebuildTaskResult struct {
	Kind          string `json:"kind"`
	CompetitionID string `json:"competition_id"`
	Matches       int    `json:"matches"`
	Status        string `json:"status"`
	DurationMs    int64  `json:"duration_ms"`
	Message       string `json:"message,omitempty"`
}

// RebuildService recomputes the standings ledger from confirmed results.
// It exists for recovery: after a manual data fix the incremental ledger
// can drift from the matches table, and a replay brings it back.
type RebuildService struct {
	tx        TxManager
	leagues   league.Repository
	cups      cup.Repository
	queries   match.QueryRepository
	standings standings.Repository
	logger    *logging.Logger
}

func NewRebuildService(
	tx TxManager,
	leagues league.Repository,
	cups cup.Repository,
	queries match.QueryRepository,
	standingsRepo standings.Repository,
	logger *logging.Logger,
) *RebuildService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RebuildService{
		tx:        tx,
		leagues:   leagues,
		cups:      cups,
		queries:   queries,
		standings: standingsRepo,
		logger:    logger,
	}
}

type rebuildTarget struct {
	kind          match.Kind
	competitionID string
}

// Rebuild replays every competition's confirmed results into a fresh
// ledger. Competitions rebuild independently on a worker pool; each one is
// reset and replayed inside its own transaction, so readers never see a
// half-empty table.
func (s *RebuildService) Rebuild(ctx context.Context, in RebuildInput) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RebuildService.Rebuild")
	defer span.End()

	leagues, err := s.leagues.List(ctx)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("list leagues: %w", err)
	}
	cups, err := s.cups.List(ctx)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("list cups: %w", err)
	}

	targets := make([]rebuildTarget, 0, len(leagues)+len(cups))
	for _, l := range leagues {
		targets = append(targets, rebuildTarget{kind: match.KindLeague, competitionID: l.ID})
	}
	for _, c := range cups {
		targets = append(targets, rebuildTarget{kind: match.KindCup, competitionID: c.ID})
	}

	workerCount := normalizeRebuildWorkerCount(in.MaxWorkers, len(targets))
	result := RebuildResult{
		CompetitionCount: len(targets),
		WorkerCount:      workerCount,
		Tasks:            make([]RebuildTaskResult, 0, len(targets)),
	}
	if len(targets) == 0 {
		return result, nil
	}

	rows := make(chan RebuildTaskResult, len(targets))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RebuildTaskResult{
				Kind:          string(target.kind),
				CompetitionID: target.competitionID,
			}

			matches, err := s.rebuildCompetition(ctx, target)
			row.Matches = matches
			row.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				row.Status = rebuildStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = rebuildStatusSuccess
				successCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return RebuildResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].Kind != result.Tasks[j].Kind {
			return result.Tasks[i].Kind < result.Tasks[j].Kind
		}
		return result.Tasks[i].CompetitionID < result.Tasks[j].CompetitionID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "standings rebuild finished",
		"competitions", result.CompetitionCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)

	return result, nil
}

func (s *RebuildService) rebuildCompetition(ctx context.Context, target rebuildTarget) (int, error) {
	var replayed int
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		scopes := []standings.Scope{standings.LeagueScope(target.competitionID)}
		if target.kind == match.KindCup {
			scopes = scopes[:0]
			for _, groupNo := range cupGroupNumbers {
				scopes = append(scopes, standings.CupGroupScope(target.competitionID, groupNo))
			}
		}
		for _, scope := range scopes {
			if err := s.standings.ResetScope(ctx, scope); err != nil {
				return fmt.Errorf("reset scope: %w", err)
			}
		}

		approved, err := s.queries.ListApprovedByCompetition(ctx, target.kind, target.competitionID)
		if err != nil {
			return fmt.Errorf("list approved matches: %w", err)
		}

		for _, m := range approved {
			if m.Elimination() {
				continue
			}
			if m.HomeGoals == nil || m.AwayGoals == nil {
				return fmt.Errorf("approved match=%s is missing its score", m.ID)
			}

			scope := standings.LeagueScope(target.competitionID)
			if m.Kind == match.KindCup {
				if m.Group == nil {
					return fmt.Errorf("cup group match=%s is missing its group", m.ID)
				}
				scope = standings.CupGroupScope(target.competitionID, *m.Group)
			}

			homeDelta, awayDelta := standings.ResultDeltas(m.HomeTeamID, m.AwayTeamID, *m.HomeGoals, *m.AwayGoals)
			if err := s.standings.ApplyDelta(ctx, scope, homeDelta); err != nil {
				return fmt.Errorf("apply home delta match=%s: %w", m.ID, err)
			}
			if err := s.standings.ApplyDelta(ctx, scope, awayDelta); err != nil {
				return fmt.Errorf("apply away delta match=%s: %w", m.ID, err)
			}
			replayed++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return replayed, nil
}

func normalizeRebuildWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = defaultRebuildWorkers
	}
	if value > maxRebuildWorkers {
		value = maxRebuildWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
