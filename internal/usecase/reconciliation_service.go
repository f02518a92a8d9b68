package usecase

import (
	"context"
	"fmt"

	"github.com/openleague/openleague/internal/domain/bracket"
	"github.com/openleague/openleague/internal/domain/cup"
	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/report"
	"github.com/openleague/openleague/internal/domain/standings"
	idgen "github.com/openleague/openleague/internal/platform/id"
	"github.com/openleague/openleague/internal/platform/logging"
)

// ReconciliationService decides the official result of a match from its
// team reports and applies every downstream effect (standings ledger,
// bracket advancement) in the same transaction.
type ReconciliationService struct {
	tx        TxManager
	matches   match.Repository
	reports   report.Repository
	standings standings.Repository
	cups      cup.Repository
	ids       idgen.Generator
	logger    *logging.Logger
}

func NewReconciliationService(
	tx TxManager,
	matches match.Repository,
	reports report.Repository,
	standingsRepo standings.Repository,
	cups cup.Repository,
	ids idgen.Generator,
	logger *logging.Logger,
) *ReconciliationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReconciliationService{
		tx:        tx,
		matches:   matches,
		reports:   reports,
		standings: standingsRepo,
		cups:      cups,
		ids:       ids,
		logger:    logger,
	}
}

// Reevaluate re-runs the reconciliation decision for a match. The match row
// stays locked for the whole decision, so concurrent report submissions
// serialize behind it.
func (s *ReconciliationService) Reevaluate(ctx context.Context, kind match.Kind, matchID string) (match.ReportState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.Reevaluate")
	defer span.End()

	var state match.ReportState
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, ok, err := s.matches.GetForUpdate(ctx, kind, matchID)
		if err != nil {
			return fmt.Errorf("lock match: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}
		if m.ReportState.Terminal() {
			return fmt.Errorf("%w: match=%s already confirmed", ErrConflict, matchID)
		}

		state, err = s.reevaluateLocked(ctx, m)
		return err
	})
	if err != nil {
		return "", err
	}

	return state, nil
}

type ResolveDisputeInput struct {
	Kind            match.Kind
	MatchID         string
	WinningReportID string
	AdminUserID     string
}

// ResolveDispute lets an admin pick the authoritative report. With a single
// report on file that report wins outright; with two on file the admin must
// name the winner.
func (s *ReconciliationService) ResolveDispute(ctx context.Context, in ResolveDisputeInput) (match.ReportState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.ResolveDispute")
	defer span.End()

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, ok, err := s.matches.GetForUpdate(ctx, in.Kind, in.MatchID)
		if err != nil {
			return fmt.Errorf("lock match: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: match=%s", ErrNotFound, in.MatchID)
		}
		if m.ReportState.Terminal() {
			return fmt.Errorf("%w: match=%s already confirmed", ErrConflict, in.MatchID)
		}

		items, err := s.reports.ListByMatch(ctx, in.Kind, in.MatchID)
		if err != nil {
			return fmt.Errorf("list match reports: %w", err)
		}

		var chosen report.Report
		switch len(items) {
		case 0:
			return fmt.Errorf("%w: match=%s has no reports to resolve", ErrNotFound, in.MatchID)
		case 1:
			chosen = items[0]
		case 2:
			if in.WinningReportID == "" {
				return fmt.Errorf("%w: winning report id is required when two reports conflict", ErrInvalidInput)
			}
			found := false
			for _, item := range items {
				if item.ID == in.WinningReportID {
					chosen = item
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("%w: report=%s does not belong to match=%s", ErrNotFound, in.WinningReportID, in.MatchID)
			}
		default:
			return fmt.Errorf("match=%s holds %d reports, expected at most 2", in.MatchID, len(items))
		}

		s.logger.InfoContext(ctx, "dispute resolved by admin",
			"match_id", in.MatchID,
			"kind", string(in.Kind),
			"winning_report_id", chosen.ID,
			"admin_user_id", in.AdminUserID,
		)

		return s.confirmLocked(ctx, m, chosen.HomeGoals, chosen.AwayGoals, match.ReportStateAdminConfirmed)
	})
	if err != nil {
		return "", err
	}

	return match.ReportStateAdminConfirmed, nil
}

type OverrideResultInput struct {
	Kind        match.Kind
	MatchID     string
	HomeGoals   int
	AwayGoals   int
	AdminUserID string
}

// OverrideResult lets an admin load the official score directly. The score
// is recorded as a synthetic report so the audit trail keeps who entered it.
func (s *ReconciliationService) OverrideResult(ctx context.Context, in OverrideResultInput) (match.ReportState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.OverrideResult")
	defer span.End()

	if in.HomeGoals < 0 || in.AwayGoals < 0 {
		return "", fmt.Errorf("%w: goals cannot be negative", ErrInvalidInput)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, ok, err := s.matches.GetForUpdate(ctx, in.Kind, in.MatchID)
		if err != nil {
			return fmt.Errorf("lock match: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: match=%s", ErrNotFound, in.MatchID)
		}
		if m.ReportState.Terminal() {
			return fmt.Errorf("%w: match=%s already confirmed", ErrConflict, in.MatchID)
		}

		reportID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate override report id: %w", err)
		}
		synthetic := report.Report{
			ID:         reportID,
			MatchID:    in.MatchID,
			MatchKind:  in.Kind,
			HomeGoals:  in.HomeGoals,
			AwayGoals:  in.AwayGoals,
			ProofURL:   "admin/override",
			ReportedBy: in.AdminUserID,
		}
		if err := s.reports.Insert(ctx, synthetic); err != nil {
			return fmt.Errorf("insert override report: %w", err)
		}

		s.logger.InfoContext(ctx, "result overridden by admin",
			"match_id", in.MatchID,
			"kind", string(in.Kind),
			"home_goals", in.HomeGoals,
			"away_goals", in.AwayGoals,
			"admin_user_id", in.AdminUserID,
		)

		return s.confirmLocked(ctx, m, in.HomeGoals, in.AwayGoals, match.ReportStateAdminConfirmed)
	})
	if err != nil {
		return "", err
	}

	return match.ReportStateAdminConfirmed, nil
}

// reevaluateLocked applies the reconciliation decision table to a match
// whose row is already locked by the ambient transaction.
func (s *ReconciliationService) reevaluateLocked(ctx context.Context, m match.Match) (match.ReportState, error) {
	items, err := s.reports.ListByMatch(ctx, m.Kind, m.ID)
	if err != nil {
		return "", fmt.Errorf("list match reports: %w", err)
	}

	switch len(items) {
	case 0:
		return m.ReportState, nil
	case 1:
		if m.ReportState == match.ReportStatePartial {
			return m.ReportState, nil
		}
		if err := s.matches.SetReportState(ctx, m.Kind, m.ID, match.ReportStatePartial); err != nil {
			return "", fmt.Errorf("mark match partially reported: %w", err)
		}
		return match.ReportStatePartial, nil
	case 2:
		if items[0].SameScore(items[1]) {
			if err := s.confirmLocked(ctx, m, items[0].HomeGoals, items[0].AwayGoals, match.ReportStateAutoConfirmed); err != nil {
				return "", err
			}
			return match.ReportStateAutoConfirmed, nil
		}
		if m.ReportState == match.ReportStateDisputed {
			return m.ReportState, nil
		}
		if err := s.matches.SetReportState(ctx, m.Kind, m.ID, match.ReportStateDisputed); err != nil {
			return "", fmt.Errorf("mark match disputed: %w", err)
		}
		s.logger.WarnContext(ctx, "conflicting reports opened a dispute",
			"match_id", m.ID,
			"kind", string(m.Kind),
		)
		return match.ReportStateDisputed, nil
	default:
		return "", fmt.Errorf("match=%s holds %d reports, expected at most 2", m.ID, len(items))
	}
}

// confirmLocked stamps the official score and applies the downstream
// effects of the confirmation.
func (s *ReconciliationService) confirmLocked(ctx context.Context, m match.Match, homeGoals, awayGoals int, state match.ReportState) error {
	if err := s.matches.Confirm(ctx, m.Kind, m.ID, homeGoals, awayGoals, state); err != nil {
		return fmt.Errorf("confirm match: %w", err)
	}
	m.HomeGoals = &homeGoals
	m.AwayGoals = &awayGoals
	m.State = match.StateApproved
	m.ReportState = state

	if m.Elimination() {
		return s.advanceLocked(ctx, m)
	}

	scope := standings.LeagueScope(m.CompetitionID)
	if m.Kind == match.KindCup {
		if m.Group == nil {
			return fmt.Errorf("cup group match=%s is missing its group", m.ID)
		}
		scope = standings.CupGroupScope(m.CompetitionID, *m.Group)
	}

	homeDelta, awayDelta := standings.ResultDeltas(m.HomeTeamID, m.AwayTeamID, homeGoals, awayGoals)
	if err := s.standings.ApplyDelta(ctx, scope, homeDelta); err != nil {
		return fmt.Errorf("apply home standings delta: %w", err)
	}
	if err := s.standings.ApplyDelta(ctx, scope, awayDelta); err != nil {
		return fmt.Errorf("apply away standings delta: %w", err)
	}

	s.logger.InfoContext(ctx, "match confirmed",
		"match_id", m.ID,
		"kind", string(m.Kind),
		"home_goals", homeGoals,
		"away_goals", awayGoals,
		"report_state", string(state),
	)

	return nil
}

// advanceLocked resolves the confirmed match's bracket slot and, when
// decided, seeds the winner into the next slot or crowns the cup champion.
func (s *ReconciliationService) advanceLocked(ctx context.Context, m match.Match) error {
	if m.SlotID == nil {
		return fmt.Errorf("elimination match=%s is missing its bracket slot", m.ID)
	}

	legs, err := s.matches.ListBySlot(ctx, m.CompetitionID, *m.SlotID)
	if err != nil {
		return fmt.Errorf("list slot legs: %w", err)
	}
	for i := range legs {
		if legs[i].ID == m.ID {
			legs[i] = m
		}
	}

	outcome, err := bracket.Resolve(legs)
	if err != nil {
		return fmt.Errorf("resolve bracket slot %d: %w", *m.SlotID, err)
	}
	if !outcome.Decided {
		if m.NextSlotID == nil {
			// Drawn single-leg final: confirmed, but no champion until
			// an admin overrides with a decisive score.
			s.logger.WarnContext(ctx, "final ended level, winner undecided",
				"cup_id", m.CompetitionID,
				"match_id", m.ID,
			)
		}
		return nil
	}

	if m.NextSlotID == nil {
		if err := s.cups.SetWinner(ctx, m.CompetitionID, outcome.WinnerTeamID); err != nil {
			return fmt.Errorf("record cup winner: %w", err)
		}
		s.logger.InfoContext(ctx, "cup decided",
			"cup_id", m.CompetitionID,
			"winner_team_id", outcome.WinnerTeamID,
			"basis", string(outcome.Basis),
		)
		return nil
	}

	side := bracket.SlotSide(*m.SlotID)
	if err := s.matches.AssignSlotTeam(ctx, m.CompetitionID, *m.NextSlotID, side, outcome.WinnerTeamID); err != nil {
		return fmt.Errorf("seed winner into slot %d: %w", *m.NextSlotID, err)
	}

	s.logger.InfoContext(ctx, "bracket slot resolved",
		"cup_id", m.CompetitionID,
		"slot_id", *m.SlotID,
		"next_slot_id", *m.NextSlotID,
		"side", string(side),
		"winner_team_id", outcome.WinnerTeamID,
		"basis", string(outcome.Basis),
	)

	return nil
}
