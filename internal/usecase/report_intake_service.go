package usecase

import (
	"context"
	"fmt"

	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/report"
	"github.com/openleague/openleague/internal/domain/team"
	"github.com/openleague/openleague/internal/domain/user"
	idgen "github.com/openleague/openleague/internal/platform/id"
	"github.com/openleague/openleague/internal/platform/logging"
)

// ProofChecker verifies that a submitted proof artifact is reachable before
// the report is accepted. Implementations must be safe for concurrent use.
type ProofChecker interface {
	CheckProof(ctx context.Context, proofURL string) error
}

// ReportIntakeService accepts match reports from team managers and feeds
// each accepted report straight into reconciliation.
type ReportIntakeService struct {
	tx      TxManager
	matches match.Repository
	reports report.Repository
	teams   team.Repository
	recon   *ReconciliationService
	proofs  ProofChecker
	ids     idgen.Generator
	logger  *logging.Logger
}

func NewReportIntakeService(
	tx TxManager,
	matches match.Repository,
	reports report.Repository,
	teams team.Repository,
	recon *ReconciliationService,
	proofs ProofChecker,
	ids idgen.Generator,
	logger *logging.Logger,
) *ReportIntakeService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReportIntakeService{
		tx:      tx,
		matches: matches,
		reports: reports,
		teams:   teams,
		recon:   recon,
		proofs:  proofs,
		ids:     ids,
		logger:  logger,
	}
}

type SubmitReportInput struct {
	Kind        match.Kind
	MatchID     string
	HomeGoals   int
	AwayGoals   int
	ProofURL    string
	PlayerLines []report.PlayerLine
}

type SubmitReportOutput struct {
	ReportID    string
	ReportState match.ReportState
}

// SubmitReport records the principal's view of the final score. The report
// is attributed to the team the principal manages, and the match is
// reevaluated in the same transaction so a matching counterpart report
// confirms the result immediately.
func (s *ReportIntakeService) SubmitReport(ctx context.Context, principal user.Principal, in SubmitReportInput) (SubmitReportOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportIntakeService.SubmitReport")
	defer span.End()

	item := report.Report{
		MatchID:     in.MatchID,
		MatchKind:   in.Kind,
		HomeGoals:   in.HomeGoals,
		AwayGoals:   in.AwayGoals,
		ProofURL:    in.ProofURL,
		ReportedBy:  principal.UserID,
		PlayerLines: in.PlayerLines,
	}
	if err := item.Validate(); err != nil {
		return SubmitReportOutput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	// Team submissions must carry a proof artifact; only the synthetic
	// report behind an admin override goes without one.
	if in.ProofURL == "" {
		return SubmitReportOutput{}, fmt.Errorf("%w: proof url is required", ErrInvalidInput)
	}

	// Reaching out to the proof host happens before the transaction opens,
	// so a slow or dead host never holds a row lock.
	if s.proofs != nil && in.ProofURL != "" {
		if err := s.proofs.CheckProof(ctx, in.ProofURL); err != nil {
			return SubmitReportOutput{}, fmt.Errorf("%w: proof artifact unreachable: %v", ErrDependencyUnavailable, err)
		}
	}

	var out SubmitReportOutput
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		managed, ok, err := s.teams.GetByManager(ctx, principal.UserID)
		if err != nil {
			return fmt.Errorf("load managed team: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: user=%s manages no team", ErrForbidden, principal.UserID)
		}

		m, ok, err := s.matches.GetForUpdate(ctx, in.Kind, in.MatchID)
		if err != nil {
			return fmt.Errorf("lock match: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: match=%s", ErrNotFound, in.MatchID)
		}
		if !m.OpenForReporting() {
			return fmt.Errorf("%w: match=%s no longer accepts reports", ErrConflict, in.MatchID)
		}
		if !m.HasTeam(managed.ID) {
			return fmt.Errorf("%w: team=%s did not play match=%s", ErrForbidden, managed.ID, in.MatchID)
		}

		exists, err := s.reports.ExistsForTeam(ctx, in.Kind, in.MatchID, managed.ID)
		if err != nil {
			return fmt.Errorf("check existing report: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: team=%s already reported match=%s", ErrConflict, managed.ID, in.MatchID)
		}

		reportID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate report id: %w", err)
		}
		item.ID = reportID
		item.TeamID = managed.ID
		if err := s.reports.Insert(ctx, item); err != nil {
			return fmt.Errorf("insert report: %w", err)
		}

		state, err := s.recon.reevaluateLocked(ctx, m)
		if err != nil {
			return err
		}

		out = SubmitReportOutput{ReportID: reportID, ReportState: state}

		s.logger.InfoContext(ctx, "match report accepted",
			"match_id", in.MatchID,
			"kind", string(in.Kind),
			"team_id", managed.ID,
			"report_id", reportID,
			"report_state", string(state),
		)

		return nil
	})
	if err != nil {
		return SubmitReportOutput{}, err
	}

	return out, nil
}
