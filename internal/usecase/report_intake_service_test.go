package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/report"
	"github.com/openleague/openleague/internal/domain/team"
	"github.com/openleague/openleague/internal/domain/user"
	"github.com/openleague/openleague/internal/platform/logging"
)

func newIntakeForTest(matches *stubMatches, reports *stubReports, teams *stubTeams, proofs ProofChecker) *ReportIntakeService {
	recon := newReconciliationForTest(matches, reports, nil, nil)
	return NewReportIntakeService(stubTx{}, matches, reports, teams, recon, proofs, &seqIDGenerator{}, logging.NewNop())
}

func managerOf(teamID string) (*stubTeams, user.Principal) {
	userID := "user-" + teamID
	teams := &stubTeams{
		byID: map[string]team.Team{
			teamID: {ID: teamID, LeagueID: "league-1", ManagerUserID: userID},
		},
		byManager: map[string]team.Team{
			userID: {ID: teamID, LeagueID: "league-1", ManagerUserID: userID},
		},
	}
	return teams, user.Principal{UserID: userID, Role: user.RoleManager}
}

func TestReportIntakeService_SubmitReport_FirstReportMarksPartial(t *testing.T) {
	t.Parallel()

	matches := newStubMatches(leagueMatchFixture())
	reports := &stubReports{}
	teams, principal := managerOf("team-a")
	service := newIntakeForTest(matches, reports, teams, nil)

	out, err := service.SubmitReport(context.Background(), principal, SubmitReportInput{
		Kind:      match.KindLeague,
		MatchID:   "m1",
		HomeGoals: 2,
		AwayGoals: 1,
		ProofURL:  "https://img.example/final-whistle.jpg",
	})
	if err != nil {
		t.Fatalf("SubmitReport error: %v", err)
	}
	if out.ReportState != match.ReportStatePartial {
		t.Fatalf("expected partial state, got %s", out.ReportState)
	}
	if len(reports.items) != 1 {
		t.Fatalf("expected 1 stored report, got %d", len(reports.items))
	}
	if reports.items[0].TeamID != "team-a" || reports.items[0].ReportedBy != principal.UserID {
		t.Fatalf("unexpected stored report: %+v", reports.items[0])
	}
}

func TestReportIntakeService_SubmitReport_MatchingCounterpartAutoConfirms(t *testing.T) {
	t.Parallel()

	matches := newStubMatches(func() match.Match {
		m := leagueMatchFixture()
		m.ReportState = match.ReportStatePartial
		return m
	}())
	reports := &stubReports{items: []report.Report{
		teamReport("r1", "m1", "team-a", match.KindLeague, 2, 1),
	}}
	teams, principal := managerOf("team-b")
	service := newIntakeForTest(matches, reports, teams, nil)

	out, err := service.SubmitReport(context.Background(), principal, SubmitReportInput{
		Kind:      match.KindLeague,
		MatchID:   "m1",
		HomeGoals: 2,
		AwayGoals: 1,
		ProofURL:  "https://img.example/counterpart.jpg",
	})
	if err != nil {
		t.Fatalf("SubmitReport error: %v", err)
	}
	if out.ReportState != match.ReportStateAutoConfirmed {
		t.Fatalf("expected auto confirmed, got %s", out.ReportState)
	}
	if got := matches.byID["m1"].State; got != match.StateApproved {
		t.Fatalf("expected approved match, got %s", got)
	}
}

func TestReportIntakeService_SubmitReport_ConflictingCounterpartDisputes(t *testing.T) {
	t.Parallel()

	matches := newStubMatches(func() match.Match {
		m := leagueMatchFixture()
		m.ReportState = match.ReportStatePartial
		return m
	}())
	reports := &stubReports{items: []report.Report{
		teamReport("r1", "m1", "team-a", match.KindLeague, 2, 1),
	}}
	teams, principal := managerOf("team-b")
	service := newIntakeForTest(matches, reports, teams, nil)

	out, err := service.SubmitReport(context.Background(), principal, SubmitReportInput{
		Kind:      match.KindLeague,
		MatchID:   "m1",
		HomeGoals: 1,
		AwayGoals: 1,
		ProofURL:  "https://img.example/counterpart.jpg",
	})
	if err != nil {
		t.Fatalf("SubmitReport error: %v", err)
	}
	if out.ReportState != match.ReportStateDisputed {
		t.Fatalf("expected disputed, got %s", out.ReportState)
	}
}

func TestReportIntakeService_SubmitReport_RejectsNonParticipant(t *testing.T) {
	t.Parallel()

	matches := newStubMatches(leagueMatchFixture())
	teams, principal := managerOf("team-c")
	service := newIntakeForTest(matches, &stubReports{}, teams, nil)

	_, err := service.SubmitReport(context.Background(), principal, SubmitReportInput{
		Kind:      match.KindLeague,
		MatchID:   "m1",
		HomeGoals: 1,
		AwayGoals: 0,
		ProofURL:  "https://img.example/final-whistle.jpg",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReportIntakeService_SubmitReport_RejectsManagerWithoutTeam(t *testing.T) {
	t.Parallel()

	matches := newStubMatches(leagueMatchFixture())
	teams := &stubTeams{byManager: map[string]team.Team{}}
	service := newIntakeForTest(matches, &stubReports{}, teams, nil)

	_, err := service.SubmitReport(context.Background(), user.Principal{UserID: "user-x", Role: user.RoleManager}, SubmitReportInput{
		Kind:      match.KindLeague,
		MatchID:   "m1",
		HomeGoals: 1,
		AwayGoals: 0,
		ProofURL:  "https://img.example/final-whistle.jpg",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReportIntakeService_SubmitReport_RejectsDuplicate(t *testing.T) {
	t.Parallel()

	matches := newStubMatches(func() match.Match {
		m := leagueMatchFixture()
		m.ReportState = match.ReportStatePartial
		return m
	}())
	reports := &stubReports{items: []report.Report{
		teamReport("r1", "m1", "team-a", match.KindLeague, 2, 1),
	}}
	teams, principal := managerOf("team-a")
	service := newIntakeForTest(matches, reports, teams, nil)

	_, err := service.SubmitReport(context.Background(), principal, SubmitReportInput{
		Kind:      match.KindLeague,
		MatchID:   "m1",
		HomeGoals: 2,
		AwayGoals: 1,
		ProofURL:  "https://img.example/final-whistle.jpg",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestReportIntakeService_SubmitReport_RejectsSettledMatch(t *testing.T) {
	t.Parallel()

	settled := leagueMatchFixture()
	settled.State = match.StateApproved
	settled.ReportState = match.ReportStateAutoConfirmed
	matches := newStubMatches(settled)
	teams, principal := managerOf("team-a")
	service := newIntakeForTest(matches, &stubReports{}, teams, nil)

	_, err := service.SubmitReport(context.Background(), principal, SubmitReportInput{
		Kind:      match.KindLeague,
		MatchID:   "m1",
		HomeGoals: 2,
		AwayGoals: 1,
		ProofURL:  "https://img.example/final-whistle.jpg",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestReportIntakeService_SubmitReport_RejectsNegativeScore(t *testing.T) {
	t.Parallel()

	matches := newStubMatches(leagueMatchFixture())
	teams, principal := managerOf("team-a")
	service := newIntakeForTest(matches, &stubReports{}, teams, nil)

	_, err := service.SubmitReport(context.Background(), principal, SubmitReportInput{
		Kind:      match.KindLeague,
		MatchID:   "m1",
		HomeGoals: -1,
		AwayGoals: 0,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReportIntakeService_SubmitReport_UnreachableProofFails(t *testing.T) {
	t.Parallel()

	matches := newStubMatches(leagueMatchFixture())
	reports := &stubReports{}
	teams, principal := managerOf("team-a")
	proofs := &stubProofChecker{err: errors.New("connect: timeout")}
	service := newIntakeForTest(matches, reports, teams, proofs)

	_, err := service.SubmitReport(context.Background(), principal, SubmitReportInput{
		Kind:      match.KindLeague,
		MatchID:   "m1",
		HomeGoals: 2,
		AwayGoals: 1,
		ProofURL:  "https://img.example/dead-link.jpg",
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if len(reports.items) != 0 {
		t.Fatalf("no report must be stored when the proof check fails, got %d", len(reports.items))
	}
	if len(proofs.checked) != 1 || proofs.checked[0] != "https://img.example/dead-link.jpg" {
		t.Fatalf("unexpected proof checks: %v", proofs.checked)
	}
}

func TestReportIntakeService_SubmitReport_RejectsMissingProof(t *testing.T) {
	t.Parallel()

	matches := newStubMatches(leagueMatchFixture())
	reports := &stubReports{}
	teams, principal := managerOf("team-a")
	service := newIntakeForTest(matches, reports, teams, nil)

	_, err := service.SubmitReport(context.Background(), principal, SubmitReportInput{
		Kind:      match.KindLeague,
		MatchID:   "m1",
		HomeGoals: 2,
		AwayGoals: 1,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(reports.items) != 0 {
		t.Fatalf("no report must be stored without a proof artifact, got %d", len(reports.items))
	}
}
