package usecase

import (
	"context"
	"testing"

	"github.com/openleague/openleague/internal/domain/cup"
	"github.com/openleague/openleague/internal/domain/league"
	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/standings"
	"github.com/openleague/openleague/internal/platform/logging"
)

func TestRebuildService_Rebuild(t *testing.T) {
	t.Parallel()

	leagues := &stubLeagues{byID: map[string]league.League{
		"league-1": {ID: "league-1", Name: "Sunday League", Season: "2026", Status: league.StatusOpen},
	}}
	cups := newStubCups(cup.Cup{ID: "cup-1", Name: "Open Cup", Season: "2026"})

	queries := &stubMatchQueries{approved: map[string][]match.Match{
		compKey(match.KindLeague, "league-1"): {
			{
				ID: "m1", Kind: match.KindLeague, CompetitionID: "league-1",
				HomeTeamID: "team-a", AwayTeamID: "team-b",
				HomeGoals: intPtr(2), AwayGoals: intPtr(0),
				State: match.StateApproved, ReportState: match.ReportStateAutoConfirmed,
			},
			{
				ID: "m2", Kind: match.KindLeague, CompetitionID: "league-1",
				HomeTeamID: "team-b", AwayTeamID: "team-a",
				HomeGoals: intPtr(1), AwayGoals: intPtr(1),
				State: match.StateApproved, ReportState: match.ReportStateAdminConfirmed,
			},
		},
		compKey(match.KindCup, "cup-1"): {
			{
				ID: "cm1", Kind: match.KindCup, CompetitionID: "cup-1",
				Phase: match.PhaseGroups, Group: intPtr(1),
				HomeTeamID: "team-c", AwayTeamID: "team-d",
				HomeGoals: intPtr(3), AwayGoals: intPtr(1),
				State: match.StateApproved, ReportState: match.ReportStateAutoConfirmed,
			},
			// Knockout results never land in the ledger.
			{
				ID: "qf1", Kind: match.KindCup, CompetitionID: "cup-1",
				Phase: match.PhaseQuarterfinals, Leg: 1, SlotID: intPtr(1), NextSlotID: intPtr(5),
				HomeTeamID: "team-c", AwayTeamID: "team-d",
				HomeGoals: intPtr(1), AwayGoals: intPtr(0),
				State: match.StateApproved, ReportState: match.ReportStateAutoConfirmed,
			},
		},
	}}
	ledger := &stubStandings{}

	service := NewRebuildService(stubTx{}, leagues, cups, queries, ledger, logging.NewNop())

	result, err := service.Rebuild(context.Background(), RebuildInput{MaxWorkers: 2})
	if err != nil {
		t.Fatalf("Rebuild error: %v", err)
	}
	if result.CompetitionCount != 2 || result.SuccessCount != 2 || result.FailedCount != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	// One league scope plus both cup group scopes get wiped.
	if len(ledger.resets) != 3 {
		t.Fatalf("expected 3 scope resets, got %d", len(ledger.resets))
	}
	// Three non-elimination matches, two deltas each.
	if len(ledger.applied) != 6 {
		t.Fatalf("expected 6 deltas, got %d", len(ledger.applied))
	}

	cupScoped := 0
	for _, item := range ledger.applied {
		if item.scope == standings.CupGroupScope("cup-1", 1) {
			cupScoped++
		}
	}
	if cupScoped != 2 {
		t.Fatalf("expected 2 cup group deltas, got %d", cupScoped)
	}

	for _, task := range result.Tasks {
		if task.Status != rebuildStatusSuccess {
			t.Fatalf("unexpected task: %+v", task)
		}
	}
}

func TestRebuildService_Rebuild_NoCompetitions(t *testing.T) {
	t.Parallel()

	service := NewRebuildService(
		stubTx{},
		&stubLeagues{byID: map[string]league.League{}},
		newStubCups(),
		&stubMatchQueries{},
		&stubStandings{},
		logging.NewNop(),
	)

	result, err := service.Rebuild(context.Background(), RebuildInput{})
	if err != nil {
		t.Fatalf("Rebuild error: %v", err)
	}
	if result.CompetitionCount != 0 || len(result.Tasks) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
