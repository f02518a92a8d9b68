package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/team"
	"github.com/openleague/openleague/internal/platform/logging"
)

type stubDashboardCounters struct {
	byState  map[match.ReportState]int
	approved int
	leagues  int
	cups     int
	err      error
}

func (s *stubDashboardCounters) CountMatchesByReportState(_ context.Context, state match.ReportState) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.byState[state], nil
}

func (s *stubDashboardCounters) CountApprovedMatches(_ context.Context) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.approved, nil
}

func (s *stubDashboardCounters) CountLeagues(_ context.Context) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.leagues, nil
}

func (s *stubDashboardCounters) CountCups(_ context.Context) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.cups, nil
}

func TestDashboardService_Snapshot(t *testing.T) {
	t.Parallel()

	counters := &stubDashboardCounters{
		byState: map[match.ReportState]int{
			match.ReportStateDisputed: 2,
			match.ReportStatePartial:  5,
			match.ReportStateAwaiting: 11,
		},
		approved: 40,
		leagues:  3,
		cups:     1,
	}
	teams := &stubTeams{byID: map[string]team.Team{
		"team-a": {ID: "team-a"},
		"team-b": {ID: "team-b"},
	}}
	service := NewDashboardService(counters, teams, logging.NewNop())

	snapshot, err := service.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}

	want := DashboardSnapshot{
		Disputed:          2,
		PartiallyReported: 5,
		AwaitingReports:   11,
		ApprovedMatches:   40,
		Teams:             2,
		Leagues:           3,
		Cups:              1,
	}
	if snapshot != want {
		t.Fatalf("snapshot=%+v want=%+v", snapshot, want)
	}
}

func TestDashboardService_Snapshot_PropagatesErrors(t *testing.T) {
	t.Parallel()

	counters := &stubDashboardCounters{err: errors.New("connection reset")}
	teams := &stubTeams{byID: map[string]team.Team{}}
	service := NewDashboardService(counters, teams, logging.NewNop())

	if _, err := service.Snapshot(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
