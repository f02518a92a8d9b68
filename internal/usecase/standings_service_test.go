package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openleague/openleague/internal/domain/cup"
	"github.com/openleague/openleague/internal/domain/league"
	"github.com/openleague/openleague/internal/domain/standings"
	"github.com/openleague/openleague/internal/platform/cache"
	"github.com/openleague/openleague/internal/platform/logging"
)

func TestStandingsService_LeagueTableAssignsPositions(t *testing.T) {
	t.Parallel()

	leagues := &stubLeagues{byID: map[string]league.League{
		"league-1": {ID: "league-1", Name: "Sunday League", Season: "2026", Status: league.StatusOpen},
	}}
	ledger := &stubStandings{rows: map[string][]standings.Row{
		scopeKey(standings.LeagueScope("league-1")): {
			{TeamID: "team-a", Points: 9},
			{TeamID: "team-b", Points: 6},
			{TeamID: "team-c", Points: 1},
		},
	}}
	service := NewStandingsService(leagues, newStubCups(), ledger, nil, logging.NewNop())

	rows, err := service.LeagueTable(context.Background(), "league-1")
	if err != nil {
		t.Fatalf("LeagueTable error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Position != i+1 {
			t.Fatalf("row %d has position %d", i, row.Position)
		}
	}
}

func TestStandingsService_LeagueTable_UnknownLeague(t *testing.T) {
	t.Parallel()

	service := NewStandingsService(&stubLeagues{byID: map[string]league.League{}}, newStubCups(), &stubStandings{}, nil, logging.NewNop())

	_, err := service.LeagueTable(context.Background(), "league-9")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStandingsService_LeagueTable_ServesFromCache(t *testing.T) {
	t.Parallel()

	leagues := &stubLeagues{byID: map[string]league.League{
		"league-1": {ID: "league-1", Name: "Sunday League", Season: "2026", Status: league.StatusOpen},
	}}
	ledger := &stubStandings{rows: map[string][]standings.Row{
		scopeKey(standings.LeagueScope("league-1")): {
			{TeamID: "team-a", Points: 3},
		},
	}}
	service := NewStandingsService(leagues, newStubCups(), ledger, cache.NewStore(time.Minute), logging.NewNop())

	first, err := service.LeagueTable(context.Background(), "league-1")
	if err != nil {
		t.Fatalf("LeagueTable error: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 row, got %d", len(first))
	}

	// Ledger changes are invisible until the cache entry expires.
	ledger.rows[scopeKey(standings.LeagueScope("league-1"))] = nil

	second, err := service.LeagueTable(context.Background(), "league-1")
	if err != nil {
		t.Fatalf("LeagueTable error: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached row, got %d", len(second))
	}
}

func TestStandingsService_CupGroupTable(t *testing.T) {
	t.Parallel()

	cups := newStubCups(cup.Cup{ID: "cup-1", Name: "Open Cup", Season: "2026"})
	ledger := &stubStandings{rows: map[string][]standings.Row{
		scopeKey(standings.CupGroupScope("cup-1", 2)): {
			{TeamID: "team-a", Points: 4},
			{TeamID: "team-b", Points: 2},
		},
	}}
	service := NewStandingsService(&stubLeagues{byID: map[string]league.League{}}, cups, ledger, nil, logging.NewNop())

	rows, err := service.CupGroupTable(context.Background(), "cup-1", 2)
	if err != nil {
		t.Fatalf("CupGroupTable error: %v", err)
	}
	if len(rows) != 2 || rows[0].Position != 1 || rows[1].Position != 2 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestStandingsService_CupGroupTable_RejectsBadGroup(t *testing.T) {
	t.Parallel()

	service := NewStandingsService(&stubLeagues{byID: map[string]league.League{}}, newStubCups(), &stubStandings{}, nil, logging.NewNop())

	_, err := service.CupGroupTable(context.Background(), "cup-1", 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
