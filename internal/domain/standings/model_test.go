package standings

import (
	"testing"

	"github.com/openleague/openleague/internal/domain/match"
)

func TestResultDeltas_HomeWin(t *testing.T) {
	t.Parallel()

	home, away := ResultDeltas("team-a", "team-b", 3, 1)

	if home.TeamID != "team-a" || away.TeamID != "team-b" {
		t.Fatalf("unexpected team ids: home=%+v away=%+v", home, away)
	}
	if home.Played != 1 || away.Played != 1 {
		t.Fatalf("each side must gain exactly one played match: home=%+v away=%+v", home, away)
	}
	if home.Won != 1 || home.Points != 3 || home.Lost != 0 || home.Drawn != 0 {
		t.Fatalf("unexpected home counters: %+v", home)
	}
	if away.Lost != 1 || away.Points != 0 || away.Won != 0 || away.Drawn != 0 {
		t.Fatalf("unexpected away counters: %+v", away)
	}
	if home.GoalsFor != 3 || home.GoalsAgainst != 1 || home.GoalDifference != 2 {
		t.Fatalf("unexpected home goal aggregates: %+v", home)
	}
	if away.GoalsFor != 1 || away.GoalsAgainst != 3 || away.GoalDifference != -2 {
		t.Fatalf("unexpected away goal aggregates: %+v", away)
	}
}

func TestResultDeltas_AwayWin(t *testing.T) {
	t.Parallel()

	home, away := ResultDeltas("team-a", "team-b", 0, 2)

	if away.Won != 1 || away.Points != 3 {
		t.Fatalf("away side should take the win: %+v", away)
	}
	if home.Lost != 1 || home.Points != 0 {
		t.Fatalf("home side should take the loss: %+v", home)
	}
}

func TestResultDeltas_Draw(t *testing.T) {
	t.Parallel()

	home, away := ResultDeltas("team-a", "team-b", 2, 2)

	if home.Drawn != 1 || away.Drawn != 1 {
		t.Fatalf("both sides should record a draw: home=%+v away=%+v", home, away)
	}
	if home.Points != 1 || away.Points != 1 {
		t.Fatalf("draws award one point each: home=%+v away=%+v", home, away)
	}
	if home.GoalDifference != 0 || away.GoalDifference != 0 {
		t.Fatalf("drawn results leave goal difference untouched: home=%+v away=%+v", home, away)
	}
}

func TestResultDeltas_SumsAreSymmetric(t *testing.T) {
	t.Parallel()

	cases := [][2]int{{0, 0}, {1, 0}, {0, 1}, {4, 4}, {5, 2}}
	for _, score := range cases {
		home, away := ResultDeltas("a", "b", score[0], score[1])
		if home.GoalDifference+away.GoalDifference != 0 {
			t.Fatalf("goal differences must cancel out for %v", score)
		}
		if home.GoalsFor != away.GoalsAgainst || away.GoalsFor != home.GoalsAgainst {
			t.Fatalf("goal aggregates must mirror for %v", score)
		}
	}
}

func TestScopeValidate(t *testing.T) {
	t.Parallel()

	if err := LeagueScope("liga-1").Validate(); err != nil {
		t.Fatalf("league scope should be valid: %v", err)
	}
	if err := CupGroupScope("copa-1", 2).Validate(); err != nil {
		t.Fatalf("cup group scope should be valid: %v", err)
	}
	if err := (Scope{Kind: match.KindCup, CompetitionID: "copa-1"}).Validate(); err == nil {
		t.Fatal("cup scope without a group must be rejected")
	}
	if err := (Scope{Kind: match.KindLeague, CompetitionID: "liga-1", Group: 1}).Validate(); err == nil {
		t.Fatal("league scope with a group must be rejected")
	}
	if err := (Scope{Kind: match.KindLeague}).Validate(); err == nil {
		t.Fatal("scope without a competition must be rejected")
	}
}
