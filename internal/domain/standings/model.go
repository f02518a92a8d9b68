package standings

import (
	"fmt"

	"github.com/openleague/openleague/internal/domain/match"
)

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// Scope identifies one standings table: a whole league, or one group of a
// cup's group phase. League scopes use group 0.
type Scope struct {
	Kind          match.Kind
	CompetitionID string
	Group         int
}

func LeagueScope(leagueID string) Scope {
	return Scope{Kind: match.KindLeague, CompetitionID: leagueID}
}

func CupGroupScope(cupID string, group int) Scope {
	return Scope{Kind: match.KindCup, CompetitionID: cupID, Group: group}
}

func (s Scope) Validate() error {
	if s.CompetitionID == "" {
		return fmt.Errorf("standings scope competition id is required")
	}
	switch s.Kind {
	case match.KindLeague:
		if s.Group != 0 {
			return fmt.Errorf("league standings scope cannot carry a group")
		}
	case match.KindCup:
		if s.Group <= 0 {
			return fmt.Errorf("cup standings scope requires a group")
		}
	default:
		return fmt.Errorf("unknown standings scope kind %q", s.Kind)
	}

	return nil
}

// Row is one team's accumulated record inside a scope. Position is derived
// at read time from the table ordering, not stored.
type Row struct {
	Scope    Scope
	TeamID   string
	Position int

	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// Delta is the incremental change one confirmed result applies to a single
// team's row.
type Delta struct {
	TeamID string

	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// ResultDeltas computes the symmetric ledger entries for both sides of a
// confirmed result: exactly one played increment per team, win/draw/loss
// counters, goal aggregates and points.
func ResultDeltas(homeTeamID, awayTeamID string, homeGoals, awayGoals int) (home Delta, away Delta) {
	home = Delta{
		TeamID:         homeTeamID,
		Played:         1,
		GoalsFor:       homeGoals,
		GoalsAgainst:   awayGoals,
		GoalDifference: homeGoals - awayGoals,
	}
	away = Delta{
		TeamID:         awayTeamID,
		Played:         1,
		GoalsFor:       awayGoals,
		GoalsAgainst:   homeGoals,
		GoalDifference: awayGoals - homeGoals,
	}

	switch {
	case homeGoals > awayGoals:
		home.Won = 1
		home.Points = PointsWin
		away.Lost = 1
	case homeGoals < awayGoals:
		away.Won = 1
		away.Points = PointsWin
		home.Lost = 1
	default:
		home.Drawn = 1
		home.Points = PointsDraw
		away.Drawn = 1
		away.Points = PointsDraw
	}

	return home, away
}
