package bracket

import (
	"fmt"
	"sort"

	"github.com/openleague/openleague/internal/domain/match"
)

// Basis names the rule that decided a knockout tie.
type Basis string

const (
	BasisSingleLeg     Basis = "single_leg"
	BasisAggregate     Basis = "aggregate"
	BasisAwayGoals     Basis = "away_goals"
	BasisSecondLegHome Basis = "second_leg_home"
)

// Outcome is the result of resolving a bracket slot. Decided is false while
// legs are still unplayed, or when a single-leg final ends level (penalty
// shootouts are not modeled).
type Outcome struct {
	Decided      bool
	WinnerTeamID string
	Basis        Basis
}

// SlotSide maps a slot id to the side its winner occupies in the next
// slot's matches: odd slot ids feed the home side, even ones the away side.
func SlotSide(slotID int) match.Side {
	if slotID%2 == 1 {
		return match.SideHome
	}
	return match.SideAway
}

// Resolve decides the winner of a knockout slot from its legs.
//
// A single leg resolves on its own score. A two-legged tie resolves only
// once both legs are approved: aggregate goals first, away goals as the
// tiebreak, and the home team of the second leg as the final fallback.
func Resolve(legs []match.Match) (Outcome, error) {
	if len(legs) == 0 {
		return Outcome{}, fmt.Errorf("bracket slot has no legs")
	}
	if len(legs) > 2 {
		return Outcome{}, fmt.Errorf("bracket slot has %d legs, expected 1 or 2", len(legs))
	}

	for _, leg := range legs {
		if leg.State != match.StateApproved || leg.HomeGoals == nil || leg.AwayGoals == nil {
			return Outcome{}, nil
		}
	}

	if len(legs) == 1 {
		return resolveSingleLeg(legs[0]), nil
	}

	return resolveTwoLegs(legs)
}

func resolveSingleLeg(leg match.Match) Outcome {
	switch {
	case *leg.HomeGoals > *leg.AwayGoals:
		return Outcome{Decided: true, WinnerTeamID: leg.HomeTeamID, Basis: BasisSingleLeg}
	case *leg.HomeGoals < *leg.AwayGoals:
		return Outcome{Decided: true, WinnerTeamID: leg.AwayTeamID, Basis: BasisSingleLeg}
	default:
		// Drawn final: left undecided rather than guessing a winner.
		return Outcome{}
	}
}

func resolveTwoLegs(legs []match.Match) (Outcome, error) {
	ordered := make([]match.Match, len(legs))
	copy(ordered, legs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Leg < ordered[j].Leg })

	first, second := ordered[0], ordered[1]
	if first.HomeTeamID != second.AwayTeamID || first.AwayTeamID != second.HomeTeamID {
		return Outcome{}, fmt.Errorf("legs of slot do not mirror the same team pair")
	}

	// Totals keyed to the first leg's home team ("a") and away team ("b").
	aggA := *first.HomeGoals + *second.AwayGoals
	aggB := *first.AwayGoals + *second.HomeGoals
	if aggA != aggB {
		winner := first.HomeTeamID
		if aggB > aggA {
			winner = first.AwayTeamID
		}
		return Outcome{Decided: true, WinnerTeamID: winner, Basis: BasisAggregate}, nil
	}

	// Away goals: each team's goals in the leg it played as visitor.
	awayA := *second.AwayGoals
	awayB := *first.AwayGoals
	if awayA != awayB {
		winner := first.HomeTeamID
		if awayB > awayA {
			winner = first.AwayTeamID
		}
		return Outcome{Decided: true, WinnerTeamID: winner, Basis: BasisAwayGoals}, nil
	}

	return Outcome{Decided: true, WinnerTeamID: second.HomeTeamID, Basis: BasisSecondLegHome}, nil
}
