package schedule

import (
	"fmt"
	"math/rand"

	"github.com/openleague/openleague/internal/domain/match"
)

// Slot is one node of the knockout bracket arena. Winners advance along
// NextSlotID; a nil link marks the final.
type Slot struct {
	ID         int
	Phase      match.Phase
	Legs       int
	NextSlotID *int
}

// KnockoutSlots returns the fixed eight-qualifier bracket: four two-legged
// quarterfinal slots, two two-legged semifinal slots and a single-leg
// final. Odd slot ids feed the home side of their next slot, even ids the
// away side.
func KnockoutSlots() []Slot {
	next := func(id int) *int { return &id }

	return []Slot{
		{ID: 1, Phase: match.PhaseQuarterfinals, Legs: 2, NextSlotID: next(5)},
		{ID: 2, Phase: match.PhaseQuarterfinals, Legs: 2, NextSlotID: next(5)},
		{ID: 3, Phase: match.PhaseQuarterfinals, Legs: 2, NextSlotID: next(6)},
		{ID: 4, Phase: match.PhaseQuarterfinals, Legs: 2, NextSlotID: next(6)},
		{ID: 5, Phase: match.PhaseSemifinals, Legs: 2, NextSlotID: next(7)},
		{ID: 6, Phase: match.PhaseSemifinals, Legs: 2, NextSlotID: next(7)},
		{ID: 7, Phase: match.PhaseFinal, Legs: 1},
	}
}

// CupMatch is one planned cup fixture. Group-phase entries carry a group
// number; knockout entries carry their slot pair and start with empty team
// ids that fill in as earlier slots resolve.
type CupMatch struct {
	Phase      match.Phase
	Group      *int
	Matchday   int
	Leg        int
	SlotID     *int
	NextSlotID *int
	HomeTeamID string
	AwayTeamID string
}

// CupPlan is a full cup calendar: the drawn groups, their double
// round-robin fixtures, and the knockout skeleton.
type CupPlan struct {
	Groups  [][]string
	Matches []CupMatch
}

// CupDraw shuffles the field into two groups, schedules a double round
// robin inside each, and appends the knockout bracket skeleton after the
// group rounds. The field must be even and hold at least four teams.
func CupDraw(teamIDs []string, rnd *rand.Rand) (CupPlan, error) {
	if len(teamIDs) < 4 {
		return CupPlan{}, fmt.Errorf("cup draw needs at least 4 teams, got %d", len(teamIDs))
	}
	if len(teamIDs)%2 != 0 {
		return CupPlan{}, fmt.Errorf("cup draw needs an even team count, got %d", len(teamIDs))
	}
	if rnd == nil {
		return CupPlan{}, fmt.Errorf("cup draw needs a random source")
	}

	drawn := append([]string(nil), teamIDs...)
	rnd.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})

	half := len(drawn) / 2
	groups := [][]string{drawn[:half], drawn[half:]}

	plan := CupPlan{Groups: groups}
	for groupIdx, groupTeams := range groups {
		groupNo := groupIdx + 1
		pairings, err := RoundRobin(groupTeams)
		if err != nil {
			return CupPlan{}, fmt.Errorf("schedule group %d: %w", groupNo, err)
		}
		for _, p := range pairings {
			g := groupNo
			plan.Matches = append(plan.Matches, CupMatch{
				Phase:      match.PhaseGroups,
				Group:      &g,
				Matchday:   p.Matchday,
				HomeTeamID: p.HomeTeamID,
				AwayTeamID: p.AwayTeamID,
			})
		}
	}

	groupRounds := Rounds(half)
	for _, slot := range KnockoutSlots() {
		baseDay := groupRounds + knockoutDayOffset(slot.Phase)
		for leg := 1; leg <= slot.Legs; leg++ {
			id := slot.ID
			plan.Matches = append(plan.Matches, CupMatch{
				Phase:      slot.Phase,
				Matchday:   baseDay + leg - 1,
				Leg:        leg,
				SlotID:     &id,
				NextSlotID: slot.NextSlotID,
			})
		}
	}

	return plan, nil
}

func knockoutDayOffset(phase match.Phase) int {
	switch phase {
	case match.PhaseQuarterfinals:
		return 1
	case match.PhaseSemifinals:
		return 3
	case match.PhaseFinal:
		return 5
	default:
		return 1
	}
}
