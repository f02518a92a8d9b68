package schedule

import "fmt"

// Pairing is one scheduled league fixture: who hosts whom on which matchday.
type Pairing struct {
	HomeTeamID string
	AwayTeamID string
	Matchday   int
}

// RoundRobin builds a double round-robin calendar with the circle method.
// Odd team counts get a rotating bye. Every pair meets exactly twice with
// reversed hosting, so the calendar always holds n*(n-1) pairings.
func RoundRobin(teamIDs []string) ([]Pairing, error) {
	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("round robin needs at least 2 teams, got %d", len(teamIDs))
	}
	seen := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if id == "" {
			return nil, fmt.Errorf("round robin team id cannot be empty")
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate team id %q", id)
		}
		seen[id] = struct{}{}
	}

	arena := append([]string(nil), teamIDs...)
	if len(arena)%2 == 1 {
		arena = append(arena, "")
	}

	n := len(arena)
	rounds := n - 1
	firstHalf := make([]Pairing, 0, rounds*n/2)

	for round := 0; round < rounds; round++ {
		for i := 0; i < n/2; i++ {
			home := arena[i]
			away := arena[n-1-i]
			if home == "" || away == "" {
				continue
			}
			// Alternate hosting for the anchored team so home games
			// spread evenly across the first half.
			if i == 0 && round%2 == 1 {
				home, away = away, home
			}
			firstHalf = append(firstHalf, Pairing{
				HomeTeamID: home,
				AwayTeamID: away,
				Matchday:   round + 1,
			})
		}
		rotate(arena)
	}

	out := make([]Pairing, 0, len(firstHalf)*2)
	out = append(out, firstHalf...)
	for _, p := range firstHalf {
		out = append(out, Pairing{
			HomeTeamID: p.AwayTeamID,
			AwayTeamID: p.HomeTeamID,
			Matchday:   p.Matchday + rounds,
		})
	}

	return out, nil
}

// rotate keeps the first element anchored and moves every other element one
// position clockwise.
func rotate(arena []string) {
	last := arena[len(arena)-1]
	copy(arena[2:], arena[1:len(arena)-1])
	arena[1] = last
}

// Rounds returns how many matchdays a double round-robin for the given team
// count spans.
func Rounds(teamCount int) int {
	if teamCount < 2 {
		return 0
	}
	if teamCount%2 == 1 {
		teamCount++
	}
	return (teamCount - 1) * 2
}
