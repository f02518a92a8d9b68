package report

import (
	"fmt"
	"time"

	"github.com/openleague/openleague/internal/domain/match"
)

// Report is one team's claim about the final score of a match. Two
// matching reports confirm the match; two conflicting ones open a dispute.
type Report struct {
	ID        string
	MatchID   string
	MatchKind match.Kind

	// TeamID is empty on the synthetic report created by an admin
	// override.
	TeamID string

	HomeGoals int
	AwayGoals int

	ProofURL    string
	ReportedBy  string
	PlayerLines []PlayerLine
	CreatedAt   time.Time
}

// PlayerLine is a per-player stat claim attached to a report.
type PlayerLine struct {
	PlayerID    string
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
}

func (r Report) Validate() error {
	if r.MatchID == "" {
		return fmt.Errorf("report match id is required")
	}
	if r.HomeGoals < 0 || r.AwayGoals < 0 {
		return fmt.Errorf("report goals cannot be negative")
	}
	for _, line := range r.PlayerLines {
		if line.PlayerID == "" {
			return fmt.Errorf("report player line is missing a player id")
		}
		if line.Goals < 0 || line.Assists < 0 || line.YellowCards < 0 || line.RedCards < 0 {
			return fmt.Errorf("report player line for %s has negative counters", line.PlayerID)
		}
	}

	return nil
}

// SameScore reports whether two reports agree on the official result.
func (r Report) SameScore(other Report) bool {
	return r.HomeGoals == other.HomeGoals && r.AwayGoals == other.AwayGoals
}
