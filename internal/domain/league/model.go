package league

import "fmt"

// Status tracks where a league sits in its season lifecycle.
type Status string

const (
	StatusOpen     Status = "open"
	StatusArchived Status = "archived"
)

// League is an amateur competition running one season at a time.
type League struct {
	ID     string
	Name   string
	Season string
	Status Status
	// FixtureGenerated flips once the round-robin calendar exists; a
	// league never gets a second calendar for the same season.
	FixtureGenerated bool
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season == "" {
		return fmt.Errorf("league season is required")
	}

	return nil
}
