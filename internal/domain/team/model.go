package team

import "fmt"

// Team is a club registered in the league system. ManagerUserID links the
// account allowed to report its results.
type Team struct {
	ID            string
	Name          string
	LeagueID      string
	ManagerUserID string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
