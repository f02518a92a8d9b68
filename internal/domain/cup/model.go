package cup

import "fmt"

// Cup is a knockout tournament with a preliminary group phase.
type Cup struct {
	ID     string
	Name   string
	Season string
	// WinnerTeamID is set when the final's slot resolves.
	WinnerTeamID string
}

func (c Cup) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("cup id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("cup name is required")
	}
	if c.Season == "" {
		return fmt.Errorf("cup season is required")
	}

	return nil
}
