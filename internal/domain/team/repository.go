package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByManager(ctx context.Context, userID string) (Team, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	ListByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
	CountAll(ctx context.Context) (int, error)
}
