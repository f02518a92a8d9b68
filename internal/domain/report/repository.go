package report

import (
	"context"

	"github.com/openleague/openleague/internal/domain/match"
)

// Repository persists team score reports and their player stat lines.
type Repository interface {
	Insert(ctx context.Context, item Report) error
	ListByMatch(ctx context.Context, kind match.Kind, matchID string) ([]Report, error)
	// ListByMatchIDs spans both kinds because the review queue mixes
	// league and cup matches.
	ListByMatchIDs(ctx context.Context, matchIDs []string) (map[string][]Report, error)
	ExistsForTeam(ctx context.Context, kind match.Kind, matchID, teamID string) (bool, error)
}
