package cup

import "context"

// Repository describes cup persistence needs from use cases.
type Repository interface {
	Insert(ctx context.Context, item Cup) error
	GetByID(ctx context.Context, cupID string) (Cup, bool, error)
	List(ctx context.Context) ([]Cup, error)
	SetWinner(ctx context.Context, cupID, teamID string) error
}
