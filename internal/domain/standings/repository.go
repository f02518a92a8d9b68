package standings

import "context"

// Repository is the standings ledger. ApplyDelta must be a single atomic
// upsert-increment so concurrent confirmations cannot lose updates.
type Repository interface {
	ApplyDelta(ctx context.Context, scope Scope, delta Delta) error
	ListByScope(ctx context.Context, scope Scope) ([]Row, error)
	// ResetScope clears a table before a full rebuild from confirmed
	// matches.
	ResetScope(ctx context.Context, scope Scope) error
}
