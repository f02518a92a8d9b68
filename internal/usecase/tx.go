package usecase

import "context"

// TxManager runs a function inside one database transaction. The
// transaction travels in the context, so every repository call made within
// fn joins it. A returned error rolls the whole unit back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
