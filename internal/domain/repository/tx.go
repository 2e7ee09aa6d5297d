package repository

import "context"

// TxManager runs fn inside a single atomic transaction. Repository calls
// made with the context passed to fn join that transaction; they commit
// together or not at all. WithinTx returns fn's error after rolling back,
// or the commit error.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
