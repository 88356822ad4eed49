package rating_out

import "context"

// TransactionManager runs a closure under one ACID transaction. The context
// handed to fn carries the transaction; every repository call made with it
// joins the same transaction, and any error rolls the whole thing back.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
