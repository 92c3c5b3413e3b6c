// Package tx carries a caller-owned SQL transaction through context so the
// postgres stores can join a larger unit of work, such as recording an issued
// document together with a register correction.
package tx

import (
	"context"
	"database/sql"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx returns a context whose store calls run inside the given transaction.
// The caller keeps ownership: commit and rollback stay with whoever began it.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts the context-carried transaction if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}
