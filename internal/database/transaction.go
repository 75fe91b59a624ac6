package database

import (
	"context"

	"gorm.io/gorm"
)

type transactionKey struct{}

// ContextWithTransaction carries an open transaction handle on the context so
// repositories join it instead of opening their own connections.
func ContextWithTransaction(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, transactionKey{}, tx)
}

func TransactionFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(transactionKey{}).(*gorm.DB)
	return tx, ok
}
