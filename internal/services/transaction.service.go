package services

import (
	"context"
	"roaddogs/internal/database"
	"roaddogs/internal/logger"

	"gorm.io/gorm"
)

type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute runs fn inside a database transaction. The transaction handle is
// carried on the context so repositories pick it up automatically.
func (s *TransactionService) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	return s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(database.ContextWithTransaction(ctx, tx))
	})
}
