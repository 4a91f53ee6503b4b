package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
)

type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionUseCase soft-deletes a transaction the caller owns.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{transactionRepo: transactionRepo}
}

func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	txn, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID, "delete")
	if err != nil {
		return err
	}
	if err := uc.transactionRepo.Delete(ctx, txn.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	slog.Debug("transaction deleted", "transaction_id", txn.ID, "imported", txn.ImportedAt != nil)
	return nil
}
