package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

type CreateTransactionInput struct {
	UserID uuid.UUID
	entity.TransactionDraft
}

type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase records a manually entered transaction.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

func NewCreateTransactionUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{transactionRepo: transactionRepo, clock: clock}
}

func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	draft, err := normalizeDraft(input.TransactionDraft)
	if err != nil {
		return nil, err
	}

	txn := entity.NewTransaction(input.UserID, draft, uc.clock.Now())
	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &CreateTransactionOutput{Transaction: txn}, nil
}
