package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

// UpdateTransactionInput is a partial edit. Nil fields keep their value.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	Type          *entity.TransactionType
	Category      *string
	Notes         *string
}

// patch overlays the set fields of the input onto d.
func (in UpdateTransactionInput) patch(d entity.TransactionDraft) entity.TransactionDraft {
	if in.Date != nil {
		d.Date = *in.Date
	}
	if in.Description != nil {
		d.Description = *in.Description
	}
	if in.Amount != nil {
		d.Amount = *in.Amount
	}
	if in.Type != nil {
		d.Type = *in.Type
	}
	if in.Category != nil {
		d.Category = *in.Category
	}
	if in.Notes != nil {
		d.Notes = *in.Notes
	}
	return d
}

type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase edits a transaction the caller owns. Changing only
// the type flips the sign of the stored amount.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

func NewUpdateTransactionUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{transactionRepo: transactionRepo, clock: clock}
}

func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	txn, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID, "update")
	if err != nil {
		return nil, err
	}

	draft, err := normalizeDraft(input.patch(txn.Draft()))
	if err != nil {
		return nil, err
	}
	txn.Apply(draft, uc.clock.Now())

	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return &UpdateTransactionOutput{Transaction: txn}, nil
}
