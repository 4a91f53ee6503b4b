package transaction

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifescope/backend/internal/application/adapter"
)

// PreviewImportInput represents the input for previewing a statement import.
type PreviewImportInput struct {
	UserID    uuid.UUID
	Statement io.Reader
}

// PreviewImportOutput represents the output of a statement preview.
// Totals exclude duplicates.
type PreviewImportOutput struct {
	Rows           []StatementRow
	Errors         []RowError
	DuplicateCount int
	IncomeTotal    decimal.Decimal
	ExpenseTotal   decimal.Decimal
}

// PreviewImportUseCase parses a statement and flags duplicates without writing.
type PreviewImportUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewPreviewImportUseCase creates a new PreviewImportUseCase instance.
func NewPreviewImportUseCase(transactionRepo adapter.TransactionRepository) *PreviewImportUseCase {
	return &PreviewImportUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the statement preview.
func (uc *PreviewImportUseCase) Execute(ctx context.Context, input PreviewImportInput) (*PreviewImportOutput, error) {
	rows, rowErrors, err := ParseStatement(input.Statement)
	if err != nil {
		return nil, err
	}

	duplicates, err := markDuplicates(ctx, uc.transactionRepo, input.UserID, rows)
	if err != nil {
		return nil, err
	}

	output := &PreviewImportOutput{
		Rows:           rows,
		Errors:         rowErrors,
		DuplicateCount: duplicates,
		IncomeTotal:    decimal.Zero,
		ExpenseTotal:   decimal.Zero,
	}
	for _, row := range rows {
		if row.Duplicate {
			continue
		}
		if row.Amount.IsNegative() {
			output.ExpenseTotal = output.ExpenseTotal.Add(row.Amount.Abs())
		} else {
			output.IncomeTotal = output.IncomeTotal.Add(row.Amount)
		}
	}
	return output, nil
}
