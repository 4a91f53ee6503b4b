package transaction

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// ImportStatementInput represents the input for importing a statement.
type ImportStatementInput struct {
	UserID            uuid.UUID
	Statement         io.Reader
	Category          string // Optional label applied to every imported row
	IncludeDuplicates bool
}

// ImportStatementOutput represents the output of a statement import.
type ImportStatementOutput struct {
	ImportedCount     int
	SkippedDuplicates int
	ImportedAt        time.Time
	Transactions      []*entity.Transaction
}

// ImportStatementUseCase stores the rows of a statement as transactions.
type ImportStatementUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewImportStatementUseCase creates a new ImportStatementUseCase instance.
func NewImportStatementUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *ImportStatementUseCase {
	return &ImportStatementUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute parses the statement and writes every non-duplicate row in one
// database transaction. A statement with unparseable lines is rejected whole.
func (uc *ImportStatementUseCase) Execute(ctx context.Context, input ImportStatementInput) (*ImportStatementOutput, error) {
	category := strings.TrimSpace(input.Category)
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			fmt.Sprintf("category must not exceed %d characters", MaxCategoryLength),
			domainerror.ErrCategoryLabelTooLong,
		)
	}

	rows, rowErrors, err := ParseStatement(input.Statement)
	if err != nil {
		return nil, err
	}
	if len(rowErrors) > 0 {
		first := rowErrors[0]
		return nil, invalidStatementError(fmt.Sprintf("line %d: %s (%d invalid lines)", first.Line, first.Message, len(rowErrors)))
	}

	skipped := 0
	if !input.IncludeDuplicates {
		skipped, err = markDuplicates(ctx, uc.transactionRepo, input.UserID, rows)
		if err != nil {
			return nil, err
		}
	}

	importedAt := uc.clock.Now().UTC()
	transactions := make([]*entity.Transaction, 0, len(rows)-skipped)
	for _, row := range rows {
		if row.Duplicate {
			continue
		}
		txn := entity.NewTransaction(input.UserID, entity.TransactionDraft{
			Date:        row.Date,
			Description: row.Description,
			Amount:      row.Amount,
			Type:        row.Type,
			Category:    category,
		}, importedAt)
		txn.ImportedAt = &importedAt
		transactions = append(transactions, txn)
	}

	if err := uc.transactionRepo.BulkCreate(ctx, transactions); err != nil {
		return nil, fmt.Errorf("failed to import transactions: %w", err)
	}

	slog.Info("statement imported",
		"user_id", input.UserID,
		"imported", len(transactions),
		"skipped_duplicates", skipped,
	)

	return &ImportStatementOutput{
		ImportedCount:     len(transactions),
		SkippedDuplicates: skipped,
		ImportedAt:        importedAt,
		Transactions:      transactions,
	}, nil
}
