package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListTransactionsInput filters and pages a listing. Zero values select
// everything on the first page.
type ListTransactionsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
	Category  string
	Search    string
	Page      int
	Limit     int
}

func (in ListTransactionsInput) filter() adapter.TransactionFilter {
	return adapter.TransactionFilter{
		UserID:    in.UserID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Type:      in.Type,
		Category:  in.Category,
		Search:    in.Search,
	}
}

func (in ListTransactionsInput) pagination() adapter.TransactionPagination {
	p := adapter.TransactionPagination{Page: max(in.Page, 1), Limit: in.Limit}
	switch {
	case p.Limit < 1:
		p.Limit = defaultPageSize
	case p.Limit > maxPageSize:
		p.Limit = maxPageSize
	}
	return p
}

// ListTransactionsOutput is one page plus totals over the whole selection,
// not just the page.
type ListTransactionsOutput struct {
	*adapter.TransactionListResult
	Totals adapter.TransactionTotals
}

type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"end date must not be before start date",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	filter := input.filter()
	page, err := uc.transactionRepo.FindByFilter(ctx, filter, input.pagination())
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	out := &ListTransactionsOutput{
		TransactionListResult: page,
		Totals:                adapter.TransactionTotals{IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero, NetTotal: decimal.Zero},
	}
	// The page is still useful without totals.
	if totals, err := uc.transactionRepo.GetTotals(ctx, filter); err != nil {
		slog.Warn("failed to compute transaction totals", "user_id", input.UserID, "error", err)
	} else {
		out.Totals = *totals
	}
	return out, nil
}
