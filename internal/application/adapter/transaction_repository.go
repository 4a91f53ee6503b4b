package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifescope/backend/internal/domain/entity"
)

// TransactionFilter narrows a listing. Dates are inclusive calendar days and
// empty strings match everything.
type TransactionFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
	Category  string // exact label, any case
	Search    string // substring of the description, any case
}

// TransactionPagination selects a 1-based page.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult is one page plus the size of the whole selection.
type TransactionListResult struct {
	Transactions []*entity.Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals sums a selection. ExpenseTotal is negative, like the
// stored amounts.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// TransactionRepository stores money movements. Deletes are soft, and
// FindByID returns domainerror.ErrTransactionNotFound for a missing row.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	// BulkCreate stores a statement import; either every row lands or none.
	BulkCreate(ctx context.Context, transactions []*entity.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// FindByFilter pages through the filtered transactions, newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)
	// FindByDateRange returns every transaction dated in [from, to], oldest first.
	FindByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Transaction, error)
	GetTotals(ctx context.Context, filter TransactionFilter) (*TransactionTotals, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}
