package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// monthLayout is the YYYY-MM form of a month.
const monthLayout = "2006-01"

// MonthlySummaryInput represents the input for a monthly summary.
type MonthlySummaryInput struct {
	UserID uuid.UUID
	Month  string // YYYY-MM, defaults to the current month
}

// MonthlySummaryUseCase totals a month of transactions.
type MonthlySummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewMonthlySummaryUseCase creates a new MonthlySummaryUseCase instance.
func NewMonthlySummaryUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *MonthlySummaryUseCase {
	return &MonthlySummaryUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute computes income, expenses, net and per-category totals.
func (uc *MonthlySummaryUseCase) Execute(ctx context.Context, input MonthlySummaryInput) (*entity.MonthlySummary, error) {
	month, err := ParseMonth(input.Month, uc.clock.Now().In(adapter.LocationFromContext(ctx)))
	if err != nil {
		return nil, err
	}
	return Summarize(ctx, uc.transactionRepo, input.UserID, month)
}

// Summarize loads the transactions of month and totals them.
func Summarize(ctx context.Context, repo adapter.TransactionRepository, userID uuid.UUID, month time.Time) (*entity.MonthlySummary, error) {
	start, end := entity.MonthBounds(month)
	transactions, err := repo.FindByDateRange(ctx, userID, start, end.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return entity.SummarizeTransactions(start, transactions), nil
}

// ParseMonth parses YYYY-MM as the first day of that month in UTC. An empty
// value selects the month of now.
func ParseMonth(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	month, err := time.Parse(monthLayout, value)
	if err != nil {
		return time.Time{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidMonth,
			"month must be in YYYY-MM format",
			domainerror.ErrInvalidMonth,
		)
	}
	return month, nil
}
