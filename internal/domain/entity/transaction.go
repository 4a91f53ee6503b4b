package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether t is expense or income.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// UncategorizedLabel is the category used in summaries for transactions without one.
const UncategorizedLabel = "Uncategorized"

// Transaction is a money movement. Amount is signed: negative for expenses,
// positive for income.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Notes       string
	ImportedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionDraft holds the fields a user supplies for a transaction.
// Amount may carry either sign; Type decides the stored one.
type TransactionDraft struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Notes       string
}

// Draft returns the editable fields of t.
func (t *Transaction) Draft() TransactionDraft {
	return TransactionDraft{
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Category:    t.Category,
		Notes:       t.Notes,
	}
}

// Apply copies d onto t, signing the amount and stamping UpdatedAt.
func (t *Transaction) Apply(d TransactionDraft, now time.Time) {
	t.Date = d.Date
	t.Description = d.Description
	t.Amount = SignedAmount(d.Amount, d.Type)
	t.Type = d.Type
	t.Category = d.Category
	t.Notes = d.Notes
	t.UpdatedAt = now.UTC()
}

// NewTransaction creates a transaction owned by userID from d.
func NewTransaction(userID uuid.UUID, d TransactionDraft, now time.Time) *Transaction {
	t := &Transaction{ID: uuid.New(), UserID: userID, CreatedAt: now.UTC()}
	t.Apply(d, now)
	return t
}

// SignedAmount returns amount with the sign implied by transactionType.
func SignedAmount(amount decimal.Decimal, transactionType TransactionType) decimal.Decimal {
	if transactionType == TransactionTypeExpense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// DedupKey identifies a transaction for statement duplicate detection:
// same day, same signed amount, same description ignoring case and spacing.
func (t *Transaction) DedupKey() string {
	return DedupKey(t.Date, t.Amount, t.Description)
}

// DedupKey builds the duplicate detection key from its parts.
func DedupKey(date time.Time, amount decimal.Decimal, description string) string {
	return date.Format("2006-01-02") + "|" + amount.StringFixed(2) + "|" + strings.Join(strings.Fields(strings.ToLower(description)), " ")
}

// CategoryTotal holds income and expenses of one category label.
type CategoryTotal struct {
	Category string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Count    int
}

// MonthlySummary aggregates a month of transactions. Expenses is positive.
type MonthlySummary struct {
	Month      time.Time
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	Net        decimal.Decimal
	Count      int
	ByCategory []CategoryTotal
}

// SummarizeTransactions totals transactions, grouping by category label.
// Categories are ordered by expenses, largest first, then by name.
func SummarizeTransactions(month time.Time, transactions []*Transaction) *MonthlySummary {
	summary := &MonthlySummary{
		Month:    month,
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}
	byCategory := make(map[string]*CategoryTotal)

	for _, t := range transactions {
		label := t.Category
		if label == "" {
			label = UncategorizedLabel
		}
		total, ok := byCategory[label]
		if !ok {
			total = &CategoryTotal{Category: label, Income: decimal.Zero, Expenses: decimal.Zero}
			byCategory[label] = total
		}

		if t.Type == TransactionTypeIncome {
			summary.Income = summary.Income.Add(t.Amount.Abs())
			total.Income = total.Income.Add(t.Amount.Abs())
		} else {
			summary.Expenses = summary.Expenses.Add(t.Amount.Abs())
			total.Expenses = total.Expenses.Add(t.Amount.Abs())
		}
		total.Count++
		summary.Count++
	}

	summary.Net = summary.Income.Sub(summary.Expenses)
	summary.ByCategory = make([]CategoryTotal, 0, len(byCategory))
	for _, total := range byCategory {
		summary.ByCategory = append(summary.ByCategory, *total)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if !a.Expenses.Equal(b.Expenses) {
			return a.Expenses.GreaterThan(b.Expenses)
		}
		return a.Category < b.Category
	})
	return summary
}

// MonthBounds returns the first day of t's month and of the following month.
func MonthBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
