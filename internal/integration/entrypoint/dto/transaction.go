package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lifescope/backend/internal/application/usecase/transaction"
	"github.com/lifescope/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount may be sent as a JSON number or string; its sign is taken from type.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required,oneof=expense income"`
	Category    string          `json:"category,omitempty" binding:"omitempty,max=50"`
	Notes       string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date        *string          `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Description *string          `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *string          `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	Category    *string          `json:"category,omitempty" binding:"omitempty,max=50"`
	Notes       *string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// ListTransactionsQuery holds the list filters.
type ListTransactionsQuery struct {
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Type      string `form:"type" binding:"omitempty,oneof=expense income"`
	Category  string `form:"category" binding:"omitempty,max=50"`
	Search    string `form:"search" binding:"omitempty,max=100"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// FinanceSummaryQuery selects a month.
type FinanceSummaryQuery struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	ImportedAt  *time.Time      `json:"imported_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PaginationResponse represents pagination information.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TotalsResponse represents aggregated totals.
type TotalsResponse struct {
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	NetTotal     decimal.Decimal `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
	Totals       TotalsResponse        `json:"totals"`
}

// StatementRowResponse represents one previewed statement line.
type StatementRowResponse struct {
	Line        int             `json:"line"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Duplicate   bool            `json:"duplicate"`
}

// RowErrorResponse represents a statement line that failed to parse.
type RowErrorResponse struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportPreviewResponse represents the statement preview.
type ImportPreviewResponse struct {
	Rows           []StatementRowResponse `json:"rows"`
	Errors         []RowErrorResponse     `json:"errors"`
	DuplicateCount int                    `json:"duplicate_count"`
	IncomeTotal    decimal.Decimal        `json:"income_total"`
	ExpenseTotal   decimal.Decimal        `json:"expense_total"`
}

// ImportResultResponse represents the outcome of a statement import.
type ImportResultResponse struct {
	ImportedCount     int                   `json:"imported_count"`
	SkippedDuplicates int                   `json:"skipped_duplicates"`
	ImportedAt        time.Time             `json:"imported_at"`
	Transactions      []TransactionResponse `json:"transactions"`
}

// CategoryTotalResponse represents one category of a monthly summary.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Count    int             `json:"count"`
}

// FinanceSummaryResponse represents a monthly summary.
type FinanceSummaryResponse struct {
	Month      string                  `json:"month"`
	Income     decimal.Decimal         `json:"income"`
	Expenses   decimal.Decimal         `json:"expenses"`
	Net        decimal.Decimal         `json:"net"`
	Count      int                     `json:"transaction_count"`
	ByCategory []CategoryTotalResponse `json:"by_category"`
}

// ToTransactionResponse converts a transaction entity.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		Date:        t.Date.Format(dateLayout),
		Description: t.Description,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Category:    t.Category,
		Notes:       t.Notes,
		ImportedAt:  t.ImportedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTransactionResponses(ts []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		out[i] = ToTransactionResponse(t)
	}
	return out
}

// ToTransactionListResponse converts the list use case output.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	return TransactionListResponse{
		Transactions: toTransactionResponses(output.Transactions),
		Pagination: PaginationResponse{
			Page:       output.Page,
			Limit:      output.Limit,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
		Totals: TotalsResponse{
			IncomeTotal:  output.Totals.IncomeTotal,
			ExpenseTotal: output.Totals.ExpenseTotal,
			NetTotal:     output.Totals.NetTotal,
		},
	}
}

// ToImportPreviewResponse converts the preview use case output.
func ToImportPreviewResponse(output *transaction.PreviewImportOutput) ImportPreviewResponse {
	rows := make([]StatementRowResponse, len(output.Rows))
	for i, row := range output.Rows {
		rows[i] = StatementRowResponse{
			Line:        row.Line,
			Date:        row.Date.Format(dateLayout),
			Description: row.Description,
			Amount:      row.Amount,
			Type:        string(row.Type),
			Duplicate:   row.Duplicate,
		}
	}
	rowErrors := make([]RowErrorResponse, len(output.Errors))
	for i, e := range output.Errors {
		rowErrors[i] = RowErrorResponse{Line: e.Line, Message: e.Message}
	}
	return ImportPreviewResponse{
		Rows:           rows,
		Errors:         rowErrors,
		DuplicateCount: output.DuplicateCount,
		IncomeTotal:    output.IncomeTotal,
		ExpenseTotal:   output.ExpenseTotal,
	}
}

// ToImportResultResponse converts the import use case output.
func ToImportResultResponse(output *transaction.ImportStatementOutput) ImportResultResponse {
	return ImportResultResponse{
		ImportedCount:     output.ImportedCount,
		SkippedDuplicates: output.SkippedDuplicates,
		ImportedAt:        output.ImportedAt,
		Transactions:      toTransactionResponses(output.Transactions),
	}
}

// ToFinanceSummaryResponse converts a monthly summary.
func ToFinanceSummaryResponse(s *entity.MonthlySummary) FinanceSummaryResponse {
	categories := make([]CategoryTotalResponse, len(s.ByCategory))
	for i, c := range s.ByCategory {
		categories[i] = CategoryTotalResponse{
			Category: c.Category,
			Income:   c.Income,
			Expenses: c.Expenses,
			Count:    c.Count,
		}
	}
	return FinanceSummaryResponse{
		Month:      s.Month.Format("2006-01"),
		Income:     s.Income,
		Expenses:   s.Expenses,
		Net:        s.Net,
		Count:      s.Count,
		ByCategory: categories,
	}
}
