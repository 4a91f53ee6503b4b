package transaction

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// MaxStatementRows bounds a single import.
const MaxStatementRows = 5000

// statementDateLayouts are tried in order.
var statementDateLayouts = []string{"2006-01-02", "02/01/2006"}

// StatementRow is one parsed statement line. Amount carries the sign of the
// file: negative rows are expenses.
type StatementRow struct {
	Line        int
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Duplicate   bool
}

// RowError reports a statement line that could not be parsed.
type RowError struct {
	Line    int
	Message string
}

// ParseStatement reads a CSV statement with the columns date, description and
// amount. A header row is optional; when present its names choose the column
// order. Bad lines are reported in the returned RowErrors, not as an error.
func ParseStatement(r io.Reader) ([]StatementRow, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	columns := [3]int{0, 1, 2}
	var rows []StatementRow
	var rowErrors []RowError

	for first := true; ; first = false {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, invalidStatementError(err.Error())
		}
		line, _ := reader.FieldPos(0)

		if first {
			if cols, ok := headerColumns(record); ok {
				columns = cols
				continue
			}
		}
		if isBlank(record) {
			continue
		}
		if len(rows)+len(rowErrors) >= MaxStatementRows {
			return nil, nil, invalidStatementError(fmt.Sprintf("statement exceeds %d rows", MaxStatementRows))
		}

		row, err := parseRecord(record, columns)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Line: line, Message: err.Error()})
			continue
		}
		row.Line = line
		rows = append(rows, row)
	}

	if len(rows) == 0 && len(rowErrors) == 0 {
		return nil, nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyStatement,
			"statement has no transactions",
			domainerror.ErrEmptyStatement,
		)
	}
	return rows, rowErrors, nil
}

func headerColumns(record []string) ([3]int, bool) {
	cols := [3]int{-1, -1, -1}
	for i, name := range record {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols[0] = i
		case "description":
			cols[1] = i
		case "amount":
			cols[2] = i
		}
	}
	if cols[0] < 0 || cols[1] < 0 || cols[2] < 0 {
		return [3]int{0, 1, 2}, false
	}
	return cols, true
}

func parseRecord(record []string, columns [3]int) (StatementRow, error) {
	for _, c := range columns {
		if c >= len(record) {
			return StatementRow{}, errors.New("expected date, description and amount columns")
		}
	}

	date, err := parseStatementDate(record[columns[0]])
	if err != nil {
		return StatementRow{}, err
	}

	description := strings.TrimSpace(record[columns[1]])
	if description == "" {
		return StatementRow{}, errors.New("description is empty")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		description = string([]rune(description)[:MaxDescriptionLength])
	}

	amount, err := parseStatementAmount(record[columns[2]])
	if err != nil {
		return StatementRow{}, err
	}

	transactionType := entity.TransactionTypeIncome
	if amount.IsNegative() {
		transactionType = entity.TransactionTypeExpense
	}

	return StatementRow{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
	}, nil
}

func parseStatementDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or DD/MM/YYYY", value)
}

// parseStatementAmount accepts a dot or a lone comma as decimal separator.
func parseStatementAmount(raw string) (decimal.Decimal, error) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if strings.Contains(value, ",") && !strings.Contains(value, ".") {
		value = strings.Replace(value, ",", ".", 1)
	}
	value = strings.ReplaceAll(value, ",", "")

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", strings.TrimSpace(raw))
	}
	if amount.IsZero() {
		return decimal.Zero, errors.New("amount must not be zero")
	}
	return amount.Round(2), nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// markDuplicates flags rows that match stored transactions of the user. Each
// stored transaction absorbs at most one row, so repeated lines in a file
// are only duplicates as many times as they already exist.
func markDuplicates(ctx context.Context, repo adapter.TransactionRepository, userID uuid.UUID, rows []StatementRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	from, to := rows[0].Date, rows[0].Date
	for _, row := range rows[1:] {
		if row.Date.Before(from) {
			from = row.Date
		}
		if row.Date.After(to) {
			to = row.Date
		}
	}

	existing, err := repo.FindByDateRange(ctx, userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to load existing transactions: %w", err)
	}

	remaining := make(map[string]int, len(existing))
	for _, t := range existing {
		remaining[t.DedupKey()]++
	}

	duplicates := 0
	for i := range rows {
		key := entity.DedupKey(rows[i].Date, rows[i].Amount, rows[i].Description)
		if remaining[key] > 0 {
			remaining[key]--
			rows[i].Duplicate = true
			duplicates++
		}
	}
	return duplicates, nil
}

func invalidStatementError(message string) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidStatement,
		message,
		domainerror.ErrInvalidStatement,
	)
}
