// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
	// MaxCategoryLength is the maximum allowed length for category labels.
	MaxCategoryLength = 50
)

// findOwnedTransaction loads a transaction and checks that userID owns it.
func findOwnedTransaction(ctx context.Context, repo adapter.TransactionRepository, id, userID uuid.UUID, verb string) (*entity.Transaction, error) {
	transaction, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			fmt.Sprintf("not authorized to %s this transaction", verb),
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}
	return transaction, nil
}

// normalizeDraft trims the text fields, drops the clock part of the date and
// checks what a user may type into a transaction form.
func normalizeDraft(d entity.TransactionDraft) (entity.TransactionDraft, error) {
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	d.Date = dateOnly(d.Date)

	var (
		code   domainerror.TransactionErrorCode
		msg    string
		reason error
	)
	switch {
	case d.Description == "":
		code, msg, reason = domainerror.ErrCodeMissingTransactionFields, "description is required", domainerror.ErrMissingTransactionFields
	case utf8.RuneCountInString(d.Description) > MaxDescriptionLength:
		code, msg, reason = domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength), domainerror.ErrDescriptionTooLong
	case utf8.RuneCountInString(d.Notes) > MaxNotesLength:
		code, msg, reason = domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength), domainerror.ErrNotesTooLong
	case utf8.RuneCountInString(d.Category) > MaxCategoryLength:
		code, msg, reason = domainerror.ErrCodeMissingTransactionFields,
			fmt.Sprintf("category must not exceed %d characters", MaxCategoryLength), domainerror.ErrCategoryLabelTooLong
	case !d.Type.IsValid():
		code, msg, reason = domainerror.ErrCodeInvalidTransactionType, "transaction type must be 'expense' or 'income'", domainerror.ErrInvalidTransactionType
	case d.Amount.IsZero():
		code, msg, reason = domainerror.ErrCodeInvalidTransactionAmount, "amount must not be zero", domainerror.ErrInvalidTransactionAmount
	default:
		return d, nil
	}
	return d, domainerror.NewTransactionError(code, msg, reason)
}

// dateOnly drops the clock part of t, keeping its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
