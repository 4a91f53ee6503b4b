package error

import "errors"

var (
	ErrTransactionNotFound              = errors.New("transaction not found")
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionDate   = errors.New("invalid transaction date")
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")
	ErrMissingTransactionFields = errors.New("missing required transaction fields")
	ErrDescriptionTooLong       = errors.New("description too long")
	ErrNotesTooLong             = errors.New("notes too long")
	ErrCategoryLabelTooLong     = errors.New("category label too long")

	// ErrInvalidMonth rejects a summary month that is not YYYY-MM.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidStatement and ErrEmptyStatement reject an uploaded CSV
	// before any row is stored.
	ErrInvalidStatement = errors.New("invalid statement file")
	ErrEmptyStatement   = errors.New("statement has no transactions")
)

// TransactionErrorCode values are TXN-XXYYYY. Group 01 covers single
// transactions and 02 statement imports.
type TransactionErrorCode string

const (
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010005"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010008"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010009"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010010"
	ErrCodeInvalidMonth             TransactionErrorCode = "TXN-010013"

	ErrCodeInvalidStatement TransactionErrorCode = "TXN-020001"
	ErrCodeEmptyStatement   TransactionErrorCode = "TXN-020002"
)

// TransactionError reports an invalid transaction or import.
type TransactionError = CodedError[TransactionErrorCode]

func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return newCoded(code, message, err)
}
