package controller

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifescope/backend/internal/application/usecase/transaction"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/entrypoint/dto"
	"github.com/lifescope/backend/internal/integration/entrypoint/validation"
)

// maxStatementBytes bounds uploaded statements.
const maxStatementBytes = 2 << 20

// TransactionController handles transaction and finance summary endpoints.
type TransactionController struct {
	listUseCase    *transaction.ListTransactionsUseCase
	createUseCase  *transaction.CreateTransactionUseCase
	updateUseCase  *transaction.UpdateTransactionUseCase
	deleteUseCase  *transaction.DeleteTransactionUseCase
	previewUseCase *transaction.PreviewImportUseCase
	importUseCase  *transaction.ImportStatementUseCase
	summaryUseCase *transaction.MonthlySummaryUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	previewUseCase *transaction.PreviewImportUseCase,
	importUseCase *transaction.ImportStatementUseCase,
	summaryUseCase *transaction.MonthlySummaryUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		previewUseCase: previewUseCase,
		importUseCase:  importUseCase,
		summaryUseCase: summaryUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var query dto.ListTransactionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid query parameters",
			Code:    string(domainerror.ErrCodeMissingTransactionFields),
			Details: bindingDetails(err),
		})
		return
	}

	input := transaction.ListTransactionsInput{
		UserID:   userID,
		Category: query.Category,
		Search:   query.Search,
		Page:     query.Page,
		Limit:    query.Limit,
	}
	if query.StartDate != "" {
		startDate, _ := time.Parse("2006-01-02", query.StartDate)
		input.StartDate = &startDate
	}
	if query.EndDate != "" {
		endDate, _ := time.Parse("2006-01-02", query.EndDate)
		input.EndDate = &endDate
	}
	if query.Type != "" {
		txnType := entity.TransactionType(query.Type)
		input.Type = &txnType
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		transactionBindingError(ctx, err)
		return
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID: userID,
		TransactionDraft: entity.TransactionDraft{
			Date:        date,
			Description: req.Description,
			Amount:      req.Amount,
			Type:        entity.TransactionType(req.Type),
			Category:    req.Category,
			Notes:       req.Notes,
		},
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "id", "transaction")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		transactionBindingError(ctx, err)
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Description:   req.Description,
		Amount:        req.Amount,
		Category:      req.Category,
		Notes:         req.Notes,
	}
	if req.Date != nil {
		date, _ := time.Parse("2006-01-02", *req.Date)
		input.Date = &date
	}
	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "id", "transaction")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// PreviewImport handles POST /transactions/import/preview requests.
func (c *TransactionController) PreviewImport(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	statement, ok := readStatement(ctx)
	if !ok {
		return
	}
	defer statement.Close()

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), transaction.PreviewImportInput{
		UserID:    userID,
		Statement: statement,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToImportPreviewResponse(output))
}

// Import handles POST /transactions/import requests.
// Query: category (label for every row), include_duplicates=true.
func (c *TransactionController) Import(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	statement, ok := readStatement(ctx)
	if !ok {
		return
	}
	defer statement.Close()

	includeDuplicates, _ := strconv.ParseBool(ctx.Query("include_duplicates"))

	output, err := c.importUseCase.Execute(ctx.Request.Context(), transaction.ImportStatementInput{
		UserID:            userID,
		Statement:         statement,
		Category:          ctx.Query("category"),
		IncludeDuplicates: includeDuplicates,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToImportResultResponse(output))
}

// Summary handles GET /finance/summary?month=YYYY-MM requests.
func (c *TransactionController) Summary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var query dto.FinanceSummaryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "month must be in YYYY-MM format",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return
	}

	summary, err := c.summaryUseCase.Execute(ctx.Request.Context(), transaction.MonthlySummaryInput{
		UserID: userID,
		Month:  query.Month,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinanceSummaryResponse(summary))
}

// readStatement returns the uploaded "file" form field, or the raw body for
// text/csv requests.
func readStatement(ctx *gin.Context) (io.ReadCloser, bool) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxStatementBytes)

	if ctx.ContentType() == "text/csv" {
		return ctx.Request.Body, true
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "a CSV statement is required in the 'file' field",
			Code:  string(domainerror.ErrCodeInvalidStatement),
		})
		return nil, false
	}
	file, err := header.Open()
	if err != nil {
		internalError(ctx, err)
		return nil, false
	}
	return file, true
}

func transactionBindingError(ctx *gin.Context, err error) {
	code := domainerror.ErrCodeMissingTransactionFields
	switch validation.FailedField(err) {
	case "Type":
		code = domainerror.ErrCodeInvalidTransactionType
	case "Date":
		code = domainerror.ErrCodeInvalidTransactionDate
	case "Description":
		if validation.FailedTag(err) == "max" {
			code = domainerror.ErrCodeDescriptionTooLong
		}
	case "Notes":
		code = domainerror.ErrCodeNotesTooLong
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(code),
		Details: bindingDetails(err),
	})
}

func handleTransactionError(ctx *gin.Context, err error) {
	if !respondCoded(ctx, err, getStatusCodeForTransactionError) {
		internalError(ctx, err)
	}
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction:
		return http.StatusForbidden
	case domainerror.ErrCodeEmptyStatement, domainerror.ErrCodeInvalidStatement:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
