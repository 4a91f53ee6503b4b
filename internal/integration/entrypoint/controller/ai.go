package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifescope/backend/internal/application/usecase/ai"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/entrypoint/dto"
	"github.com/lifescope/backend/internal/integration/entrypoint/validation"
)

// AIController handles the assistant endpoints.
type AIController struct {
	chatUseCase    *ai.ChatUseCase
	reportUseCase  *ai.LifeReportUseCase
	suggestUseCase *ai.SuggestActivitiesUseCase
}

// NewAIController creates a new AI controller instance.
func NewAIController(
	chatUseCase *ai.ChatUseCase,
	reportUseCase *ai.LifeReportUseCase,
	suggestUseCase *ai.SuggestActivitiesUseCase,
) *AIController {
	return &AIController{
		chatUseCase:    chatUseCase,
		reportUseCase:  reportUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// Chat handles POST /ai/chat requests.
func (c *AIController) Chat(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		code := domainerror.ErrCodeChatMessageRequired
		switch validation.FailedField(err) {
		case "Message":
			if validation.FailedTag(err) == "max" {
				code = domainerror.ErrCodeChatMessageTooLong
			}
		case "History", "Role", "Content":
			code = domainerror.ErrCodeInvalidChatHistory
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(code),
			Details: bindingDetails(err),
		})
		return
	}

	output, err := c.chatUseCase.Execute(ctx.Request.Context(), ai.ChatInput{
		UserID:  userID,
		Message: req.Message,
		History: dto.ToChatHistory(req.History),
	})
	if err != nil {
		handleAIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ChatResponse{Reply: output.Reply, Provider: output.Provider})
}

// Report handles GET /ai/report requests.
func (c *AIController) Report(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var query dto.LifeReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "refresh must be true or false",
			Details: bindingDetails(err),
		})
		return
	}

	output, err := c.reportUseCase.Execute(ctx.Request.Context(), ai.LifeReportInput{
		UserID:  userID,
		Refresh: query.Refresh,
	})
	if err != nil {
		handleAIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLifeReportResponse(output))
}

// SuggestActivities handles POST /ai/goals/:id/suggestions requests.
func (c *AIController) SuggestActivities(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}

	var query dto.SuggestionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "count must be between 1 and 10",
			Details: bindingDetails(err),
		})
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), ai.SuggestActivitiesInput{
		UserID: userID,
		GoalID: goalID,
		Count:  query.Count,
	})
	if err != nil {
		var goalErr *domainerror.GoalError
		if errors.As(err, &goalErr) {
			handleGoalError(ctx, err)
			return
		}
		handleAIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestionsResponse(output))
}

func handleAIError(ctx *gin.Context, err error) {
	var aiErr *domainerror.AIError
	if !errors.As(err, &aiErr) {
		internalError(ctx, err)
		return
	}

	resp := dto.ErrorResponse{
		Error: aiErr.Message,
		Code:  string(aiErr.Code),
	}
	status := getStatusCodeForAIError(aiErr.Code)
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		resp.Details = map[string]any{"retryable": aiErr.Retryable}
	}
	ctx.JSON(status, resp)
}

// getStatusCodeForAIError maps AI error codes to HTTP status codes.
func getStatusCodeForAIError(code domainerror.AIErrorCode) int {
	switch code {
	case domainerror.ErrCodeChatMessageRequired,
		domainerror.ErrCodeChatMessageTooLong,
		domainerror.ErrCodeInvalidChatHistory:
		return http.StatusBadRequest
	case domainerror.ErrCodeAIRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeAIUnavailable, domainerror.ErrCodeAIProviderDown:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeAITimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
