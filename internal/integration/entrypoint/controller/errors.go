package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/entrypoint/dto"
	"github.com/lifescope/backend/internal/integration/entrypoint/validation"
)

// staleDetails tells clients the write committed but the goal needs a re-fetch.
var staleDetails = map[string]any{"stale": true}

// handleGoalError maps goal and activity errors to HTTP responses.
func handleGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		resp := dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		}
		if goalErr.IsStale() {
			resp.Details = staleDetails
		}
		ctx.JSON(getStatusCodeForGoalError(goalErr.Code), resp)
		return
	}

	if !respondCoded(ctx, err, getStatusCodeForActivityError) {
		internalError(ctx, err)
	}
}

// respondCoded writes err with its code when it is a CodedError[C] and
// reports whether it did. A zero status from statusOf is treated as an
// unexpected code and logged as a 500.
func respondCoded[C ~string](ctx *gin.Context, err error, statusOf func(C) int) bool {
	var coded *domainerror.CodedError[C]
	if !errors.As(err, &coded) {
		return false
	}
	status := statusOf(coded.Code)
	if status == 0 {
		internalError(ctx, err)
		return true
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: coded.Message,
		Code:  string(coded.Code),
	})
	return true
}

// getStatusCodeForGoalError maps goal error codes to HTTP status codes.
func getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeGoalTitleRequired,
		domainerror.ErrCodeGoalTitleTooLong,
		domainerror.ErrCodeInvalidGoalPriority,
		domainerror.ErrCodeGoalCategoryNotFound,
		domainerror.ErrCodeInvalidGoalStatus,
		domainerror.ErrCodeInvalidGoalDeadline,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForActivityError maps activity error codes to HTTP status codes.
func getStatusCodeForActivityError(code domainerror.ActivityErrorCode) int {
	switch code {
	case domainerror.ErrCodeActivityNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeActivityNameRequired,
		domainerror.ErrCodeActivityNameTooLong,
		domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeMissingActivityField:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// activityBindingError reports a rejected activity payload, keeping the
// frequency code distinct from generic missing fields.
func activityBindingError(ctx *gin.Context, err error) {
	code := domainerror.ErrCodeMissingActivityField
	if validation.FailedTag(err) == validation.TagActivityFrequency {
		code = domainerror.ErrCodeInvalidFrequency
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(code),
		Details: bindingDetails(err),
	})
}

// goalBindingError reports a rejected goal payload.
func goalBindingError(ctx *gin.Context, err error) {
	var code domainerror.GoalErrorCode
	switch validation.FailedTag(err) {
	case validation.TagGoalPriority:
		code = domainerror.ErrCodeInvalidGoalPriority
	case validation.TagGoalStatus:
		code = domainerror.ErrCodeInvalidGoalStatus
	case "datetime":
		code = domainerror.ErrCodeInvalidGoalDeadline
	case "required":
		code = domainerror.ErrCodeMissingGoalFields
		if validation.FailedField(err) == "Title" {
			code = domainerror.ErrCodeGoalTitleRequired
		}
	case "max":
		code = domainerror.ErrCodeMissingGoalFields
		if validation.FailedField(err) == "Title" {
			code = domainerror.ErrCodeGoalTitleTooLong
		}
	default:
		code = domainerror.ErrCodeMissingGoalFields
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(code),
		Details: bindingDetails(err),
	})
}

func bindingDetails(err error) any {
	if field := validation.FailedField(err); field != "" {
		return map[string]any{"field": field, "rule": validation.FailedTag(err)}
	}
	return nil
}

// parseIDParam reads a UUID path parameter or writes a 400.
func parseIDParam(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + label + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// internalError logs err and writes a generic 500.
func internalError(ctx *gin.Context, err error) {
	slog.Error("request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
