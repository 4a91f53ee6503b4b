package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/usecase/auth"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/entrypoint/dto"
	"github.com/lifescope/backend/internal/integration/entrypoint/middleware"
)

// UserController handles user management endpoints.
type UserController struct {
	getProfileUseCase    *auth.GetProfileUseCase
	updateProfileUseCase *auth.UpdateProfileUseCase
	deleteAccountUseCase *auth.DeleteAccountUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getProfileUseCase *auth.GetProfileUseCase,
	updateProfileUseCase *auth.UpdateProfileUseCase,
	deleteAccountUseCase *auth.DeleteAccountUseCase,
) *UserController {
	return &UserController{
		getProfileUseCase:    getProfileUseCase,
		updateProfileUseCase: updateProfileUseCase,
		deleteAccountUseCase: deleteAccountUseCase,
	}
}

// GetProfile handles GET /users/me requests.
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	user, err := c.getProfileUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile handles PATCH /users/me requests.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		authBindingError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	user, err := c.updateProfileUseCase.Execute(ctx.Request.Context(), auth.UpdateProfileInput{
		UserID:             userID,
		Name:               req.Name,
		Timezone:           req.Timezone,
		EmailNotifications: req.EmailNotifications,
		DailyReminders:     req.DailyReminders,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteAccount handles DELETE /users/me requests.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		authBindingError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	input := auth.DeleteAccountInput{
		UserID:       userID,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	}

	if _, err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), input); err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// requireUserID reads the authenticated user or writes a 401.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}
