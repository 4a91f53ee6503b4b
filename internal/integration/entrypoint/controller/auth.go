package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifescope/backend/internal/application/usecase/auth"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/entrypoint/dto"
	"github.com/lifescope/backend/internal/integration/entrypoint/validation"
)

// AuthController serves the public session endpoints under /auth.
type AuthController struct {
	register       *auth.RegisterUserUseCase
	login          *auth.LoginUserUseCase
	refresh        *auth.RefreshTokenUseCase
	logout         *auth.LogoutUserUseCase
	forgotPassword *auth.ForgotPasswordUseCase
	resetPassword  *auth.ResetPasswordUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	register *auth.RegisterUserUseCase,
	login *auth.LoginUserUseCase,
	refresh *auth.RefreshTokenUseCase,
	logout *auth.LogoutUserUseCase,
	forgotPassword *auth.ForgotPasswordUseCase,
	resetPassword *auth.ResetPasswordUseCase,
) *AuthController {
	return &AuthController{
		register:       register,
		login:          login,
		refresh:        refresh,
		logout:         logout,
		forgotPassword: forgotPassword,
		resetPassword:  resetPassword,
	}
}

// Register handles POST /auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		authBindingError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	output, err := c.register.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:         req.Email,
		Name:          req.Name,
		Password:      req.Password,
		Timezone:      req.Timezone,
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		TokenResponse: dto.TokenResponse{AccessToken: output.AccessToken, RefreshToken: output.RefreshToken},
		User:          dto.ToUserResponse(output.User),
	})
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		authBindingError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	output, err := c.login.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
		Timezone:   req.Timezone,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		TokenResponse: dto.TokenResponse{AccessToken: output.AccessToken, RefreshToken: output.RefreshToken},
		User:          dto.ToUserResponse(output.User),
	})
}

// RefreshToken handles POST /auth/refresh requests.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		authBindingError(ctx, err, domainerror.ErrCodeMissingToken)
		return
	}

	output, err := c.refresh.Execute(ctx.Request.Context(), auth.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	})
}

// Logout handles POST /auth/logout requests. It answers 200 even for a
// missing or unusable token.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
		return
	}

	output, err := c.logout.Execute(ctx.Request.Context(), auth.LogoutUserInput{
		RefreshToken: req.RefreshToken,
		AllDevices:   req.AllDevices,
	})
	if err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// ForgotPassword handles POST /auth/forgot-password requests.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		authBindingError(ctx, err, domainerror.ErrCodeInvalidEmail)
		return
	}

	output, err := c.forgotPassword.Execute(ctx.Request.Context(), auth.ForgotPasswordInput{
		Email: req.Email,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// ResetPassword handles POST /auth/reset-password requests.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		authBindingError(ctx, err, domainerror.ErrCodeMissingFields)
		return
	}

	output, err := c.resetPassword.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

var authErrorStatus = map[domainerror.AuthErrorCode]int{
	domainerror.ErrCodeEmailExists:         http.StatusConflict,
	domainerror.ErrCodeTermsNotAccepted:    http.StatusBadRequest,
	domainerror.ErrCodeWeakPassword:        http.StatusBadRequest,
	domainerror.ErrCodeInvalidEmail:        http.StatusBadRequest,
	domainerror.ErrCodeMissingFields:       http.StatusBadRequest,
	domainerror.ErrCodeInvalidTimezone:     http.StatusBadRequest,
	domainerror.ErrCodeInvalidResetToken:   http.StatusBadRequest,
	domainerror.ErrCodeExpiredResetToken:   http.StatusBadRequest,
	domainerror.ErrCodeInvalidConfirmation: http.StatusBadRequest,
	domainerror.ErrCodeInvalidCredentials:  http.StatusUnauthorized,
	domainerror.ErrCodeInvalidToken:        http.StatusUnauthorized,
	domainerror.ErrCodeMissingToken:        http.StatusUnauthorized,
	domainerror.ErrCodeUserNotFound:        http.StatusNotFound,
	domainerror.ErrCodeRateLimited:         http.StatusTooManyRequests,
}

// handleAuthError writes an AuthError whose code is in authErrorStatus.
// Anything else is a 500.
func handleAuthError(ctx *gin.Context, err error) {
	statusOf := func(code domainerror.AuthErrorCode) int { return authErrorStatus[code] }
	if !respondCoded(ctx, err, statusOf) {
		internalError(ctx, err)
	}
}

// authBindingError reports a rejected body, naming the specific rule when
// one of the account fields failed.
func authBindingError(ctx *gin.Context, err error, fallback domainerror.AuthErrorCode) {
	code := fallback
	switch validation.FailedTag(err) {
	case "email":
		code = domainerror.ErrCodeInvalidEmail
	case "timezone":
		code = domainerror.ErrCodeInvalidTimezone
	case "min":
		if field := validation.FailedField(err); field == "Password" || field == "NewPassword" {
			code = domainerror.ErrCodeWeakPassword
		}
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(code),
		Details: bindingDetails(err),
	})
}
