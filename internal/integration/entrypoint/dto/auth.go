package dto

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Password      string `json:"password" binding:"required,min=8"`
	Timezone      string `json:"timezone" binding:"omitempty,timezone"`
	TermsAccepted bool   `json:"terms_accepted" binding:"required"`
}

// LoginRequest is the body of POST /auth/login. Timezone is the zone the
// client detected; it only fills in accounts still on the default zone.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
	Timezone   string `json:"timezone" binding:"omitempty,timezone"`
}

// SessionRequest carries the refresh token of the session being renewed.
type SessionRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest ends the session, or every session with AllDevices.
type LogoutRequest struct {
	SessionRequest
	AllDevices bool `json:"all_devices"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems the token mailed by /auth/forgot-password.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// TokenResponse is returned by refresh and embedded in AuthResponse.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx and 5xx answer. Code is the stable
// machine-readable error code, e.g. AUTH-030001.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
