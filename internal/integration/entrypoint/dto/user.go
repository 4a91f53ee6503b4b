package dto

import (
	"time"

	"github.com/lifescope/backend/internal/domain/entity"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Timezone           string    `json:"timezone"`
	EmailNotifications bool      `json:"email_notifications"`
	DailyReminders     bool      `json:"daily_reminders"`
	CreatedAt          time.Time `json:"created_at"`
}

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                 u.ID.String(),
		Email:              u.Email,
		Name:               u.Name,
		Timezone:           u.Timezone,
		EmailNotifications: u.EmailNotifications,
		DailyReminders:     u.DailyReminders,
		CreatedAt:          u.CreatedAt,
	}
}

// UpdateProfileRequest is the body of PATCH /users/me. Absent fields keep
// their value.
type UpdateProfileRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=1,max=100"`
	Timezone           *string `json:"timezone" binding:"omitempty,timezone"`
	EmailNotifications *bool   `json:"email_notifications"`
	DailyReminders     *bool   `json:"daily_reminders"`
}

// DeleteAccountRequest is the body of DELETE /users/me. Confirmation must
// be the literal "DELETE".
type DeleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}
