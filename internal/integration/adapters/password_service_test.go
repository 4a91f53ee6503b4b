package adapters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("SecurePass123!")
	require.NoError(t, err)
	assert.NotEqual(t, "SecurePass123!", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.NoError(t, svc.VerifyPassword(hash, "SecurePass123!"))
	assert.Error(t, svc.VerifyPassword(hash, "WrongPass123!"))
}

func TestPasswordService_InvalidCostFallsBack(t *testing.T) {
	svc := NewPasswordService(0).(*passwordService)
	assert.Equal(t, DefaultBcryptCost, svc.cost)
}

func TestPasswordService_ValidatePasswordStrength(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"letters and digits", "SecurePass123", false},
		{"unicode letters", "Überholen2025", false},
		{"too short", "Ab1", true},
		{"no digit", "OnlyLetters!", true},
		{"no letter", "1234567890", true},
		{"over bcrypt limit", strings.Repeat("a1", 37), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
