package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
)

const maxUsernameLength = 100

// User is a dashboard user. Users exist so flags can be scoped per person;
// there are no roles or permissions beyond authentication.
type User struct {
	ID           int64
	Username     string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser creates a user with a bcrypt-hashed password.
func NewUser(username, displayName, password string) (*User, error) {
	errs := apperrors.NewValidationErrors()

	if username == "" {
		errs.Add("username", "Username is required")
	}
	if len(username) > maxUsernameLength {
		errs.Add("username", "Username exceeds maximum length")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}
	if errs.HasErrors() {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName = username
	}

	return &User{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
