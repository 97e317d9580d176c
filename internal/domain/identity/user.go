package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/costview/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role classifies what a user may do.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Password cost for bcrypt
const bcryptCost = 12

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,49}$`)

// User is an account that can call the API. Password hashes never leave this
// package in clear form.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'viewer'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    *uuid.UUID `gorm:"type:uuid"`
	UpdatedBy    *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a freshly hashed password.
func NewUser(username, password string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}, nil
}

// CheckPassword reports whether the candidate matches the stored hash.
func (u *User) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}

// ChangePassword replaces the password hash.
func (u *User) ChangePassword(password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

// ChangeRole switches the user's role.
func (u *User) ChangeRole(role Role) error {
	if err := validateRole(role); err != nil {
		return err
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return shared.NewErrorWithDetail(shared.ErrKindInvalidRequest,
			"username must be 3-50 characters of lowercase letters, digits, '.', '_' or '-'")
	}
	return nil
}

func validateRole(role Role) error {
	switch role {
	case RoleAdmin, RoleViewer:
		return nil
	}
	return shared.NewErrorWithDetail(shared.ErrKindInvalidRequest, "role must be admin or viewer")
}

func hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewErrorWithDetail(shared.ErrKindInvalidRequest, "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.WrapError(shared.ErrKindUnknown, err, "hashing password")
	}
	return string(hash), nil
}
