package identity

import (
	"context"
	"fmt"

	"github.com/costview/backend/internal/domain/identity"
	"github.com/costview/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenIssuer signs tokens for authenticated principals.
type TokenIssuer interface {
	IssueToken(principal identity.Principal) (string, error)
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	Token string
	User  *identity.User
}

// AuthService authenticates users and issues tokens.
type AuthService struct {
	users  identity.UserRepository
	issuer TokenIssuer
	logger *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, issuer TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, issuer: issuer, logger: logger}
}

// Login verifies the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewErrorWithDetail(shared.ErrKindItemNotFound,
			fmt.Sprintf("user %q not found", username))
	}
	if !user.CheckPassword(password) {
		s.logger.Warn("login failed", zap.String("username", user.Username))
		return nil, shared.NewErrorWithDetail(shared.ErrKindInvalidRequest, "password does not match")
	}

	token, err := s.issuer.IssueToken(identity.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", zap.String("username", user.Username))
	return &LoginResult{Token: token, User: user}, nil
}
