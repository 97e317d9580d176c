package identity

import (
	"context"
	"fmt"

	"github.com/costview/backend/internal/domain/identity"
	"github.com/costview/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user administration.
type UserService struct {
	users  identity.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Create creates a new user. The acting principal, when present on the
// context, is recorded as the creator.
func (s *UserService) Create(ctx context.Context, username, password string, role identity.Role) (*identity.User, error) {
	user, err := identity.NewUser(username, password, role)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.FindByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewErrorWithDetail(shared.ErrKindItemAlreadyExist,
			fmt.Sprintf("user %q already exists", user.Username))
	}

	if principal, ok := identity.PrincipalFrom(ctx); ok {
		user.CreatedBy = &principal.UserID
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.String("user_id", user.ID.String()), zap.String("username", user.Username))
	return user, nil
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewErrorWithDetail(shared.ErrKindItemNotFound, fmt.Sprintf("user %s not found", id))
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]identity.User, error) {
	return s.users.FindAll(ctx)
}

// ChangePassword sets a new password for the user.
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, password string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(password); err != nil {
		return err
	}
	if principal, ok := identity.PrincipalFrom(ctx); ok {
		user.UpdatedBy = &principal.UserID
	}
	return s.users.Save(ctx, user)
}

// ChangeRole sets a new role for the user.
func (s *UserService) ChangeRole(ctx context.Context, id uuid.UUID, role identity.Role) (*identity.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.ChangeRole(role); err != nil {
		return nil, err
	}
	if principal, ok := identity.PrincipalFrom(ctx); ok {
		user.UpdatedBy = &principal.UserID
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}
