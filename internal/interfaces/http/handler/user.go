package handler

import (
	"time"

	appidentity "github.com/costview/backend/internal/application/identity"
	"github.com/costview/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler serves user administration endpoints.
type UserHandler struct {
	BaseHandler
	users *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *appidentity.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/users")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id/password", h.ChangePassword)
	group.PUT("/:id/role", h.ChangeRole)
	group.DELETE("/:id", h.Delete)
}

// CreateUserRequest is the user creation payload.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// ChangePasswordRequest carries a new password.
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ChangeRoleRequest carries a new role.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UserResponse is the wire form of a user. The password hash stays internal.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse maps a user to its wire form.
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func parseUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// List returns all users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	h.Success(c, responses)
}

// Create creates a user.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "username, password and role are required")
		return
	}
	created, err := h.users.Create(c.Request.Context(), req.Username, req.Password, identity.Role(req.Role))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ToUserResponse(created))
}

// Get returns one user.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ToUserResponse(user))
}

// ChangePassword sets a new password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "password is required")
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), id, req.Password); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ChangeRole sets a new role.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "role is required")
		return
	}
	updated, err := h.users.ChangeRole(c.Request.Context(), id, identity.Role(req.Role))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ToUserResponse(updated))
}

// Delete removes a user.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
