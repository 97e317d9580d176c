package handler

import (
	"strconv"
	"time"

	apptag "github.com/costview/backend/internal/application/tag"
	"github.com/costview/backend/internal/domain/tag"
	"github.com/gin-gonic/gin"
)

// TagHandler serves tag management endpoints.
type TagHandler struct {
	BaseHandler
	tags *apptag.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tags *apptag.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// RegisterRoutes registers tag routes
func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/tags")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// TagRequest is the create/update payload.
type TagRequest struct {
	Name  string  `json:"name" binding:"required"`
	Color *string `json:"color"`
}

// TagResponse is the wire form of a tag.
type TagResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToTagResponse maps a tag to its wire form.
func ToTagResponse(entry *tag.Tag) TagResponse {
	return TagResponse{
		ID:        entry.ID,
		Name:      entry.Name,
		Color:     entry.Color,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}

func parseTagID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// List returns all tags.
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	responses := make([]TagResponse, 0, len(tags))
	for i := range tags {
		responses = append(responses, ToTagResponse(&tags[i]))
	}
	h.Success(c, responses)
}

// Create creates a tag.
func (h *TagHandler) Create(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "name is required")
		return
	}
	created, err := h.tags.Create(c.Request.Context(), req.Name, req.Color)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ToTagResponse(created))
}

// Get returns one tag.
func (h *TagHandler) Get(c *gin.Context) {
	id, ok := parseTagID(c)
	if !ok {
		h.BadRequest(c, "id must be a positive integer")
		return
	}
	found, err := h.tags.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ToTagResponse(found))
}

// Update updates a tag.
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := parseTagID(c)
	if !ok {
		h.BadRequest(c, "id must be a positive integer")
		return
	}
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "name is required")
		return
	}
	updated, err := h.tags.Update(c.Request.Context(), id, req.Name, req.Color)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ToTagResponse(updated))
}

// Delete deletes a tag and its invoice assignments.
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := parseTagID(c)
	if !ok {
		h.BadRequest(c, "id must be a positive integer")
		return
	}
	if err := h.tags.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
