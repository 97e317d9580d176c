package handler

import (
	"net/http"

	"github.com/costview/backend/internal/domain/shared"
	"github.com/costview/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDKey)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleError maps a domain error onto the wire: the error kind becomes the
// machine-readable code and picks the status.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	kind := shared.KindOf(err)
	c.JSON(dto.HTTPStatus(kind), dto.NewErrorResponseWithRequestID(string(kind), err.Error(), getRequestID(c)))
}

// BadRequest sends a 400 response in the invalid-request kind.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.HandleError(c, shared.NewErrorWithDetail(shared.ErrKindInvalidRequest, message))
}
