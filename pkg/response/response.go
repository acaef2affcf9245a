package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
)

// ErrorBody is the error payload. Successful responses carry the resource
// itself without a wrapper.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ── success ──

// OK 200 with the payload as body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 with the created resource.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Deleted 200 with a confirmation message.
func Deleted(c *gin.Context, entity string) {
	c.JSON(http.StatusOK, gin.H{"message": entity + " deleted successfully"})
}

// ── errors ──

// Error writes a generic error.
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, ErrorBody{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails writes an error with a detail string.
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// FromError writes a business error, or 500 for anything else.
// It reports whether err was a business error.
func FromError(c *gin.Context, err error) bool {
	e, ok := pkgerrors.As(err)
	if !ok || e.Kind == pkgerrors.KindInternal {
		InternalError(c)
		return false
	}
	ErrorWithDetails(c, e.Kind.HTTPStatus(), e.Code, e.Message, e.Detail)
	return true
}

// ── shortcuts ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "internal server error")
}
