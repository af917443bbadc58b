package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palemoky/schooldata/internal/api/middleware"
	apperrors "github.com/palemoky/schooldata/internal/errors"
)

// respondError sends a structured error response and records it on the context
func respondError(c *gin.Context, err *apperrors.APIError) {
	if id := middleware.GetRequestID(c); id != "" {
		err = err.WithRequestID(id)
	}
	_ = c.Error(err)
	c.JSON(err.HTTPStatus, gin.H{"error": err})
}

// respondOK sends a JSON success response with the given data.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}
