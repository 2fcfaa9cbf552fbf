package controllers

import (
	"errors"
	"net/http"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/logger"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/services"
	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Unclassified errors are logged and surface as an opaque 500.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var authErr *services.AuthorizationError
	var conflictErr *services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Msg})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundErr.Msg})
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": authErr.Msg})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": conflictErr.Msg})
	default:
		logger.Error("internal error", map[string]interface{}{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

// currentUserID reads the authenticated user id set by the auth
// middleware. The second return is false on unauthenticated requests.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
