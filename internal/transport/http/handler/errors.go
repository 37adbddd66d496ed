package handler

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/taskboard/internal/domain"
	"github.com/gin-gonic/gin"
)

const errInternalServer = "Internal server error"

var kindStatus = map[domain.Kind]int{
	domain.KindValidation:     http.StatusBadRequest,
	domain.KindConflict:       http.StatusBadRequest,
	domain.KindAuthentication: http.StatusUnauthorized,
	domain.KindAuthorization:  http.StatusForbidden,
	domain.KindNotFound:       http.StatusNotFound,
}

// respondError maps err's kind to a status code. Internal errors are logged
// and answered with a generic message.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	kind := domain.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer, "kind": string(domain.KindInternal)})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": string(kind)})
}

// respondBindError answers malformed request bodies.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": string(domain.KindValidation)})
}
