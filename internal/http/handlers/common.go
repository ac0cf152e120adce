package handlers

import (
	"net/http"
	"strconv"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// idParam parses the numeric path parameter, answering 400 itself on failure.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid "+name+" parameter", nil)
		return 0, false
	}
	return id, true
}

// sessionOrAbort pulls the caller's session; Auth middleware guarantees it on
// protected routes, so a miss means a wiring bug and gets a 401.
func sessionOrAbort(c *gin.Context) (domain.Session, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
	}
	return session, ok
}
