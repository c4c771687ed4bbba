package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pirlanta/internal/middleware"
	"pirlanta/internal/models"
)

// более устойчиво к типам (int / int64 / float64 / string)
func getIntFromCtx(c *gin.Context, key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getAdminAndRole(c *gin.Context) (username string, roleID int) {
	if v, ok := c.Get(middleware.CtxAdminUsername); ok {
		username, _ = v.(string)
	}
	if id, ok := getIntFromCtx(c, middleware.CtxRoleID); ok {
		roleID = id
	}
	return
}

// statusFor: sentinel-ошибка сервиса -> HTTP-код
func statusFor(err error) int {
	switch {
	case models.IsValidationError(err):
		return http.StatusBadRequest
	case models.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case models.IsAuthError(err):
		return http.StatusUnauthorized
	case models.IsExternalServiceError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError логирует и отвечает {"error": ...}; 500 без деталей
func writeError(c *gin.Context, tag string, err error) {
	code := statusFor(err)
	log.Printf("%s status=%d err=%v", tag, code, err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(code, gin.H{"error": msg})
}

func writeErrorMessage(c *gin.Context, tag string, err error, msg string) {
	code := statusFor(err)
	log.Printf("%s status=%d err=%v", tag, code, err)
	c.JSON(code, gin.H{"error": msg})
}
