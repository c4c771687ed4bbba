package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pirlanta/internal/models"
	"pirlanta/internal/services"
)

const (
	defaultSessionsLimit = 50
	maxSessionsLimit     = 200
)

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminHandler struct {
	Auth        *services.AuthService
	Assessments *services.AssessmentService
}

func NewAdminHandler(auth *services.AuthService, assessments *services.AssessmentService) *AdminHandler {
	return &AdminHandler{Auth: auth, Assessments: assessments}
}

// @Summary      Вход в админку
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        body  body      AdminLoginRequest  true  "Логин и пароль"
// @Success      200   {object}  services.AdminToken
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tok, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		if models.IsAuthError(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		writeError(c, "[admin][login]", err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

// @Summary      Список сессий оценки
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        otp_verified  query     bool    false  "Фильтр по верификации"
// @Param        search        query     string  false  "Имя / email / телефон"
// @Param        limit         query     int     false  "Лимит (по умолчанию 50)"
// @Param        offset        query     int     false  "Смещение"
// @Success      200           {object}  map[string]interface{}
// @Failure      400           {object}  map[string]string
// @Failure      401           {object}  map[string]string
// @Router       /admin/sessions [get]
func (h *AdminHandler) ListSessions(c *gin.Context) {
	f := models.SessionFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  defaultSessionsLimit,
	}
	if v := c.Query("otp_verified"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid otp_verified"})
			return
		}
		f.OTPVerified = &b
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if n > maxSessionsLimit {
			n = maxSessionsLimit
		}
		f.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
			return
		}
		f.Offset = n
	}

	items, err := h.Assessments.ListSessions(c.Request.Context(), f)
	if err != nil {
		writeError(c, "[admin][sessions]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"limit":  f.Limit,
		"offset": f.Offset,
	})
}

// @Summary      Карточка сессии
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID сессии"
// @Success      200  {object}  models.SessionDetail
// @Failure      404  {object}  map[string]string
// @Router       /admin/sessions/{id} [get]
func (h *AdminHandler) SessionDetail(c *gin.Context) {
	detail, err := h.Assessments.SessionDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "[admin][session]", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary      Переотправить отчёт
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID сессии"
// @Success      202  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /admin/sessions/{id}/report [post]
func (h *AdminHandler) ResendReport(c *gin.Context) {
	id := c.Param("id")
	if err := h.Assessments.RequeueReport(c.Request.Context(), id); err != nil {
		writeError(c, "[admin][report]", err)
		return
	}
	admin, _ := getAdminAndRole(c)
	log.Printf("[admin][report] requeued session=%s by=%q", id, admin)
	c.JSON(http.StatusAccepted, gin.H{"message": "report queued", "survey_code": services.SurveyCode(id)})
}
