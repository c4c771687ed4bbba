package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pirlanta/internal/models"
	"pirlanta/internal/services"
)

type AssessmentHandler struct {
	Service *services.AssessmentService
}

func NewAssessmentHandler(service *services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{Service: service}
}

// @Summary      Начать оценку
// @Description  Создаёт сессию и отправляет OTP (SMS/email)
// @Tags         Assessment
// @Accept       json
// @Produce      json
// @Param        body  body      models.StartAssessmentRequest  true  "Контакты респондента"
// @Success      201   {object}  models.StartAssessmentResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/assessment/start/ [post]
func (h *AssessmentHandler) Start(c *gin.Context) {
	var req models.StartAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.Service.Create(c.Request.Context(), req.Name, req.Phone, req.Email, req.TermsAccepted)
	if err != nil {
		writeError(c, "[assessment][start]", err)
		return
	}
	c.JSON(http.StatusCreated, models.StartAssessmentResponse{
		SessionID:    sess.ID,
		OTPExpiresIn: int(h.Service.OTPTTL.Seconds()),
	})
}

// @Summary      Повторно отправить OTP
// @Tags         Assessment
// @Accept       json
// @Produce      json
// @Param        body  body      models.SessionIDRequest  true  "Сессия"
// @Success      200   {object}  models.StartAssessmentResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/assessment/resend-otp/ [post]
func (h *AssessmentHandler) ResendOTP(c *gin.Context) {
	var req models.SessionIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.Service.ResendOTP(c.Request.Context(), req.SessionID)
	if err != nil {
		writeError(c, "[assessment][resend]", err)
		return
	}
	expiresIn := 0
	if !sess.OTPVerified {
		expiresIn = int(h.Service.OTPTTL.Seconds())
	}
	c.JSON(http.StatusOK, models.StartAssessmentResponse{SessionID: sess.ID, OTPExpiresIn: expiresIn})
}

// @Summary      Проверить OTP
// @Tags         Assessment
// @Accept       json
// @Produce      json
// @Param        body  body      models.VerifyOTPRequest  true  "Сессия и код"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/assessment/verify-otp/ [post]
func (h *AssessmentHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	ok, err := h.Service.Verify(ctx, req.SessionID, req.OTP)
	if err != nil {
		writeError(c, "[assessment][verify]", err)
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}
	state, err := h.Service.GetState(ctx, req.SessionID)
	if err != nil {
		writeError(c, "[assessment][verify]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"verified":         true,
		"current_step":     state.CurrentStep,
		"progress_percent": state.Progress,
	})
}

// @Summary      Вопросы шага
// @Tags         Assessment
// @Produce      json
// @Param        step        path      int     true  "Шаг 1..4"
// @Param        session_id  query     string  true  "Сессия"
// @Success      200         {object}  models.StepView
// @Failure      400         {object}  map[string]string
// @Failure      403         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /api/assessment/questions/{step}/ [get]
func (h *AssessmentHandler) Questions(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "step not found"})
		return
	}
	view, err := h.Service.GetStep(c.Request.Context(), sessionID, step)
	if err != nil {
		writeError(c, "[assessment][questions]", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Сохранить ответы шага
// @Tags         Assessment
// @Accept       json
// @Produce      json
// @Param        body  body      models.SubmitStepRequest  true  "Ответы"
// @Success      200   {object}  models.StepProgress
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/assessment/submit/ [post]
func (h *AssessmentHandler) Submit(c *gin.Context) {
	var req models.SubmitStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	progress, err := h.Service.SubmitStep(c.Request.Context(), req.SessionID, req.Step, req.FormData)
	if err != nil {
		writeError(c, "[assessment][submit]", err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// @Summary      Состояние сессии
// @Tags         Assessment
// @Produce      json
// @Param        session_id  query     string  true  "Сессия"
// @Success      200         {object}  models.SessionView
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /api/assessment/session/ [get]
func (h *AssessmentHandler) Session(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}
	view, err := h.Service.GetState(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, "[assessment][session]", err)
		return
	}
	c.JSON(http.StatusOK, view)
}
