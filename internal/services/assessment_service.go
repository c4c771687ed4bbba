package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"pirlanta/internal/assessment"
	"pirlanta/internal/models"
	"pirlanta/internal/utils"
)

const defaultOTPTTL = 5 * time.Minute

// SessionStore: хранилище сессий опроса (см. repositories.AssessmentSessionRepository).
// GetByID возвращает (nil, nil), если сессии нет.
type SessionStore interface {
	Create(ctx context.Context, s *models.AssessmentSession) error
	GetByID(ctx context.Context, id string) (*models.AssessmentSession, error)
	UpdateOTP(ctx context.Context, id, otp string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, id string, step, progress int) error
	SaveStep(ctx context.Context, s *models.AssessmentSession) error
	MarkReportSent(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, f models.SessionFilter) ([]*models.AssessmentSession, error)
}

// OTPSender доставляет код респонденту (SMS/email)
type OTPSender interface {
	SendOTP(ctx context.Context, s *models.AssessmentSession, code string) error
}

// ReportQueue принимает задачу на генерацию отчёта; false: задача не принята.
type ReportQueue interface {
	Enqueue(task models.ReportTask) bool
}

type AssessmentService struct {
	Store   SessionStore
	OTP     OTPSender   // может быть nil
	Reports ReportQueue // может быть nil
	OTPTTL  time.Duration

	Now     func() time.Time
	NewID   func() string
	NewCode func() (string, error)
}

func NewAssessmentService(store SessionStore, otp OTPSender, reports ReportQueue, otpTTL time.Duration) *AssessmentService {
	if otpTTL <= 0 {
		otpTTL = defaultOTPTTL
	}
	return &AssessmentService{
		Store:   store,
		OTP:     otp,
		Reports: reports,
		OTPTTL:  otpTTL,
		Now:     func() time.Time { return time.Now().UTC() },
		NewID:   uuid.NewString,
		NewCode: func() (string, error) { return utils.NewOTP(utils.DefaultOTPLength) },
	}
}

// Create: новая сессия + сразу выпускаем OTP
func (s *AssessmentService) Create(ctx context.Context, name, phone, email string, termsAccepted bool) (*models.AssessmentSession, error) {
	name, phone, email = strings.TrimSpace(name), strings.TrimSpace(phone), strings.TrimSpace(email)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	case phone == "":
		return nil, fmt.Errorf("%w: phone is required", models.ErrValidation)
	case email == "":
		return nil, fmt.Errorf("%w: email is required", models.ErrValidation)
	case !termsAccepted:
		return nil, fmt.Errorf("%w: terms must be accepted", models.ErrValidation)
	}

	code, err := s.NewCode()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}
	now := s.Now()
	expiresAt := now.Add(s.OTPTTL)

	sess := &models.AssessmentSession{
		ID:            s.NewID(),
		Name:          name,
		Phone:         phone,
		Email:         email,
		TermsAccepted: true,
		OTP:           code,
		OTPExpiresAt:  &expiresAt,
		Answers:       models.StepAnswers{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Create(ctx, sess); err != nil {
		return nil, err
	}
	log.Printf("[assessment][start] session=%s otp_expires_at=%s", sess.ID, expiresAt.Format(time.RFC3339))

	s.deliverOTP(ctx, sess, code)
	return sess, nil
}

// ResendOTP: новый код и новый срок. Для уже подтверждённой сессии ничего не делает.
func (s *AssessmentService) ResendOTP(ctx context.Context, sessionID string) (*models.AssessmentSession, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.OTPVerified {
		return sess, nil
	}

	code, err := s.NewCode()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}
	expiresAt := s.Now().Add(s.OTPTTL)
	if err := s.Store.UpdateOTP(ctx, sess.ID, code, expiresAt); err != nil {
		return nil, err
	}
	sess.OTP = code
	sess.OTPExpiresAt = &expiresAt
	log.Printf("[assessment][resend] session=%s otp_expires_at=%s", sess.ID, expiresAt.Format(time.RFC3339))

	s.deliverOTP(ctx, sess, code)
	return sess, nil
}

// Verify: true, если код совпал и не истёк. Ошибка только для неизвестной сессии или сбоя хранилища.
// Лимита попыток нет: код и так живёт OTPTTL.
func (s *AssessmentService) Verify(ctx context.Context, sessionID, code string) (bool, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	// повторная верификация не откатывает шаг назад
	if sess.OTPVerified {
		return true, nil
	}
	if sess.OTP == "" || sess.OTPExpiresAt == nil || !s.Now().Before(*sess.OTPExpiresAt) {
		log.Printf("[assessment][verify] session=%s rejected: no otp or expired", sess.ID)
		return false, nil
	}
	if strings.TrimSpace(code) != sess.OTP {
		log.Printf("[assessment][verify] session=%s rejected: code mismatch", sess.ID)
		return false, nil
	}

	if err := s.Store.MarkVerified(ctx, sess.ID, models.AssessmentFirstStep, 0); err != nil {
		return false, err
	}
	log.Printf("[assessment][verify] session=%s verified", sess.ID)
	return true, nil
}

// GetStep: определение шага с подставленным именем и уже сохранёнными ответами.
// Порядок шагов здесь не проверяется: доступ только по otp_verified.
func (s *AssessmentService) GetStep(ctx context.Context, sessionID string, step int) (*models.StepView, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.OTPVerified {
		return nil, models.ErrForbidden
	}
	def, ok := assessment.Step(step)
	if !ok {
		return nil, fmt.Errorf("step %d: %w", step, models.ErrStepNotFound)
	}
	return &models.StepView{
		StepDefinition: assessment.Personalize(def, sess.Name),
		TotalSteps:     models.AssessmentLastStep,
		FormData:       sess.Answers.Step(step),
	}, nil
}

// SubmitStep сохраняет ответы шага и двигает current_step (не назад, не выше 5).
// Переход на 5 ставит задачу на отчёт; её сбой на ответ не влияет.
func (s *AssessmentService) SubmitStep(ctx context.Context, sessionID string, step int, answers map[string]any) (models.StepProgress, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return models.StepProgress{}, err
	}
	if !sess.OTPVerified {
		return models.StepProgress{}, models.ErrForbidden
	}
	if _, ok := assessment.Step(step); !ok {
		return models.StepProgress{}, fmt.Errorf("step %d: %w", step, models.ErrStepNotFound)
	}
	if answers == nil {
		return models.StepProgress{}, fmt.Errorf("%w: form_data is required", models.ErrValidation)
	}

	prevStep := sess.CurrentStep
	next := step + 1
	if next > models.AssessmentMaxStep {
		next = models.AssessmentMaxStep
	}
	if next < prevStep {
		next = prevStep
	}

	if sess.Answers == nil {
		sess.Answers = models.StepAnswers{}
	}
	sess.Answers[step] = answers
	sess.CurrentStep = next
	sess.Progress = models.ProgressFor(next)

	justCompleted := prevStep <= models.AssessmentLastStep && sess.IsComplete()
	if justCompleted && sess.CompletedAt == nil {
		now := s.Now()
		sess.CompletedAt = &now
	}

	if err := s.Store.SaveStep(ctx, sess); err != nil {
		return models.StepProgress{}, err
	}
	log.Printf("[assessment][submit] session=%s step=%d current_step=%d progress=%d", sess.ID, step, sess.CurrentStep, sess.Progress)

	if justCompleted {
		s.enqueueReport(sess.ID)
	}
	return models.StepProgress{CurrentStep: sess.CurrentStep, Progress: sess.Progress}, nil
}

func (s *AssessmentService) GetState(ctx context.Context, sessionID string) (*models.SessionView, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view := sess.View()
	return &view, nil
}

// ===== админка =====

func (s *AssessmentService) ListSessions(ctx context.Context, f models.SessionFilter) ([]models.SessionView, error) {
	list, err := s.Store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]models.SessionView, 0, len(list))
	for _, sess := range list {
		out = append(out, sess.View())
	}
	return out, nil
}

// SessionDetail: сессия + посчитанные баллы и код отчёта
func (s *AssessmentService) SessionDetail(ctx context.Context, sessionID string) (*models.SessionDetail, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	scores := ComputeScores(sess.Answers)
	return &models.SessionDetail{
		SessionView:  sess.View(),
		Scores:       scores,
		ScoreMessage: ScoreMessage(scores.Overall),
		SurveyCode:   SurveyCode(sess.ID),
	}, nil
}

// RequeueReport: повторная отправка отчёта (админка). Только для завершённых сессий.
func (s *AssessmentService) RequeueReport(ctx context.Context, sessionID string) error {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if !sess.IsComplete() {
		return fmt.Errorf("%w: assessment is not complete", models.ErrValidation)
	}
	if s.Reports == nil || !s.Reports.Enqueue(models.ReportTask{SessionID: sess.ID}) {
		return fmt.Errorf("%w: report queue unavailable", models.ErrExternalService)
	}
	return nil
}

// ===== helpers =====

func (s *AssessmentService) load(ctx context.Context, sessionID string) (*models.AssessmentSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, models.ErrSessionNotFound
	}
	sess, err := s.Store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, models.ErrSessionNotFound
	}
	return sess, nil
}

func (s *AssessmentService) deliverOTP(ctx context.Context, sess *models.AssessmentSession, code string) {
	if s.OTP == nil {
		return
	}
	if err := s.OTP.SendOTP(ctx, sess, code); err != nil {
		log.Printf("[assessment][otp] delivery failed session=%s: %v", sess.ID, err)
	}
}

func (s *AssessmentService) enqueueReport(sessionID string) {
	if s.Reports == nil {
		log.Printf("[assessment][report] no report queue configured, session=%s", sessionID)
		return
	}
	if !s.Reports.Enqueue(models.ReportTask{SessionID: sessionID}) {
		log.Printf("[assessment][report] enqueue rejected, session=%s", sessionID)
	}
}
