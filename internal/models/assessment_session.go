package models

import "time"

const (
	AssessmentFirstStep = 1
	AssessmentLastStep  = 4
	// AssessmentMaxStep: current_step после сдачи последнего шага
	AssessmentMaxStep = 5
)

// StepAnswers хранит ответы по шагам, step -> key -> значение (строка или список для чекбоксов).
type StepAnswers map[int]map[string]any

// Step возвращает ответы шага; для отсутствующего шага: nil.
func (a StepAnswers) Step(step int) map[string]any {
	if a == nil {
		return nil
	}
	return a[step]
}

type AssessmentSession struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email"`
	TermsAccepted bool        `json:"terms_accepted"`
	OTP           string      `json:"-"` // код наружу не отдаём
	OTPExpiresAt  *time.Time  `json:"otp_expires_at,omitempty"`
	OTPVerified   bool        `json:"otp_verified"`
	CurrentStep   int         `json:"current_step"`
	Progress      int         `json:"progress_percent"`
	Answers       StepAnswers `json:"form_data"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	ReportSentAt  *time.Time  `json:"report_sent_at,omitempty"`
}

// ProgressFor: floor(step/5*100)
func ProgressFor(step int) int {
	if step <= 0 {
		return 0
	}
	if step >= AssessmentMaxStep {
		return 100
	}
	return step * 100 / AssessmentMaxStep
}

// IsComplete: все четыре шага сданы
func (s *AssessmentSession) IsComplete() bool {
	return s.CurrentStep > AssessmentLastStep
}

// SessionView: read-only проекция сессии (без OTP-кода).
type SessionView struct {
	ID            string      `json:"session_id"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email"`
	TermsAccepted bool        `json:"terms_accepted"`
	OTPExpiresAt  *time.Time  `json:"otp_expires_at,omitempty"`
	OTPVerified   bool        `json:"otp_verified"`
	CurrentStep   int         `json:"current_step"`
	Progress      int         `json:"progress_percent"`
	Answers       StepAnswers `json:"form_data"`
	CreatedAt     time.Time   `json:"created_at"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	ReportSentAt  *time.Time  `json:"report_sent_at,omitempty"`
}

func (s *AssessmentSession) View() SessionView {
	return SessionView{
		ID:            s.ID,
		Name:          s.Name,
		Phone:         s.Phone,
		Email:         s.Email,
		TermsAccepted: s.TermsAccepted,
		OTPExpiresAt:  s.OTPExpiresAt,
		OTPVerified:   s.OTPVerified,
		CurrentStep:   s.CurrentStep,
		Progress:      s.Progress,
		Answers:       s.Answers,
		CreatedAt:     s.CreatedAt,
		CompletedAt:   s.CompletedAt,
		ReportSentAt:  s.ReportSentAt,
	}
}

// SessionFilter: фильтр списка для админки
type SessionFilter struct {
	OTPVerified *bool
	Search      string
	Limit       int
	Offset      int
}

// ===== Запросы/ответы API =====

type StartAssessmentRequest struct {
	Name          string `json:"name" example:"Asha Rao"`
	Phone         string `json:"phone" example:"+919800000000"`
	Email         string `json:"email" example:"asha@example.com"`
	TermsAccepted bool   `json:"terms_accepted"`
}

type StartAssessmentResponse struct {
	SessionID    string `json:"session_id"`
	OTPExpiresIn int    `json:"otp_expires_in"`
}

type SessionIDRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type VerifyOTPRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	OTP       string `json:"otp"`
}

type SubmitStepRequest struct {
	SessionID string         `json:"session_id" binding:"required"`
	Step      int            `json:"step"`
	FormData  map[string]any `json:"form_data"`
}

type StepProgress struct {
	CurrentStep int `json:"current_step"`
	Progress    int `json:"progress_percent"`
}
