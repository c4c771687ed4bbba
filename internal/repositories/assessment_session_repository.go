package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pirlanta/internal/models"
)

type AssessmentSessionRepository struct {
	db *sql.DB
}

func NewAssessmentSessionRepository(db *sql.DB) *AssessmentSessionRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &AssessmentSessionRepository{db: db}
}

const sessionColumns = `id, name, phone, email, terms_accepted, otp, otp_expires_at, otp_verified,
	current_step, progress_percent, form_data, created_at, updated_at, completed_at, report_sent_at`

func (r *AssessmentSessionRepository) Create(ctx context.Context, s *models.AssessmentSession) error {
	answers, err := encodeAnswers(s.Answers)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO assessment_sessions (id, name, phone, email, terms_accepted, otp, otp_expires_at,
			otp_verified, current_step, progress_percent, form_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	if _, err := r.db.ExecContext(ctx, q,
		s.ID, s.Name, s.Phone, s.Email, s.TermsAccepted, s.OTP, nullTime(s.OTPExpiresAt),
		s.OTPVerified, s.CurrentStep, s.Progress, answers, s.CreatedAt, s.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create assessment session: %w", err)
	}
	return nil
}

// GetByID: (nil, nil), если сессии нет
func (r *AssessmentSessionRepository) GetByID(ctx context.Context, id string) (*models.AssessmentSession, error) {
	q := `SELECT ` + sessionColumns + ` FROM assessment_sessions WHERE id = $1`
	s, err := scanSession(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assessment session: %w", err)
	}
	return s, nil
}

func (r *AssessmentSessionRepository) UpdateOTP(ctx context.Context, id, otp string, expiresAt time.Time) error {
	const q = `UPDATE assessment_sessions SET otp = $1, otp_expires_at = $2, updated_at = $3 WHERE id = $4`
	return r.execOne(ctx, "update otp", q, otp, expiresAt, time.Now().UTC(), id)
}

func (r *AssessmentSessionRepository) MarkVerified(ctx context.Context, id string, step, progress int) error {
	const q = `
		UPDATE assessment_sessions
		SET otp_verified = $1, current_step = $2, progress_percent = $3, updated_at = $4
		WHERE id = $5
	`
	return r.execOne(ctx, "mark verified", q, true, step, progress, time.Now().UTC(), id)
}

// SaveStep: пишет ответы, шаг, прогресс и completed_at
func (r *AssessmentSessionRepository) SaveStep(ctx context.Context, s *models.AssessmentSession) error {
	answers, err := encodeAnswers(s.Answers)
	if err != nil {
		return err
	}
	const q = `
		UPDATE assessment_sessions
		SET form_data = $1, current_step = $2, progress_percent = $3, completed_at = $4, updated_at = $5
		WHERE id = $6
	`
	return r.execOne(ctx, "save step", q, answers, s.CurrentStep, s.Progress, nullTime(s.CompletedAt), time.Now().UTC(), s.ID)
}

func (r *AssessmentSessionRepository) MarkReportSent(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE assessment_sessions SET report_sent_at = $1, updated_at = $2 WHERE id = $3`
	return r.execOne(ctx, "mark report sent", q, at, time.Now().UTC(), id)
}

// List для админки: новые сверху, фильтр по верификации и поиск по имени/email/телефону
func (r *AssessmentSessionRepository) List(ctx context.Context, f models.SessionFilter) ([]*models.AssessmentSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM assessment_sessions WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if f.OTPVerified != nil {
		query += fmt.Sprintf(" AND otp_verified = $%d", idx)
		args = append(args, *f.OTPVerified)
		idx++
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d OR phone LIKE $%d)", idx, idx+1, idx+2)
		args = append(args, like, like, "%"+search+"%")
		idx += 3
	}

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assessment sessions: %w", err)
	}
	defer rows.Close()

	var out []*models.AssessmentSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ===== helpers =====

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.AssessmentSession, error) {
	var (
		s          models.AssessmentSession
		otp        sql.NullString
		otpExp     sql.NullTime
		formData   sql.NullString
		completed  sql.NullTime
		reportSent sql.NullTime
	)
	if err := row.Scan(
		&s.ID, &s.Name, &s.Phone, &s.Email, &s.TermsAccepted, &otp, &otpExp, &s.OTPVerified,
		&s.CurrentStep, &s.Progress, &formData, &s.CreatedAt, &s.UpdatedAt, &completed, &reportSent,
	); err != nil {
		return nil, err
	}
	s.OTP = otp.String
	s.OTPExpiresAt = timePtr(otpExp)
	s.CompletedAt = timePtr(completed)
	s.ReportSentAt = timePtr(reportSent)

	answers, err := decodeAnswers(formData.String)
	if err != nil {
		return nil, err
	}
	s.Answers = answers
	return &s, nil
}

func (r *AssessmentSessionRepository) execOne(ctx context.Context, op, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrSessionNotFound)
	}
	return nil
}

// encodeAnswers отдаёт строку, а не []byte (pq отправил бы []byte как bytea)
func encodeAnswers(a models.StepAnswers) (string, error) {
	if a == nil {
		a = models.StepAnswers{}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encode form_data: %w", err)
	}
	return string(b), nil
}

func decodeAnswers(raw string) (models.StepAnswers, error) {
	out := models.StepAnswers{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode form_data: %w", err)
	}
	return out, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
