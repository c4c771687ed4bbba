package services

import (
	"strings"
	"time"
	"unicode"

	"pirlanta/internal/assessment"
	"pirlanta/internal/models"
)

const (
	SurveyCodePrefix   = "PIR-"
	surveyCodeLength   = 8
	reportDateLayout   = "02 January 2006"
	fallbackReportName = "Valued Customer"
)

// SurveyCode: "PIR-" + первые 8 букв/цифр id в верхнем регистре. Один id, один код.
func SurveyCode(sessionID string) string {
	var b strings.Builder
	b.WriteString(SurveyCodePrefix)
	n := 0
	for _, r := range sessionID {
		if n == surveyCodeLength {
			break
		}
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		n++
	}
	return b.String()
}

// BuildReportContext собирает всё, что нужно шаблону отчёта
func BuildReportContext(s *models.AssessmentSession, now time.Time) models.ReportContext {
	scores := ComputeScores(s.Answers)

	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = fallbackReportName
	}
	company, _ := s.Answers.Step(1)[assessment.KeyCompanyName].(string)

	return models.ReportContext{
		FullName:     name,
		CompanyName:  strings.TrimSpace(company),
		Email:        s.Email,
		ReportDate:   now.Format(reportDateLayout),
		Scores:       scores,
		ScoreMessage: ScoreMessage(scores.Overall),
		SurveyCode:   SurveyCode(s.ID),
	}
}
