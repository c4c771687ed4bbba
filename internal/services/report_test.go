package services

import (
	"testing"
	"time"

	"pirlanta/internal/models"
)

func TestSurveyCode(t *testing.T) {
	cases := map[string]string{
		"0b7e5a0e-1f7c-4e0e-9a59-6c1d2f3e4a5b": "PIR-0B7E5A0E",
		"ab-cd-ef-12-34":                       "PIR-ABCDEF12",
		"short":                                "PIR-SHORT",
		"":                                     "PIR-",
	}
	for id, want := range cases {
		if got := SurveyCode(id); got != want {
			t.Errorf("SurveyCode(%q) = %q, want %q", id, got, want)
		}
		if SurveyCode(id) != SurveyCode(id) {
			t.Errorf("SurveyCode(%q) not stable", id)
		}
	}
}

func TestBuildReportContext(t *testing.T) {
	now := time.Date(2026, 3, 7, 15, 4, 0, 0, time.UTC)
	s := &models.AssessmentSession{
		ID:    "11111111-2222-3333-4444-555555555555",
		Name:  "Asha Rao",
		Email: "asha@example.com",
		Answers: models.StepAnswers{
			1: {"company_name": " Acme Traders "},
			2: {"selling_channels": []any{"website", "mobile"}},
		},
	}

	ctx := BuildReportContext(s, now)
	if ctx.FullName != "Asha Rao" || ctx.CompanyName != "Acme Traders" || ctx.Email != "asha@example.com" {
		t.Errorf("identity fields = %+v", ctx)
	}
	if ctx.ReportDate != "07 March 2026" {
		t.Errorf("ReportDate = %q", ctx.ReportDate)
	}
	if ctx.SurveyCode != "PIR-11111111" {
		t.Errorf("SurveyCode = %q", ctx.SurveyCode)
	}
	if ctx.Scores != ComputeScores(s.Answers) || ctx.Scores.IndustryAverage != 55 {
		t.Errorf("Scores = %+v", ctx.Scores)
	}
	if ctx.ScoreMessage != ScoreMessage(ctx.Scores.Overall) {
		t.Errorf("ScoreMessage = %q", ctx.ScoreMessage)
	}
}

func TestBuildReportContext_NameFallback(t *testing.T) {
	s := &models.AssessmentSession{ID: "x", Name: "  "}
	if got := BuildReportContext(s, time.Now()).FullName; got != "Valued Customer" {
		t.Errorf("FullName = %q, want Valued Customer", got)
	}
}
