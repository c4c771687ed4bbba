package models

// Scores: итог скоринга; имена полей совпадают с шаблоном отчёта.
type Scores struct {
	Overall         int `json:"overall_score"`
	Customers       int `json:"digital_customers_score"`
	Workplace       int `json:"digital_workplace_score"`
	Operations      int `json:"digital_operations_score"`
	IndustryAverage int `json:"industry_average"`
}

type ReportContext struct {
	FullName     string `json:"full_name"`
	CompanyName  string `json:"company_name,omitempty"`
	Email        string `json:"email"`
	ReportDate   string `json:"report_date"`
	Scores       Scores `json:"scores"`
	ScoreMessage string `json:"score_message"`
	SurveyCode   string `json:"survey_code"`
	LogoPath     string `json:"-"`
}

// ReportTask: задача для воркера отчётов
type ReportTask struct {
	SessionID string
	Attempt   int
}

// SessionDetail: карточка сессии в админке
type SessionDetail struct {
	SessionView
	Scores       Scores `json:"scores"`
	ScoreMessage string `json:"score_message"`
	SurveyCode   string `json:"survey_code"`
}
