package models

type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionDropdown QuestionType = "dropdown"
	QuestionRadio    QuestionType = "radio"
	QuestionCheckbox QuestionType = "checkbox"
)

type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	HasOther bool   `json:"hasOther,omitempty"`
}

type Question struct {
	Key            string       `json:"key"`
	Label          string       `json:"label,omitempty"`
	Text           string       `json:"text,omitempty"`
	SubQuestion    string       `json:"sub_question,omitempty"`
	Hint           string       `json:"hint,omitempty"`
	Type           QuestionType `json:"type"`
	Placeholder    string       `json:"placeholder,omitempty"`
	Required       bool         `json:"required"`
	DetectLocation bool         `json:"detectLocation,omitempty"`
	Options        []Option     `json:"options,omitempty"`
}

// StepDefinition: статическое описание шага. У шага 1 поля анкеты (Fields),
// у шагов 2–4: вопросы (Questions).
type StepDefinition struct {
	Step      int        `json:"step"`
	Title     string     `json:"title"`
	Fields    []Question `json:"fields,omitempty"`
	Questions []Question `json:"questions,omitempty"`
}

// StepView: шаг для конкретного респондента + уже сохранённые ответы
type StepView struct {
	StepDefinition
	TotalSteps int            `json:"total_steps"`
	FormData   map[string]any `json:"form_data,omitempty"`
}

type Benefit struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}
