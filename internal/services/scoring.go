package services

import (
	"pirlanta/internal/assessment"
	"pirlanta/internal/models"
)

// IndustryAverage: фиксированное значение для сравнения в отчёте, не вычисляется.
const IndustryAverage = 55

// Значения по умолчанию, если в измерении нет ни одного ответа
const (
	defaultCustomersScore  = 40
	defaultWorkplaceScore  = 45
	defaultOperationsScore = 50
)

var (
	sellingChannelWeights = map[string]int{"offline": 10, "mobile": 25, "website": 25, "ecommerce": 25, "social": 20, "whatsapp": 20}
	commChannelWeights    = map[string]int{"intranet": 30, "email": 20, "whatsapp": 15, "mobile": 15}
	connectivityWeights   = map[string]int{"ill": 35, "sdwan": 30, "wifi": 20, "broadband": 15, "none": 0}

	adoptionScale  = map[string]int{"no_plans": 0, "planned": 25, "implementing": 60, "in_use": 100}
	trainingScale  = map[string]int{"never": 0, "rarely": 20, "sometimes": 50, "regularly": 100}
	iotScale       = map[string]int{"no": 0, "planning": 30, "limited": 60, "extensive": 100}
	itNetworkScale = map[string]int{"in_house": 40, "managed": 70, "hybrid": 80, "outsourced": 60}
	aiUsageScale   = map[string]int{"no_plans": 0, "planning": 30, "implementation": 70, "adopted": 100}
)

var (
	customerKeys   = []string{assessment.KeySellingChannels, assessment.KeyDigitalPriorities, assessment.KeyAIMLProcesses}
	workplaceKeys  = []string{assessment.KeyCommunicationChannels, assessment.KeyGoogleWorkspace, assessment.KeyHRMS, assessment.KeyMicrosoft365}
	operationsKeys = []string{
		assessment.KeyInternetConnectivity, assessment.KeySecureEmail, assessment.KeySecureBrowsing,
		assessment.KeyCloudFirewall, assessment.KeyOnPremFirewall, assessment.KeyIoTUsage,
	}
	operationsStep2Keys = []string{assessment.KeyITNetwork, assessment.KeyAIMLUsage}
)

// ComputeScores считает три измерения и общий балл по ответам шагов 2–4.
// Функция чистая: отсутствующие или кривые ответы заменяются значениями по умолчанию.
func ComputeScores(answers models.StepAnswers) models.Scores {
	s2 := answers.Step(2)
	s3 := answers.Step(3)
	s4 := answers.Step(4)

	customers := customersScore(s2)
	workplace := workplaceScore(s2, s4)
	operations := operationsScore(s2, s3)

	overall := clampScore((customers + workplace + operations) / 3)

	return models.Scores{
		Overall:         overall,
		Customers:       clampScore(customers),
		Workplace:       clampScore(workplace),
		Operations:      clampScore(operations),
		IndustryAverage: IndustryAverage,
	}
}

func customersScore(s2 map[string]any) int {
	if !anyAnswered(s2, customerKeys...) {
		return defaultCustomersScore
	}

	var parts []int
	if ch := selected(s2[assessment.KeySellingChannels]); len(ch) > 0 {
		parts = append(parts, weightedCheckbox(ch, sellingChannelWeights))
	}
	// "contains" засчитывается только для списка; одиночная строка не считается выбором опции
	prio, prioIsList := checkedList(s2[assessment.KeyDigitalPriorities])
	switch {
	case prioIsList && contains(prio, "channels"):
		parts = append(parts, 25)
	case anyAnswered(s2, assessment.KeyDigitalPriorities):
		parts = append(parts, 10)
	}
	if proc, ok := checkedList(s2[assessment.KeyAIMLProcesses]); ok && contains(proc, "customer") {
		parts = append(parts, 30)
	}
	return meanOr(parts, defaultCustomersScore)
}

func workplaceScore(s2, s4 map[string]any) int {
	if !anyAnswered(s4, workplaceKeys...) && !anyAnswered(s2, assessment.KeyTrainingFrequency) {
		return defaultWorkplaceScore
	}

	var parts []int
	if comm := selected(s4[assessment.KeyCommunicationChannels]); len(comm) > 0 {
		parts = append(parts, weightedCheckbox(comm, commChannelWeights))
	}
	for _, key := range []string{assessment.KeyGoogleWorkspace, assessment.KeyHRMS, assessment.KeyMicrosoft365} {
		parts = append(parts, scaleValue(s4[key], adoptionScale))
	}
	parts = append(parts, scaleValue(s2[assessment.KeyTrainingFrequency], trainingScale))
	return meanOr(parts, defaultWorkplaceScore)
}

func operationsScore(s2, s3 map[string]any) int {
	if !anyAnswered(s3, operationsKeys...) && !anyAnswered(s2, operationsStep2Keys...) {
		return defaultOperationsScore
	}

	var parts []int
	if conn := selected(s3[assessment.KeyInternetConnectivity]); len(conn) > 0 {
		parts = append(parts, weightedCheckbox(conn, connectivityWeights))
	}
	for _, key := range []string{assessment.KeySecureEmail, assessment.KeySecureBrowsing, assessment.KeyCloudFirewall, assessment.KeyOnPremFirewall} {
		parts = append(parts, scaleValue(s3[key], adoptionScale))
	}
	parts = append(parts, scaleValue(s3[assessment.KeyIoTUsage], iotScale))
	parts = append(parts, scaleValue(s2[assessment.KeyITNetwork], itNetworkScale))
	parts = append(parts, scaleValue(s2[assessment.KeyAIMLUsage], aiUsageScale))
	return meanOr(parts, defaultOperationsScore)
}

// weightedCheckbox: сумма весов выбранных опций к сумме всех весов вопроса, в процентах.
// Неизвестные опции дают 0; повторы считаются один раз, поэтому больше 100 не бывает.
func weightedCheckbox(selected []string, weights map[string]int) int {
	maxPossible := 0
	for _, w := range weights {
		maxPossible += w
	}
	if maxPossible == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(selected))
	total := 0
	for _, opt := range selected {
		if _, dup := seen[opt]; dup {
			continue
		}
		seen[opt] = struct{}{}
		total += weights[opt]
	}

	return total * 100 / maxPossible
}

// ScoreMessage: текст под общим баллом; границы 80/60/40.
func ScoreMessage(overall int) string {
	switch {
	case overall >= 80:
		return "Your business shows excellent digital maturity! You're well-positioned for future growth."
	case overall >= 60:
		return "Your business has made good progress on its digital journey. There are opportunities to strengthen further."
	case overall >= 40:
		return "Your business has begun its digital transformation. We can help you accelerate and fill the gaps."
	default:
		return "There's significant opportunity to digitally transform your business. Let's get started!"
	}
}

// ===== helpers =====

func scaleValue(v any, scale map[string]int) int {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	return scale[s]
}

// selected приводит ответ чекбокса к списку строк (JSON даёт []any, одиночное значение: string).
func selected(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// checkedList: ответ чекбокса, только если он пришёл списком
func checkedList(v any) ([]string, bool) {
	switch v.(type) {
	case []string, []any:
		return selected(v), true
	}
	return nil, false
}

func anyAnswered(answers map[string]any, keys ...string) bool {
	for _, k := range keys {
		switch t := answers[k].(type) {
		case nil:
			continue
		case string:
			if t != "" {
				return true
			}
		case []any:
			if len(selected(t)) > 0 {
				return true
			}
		case []string:
			if len(t) > 0 {
				return true
			}
		}
	}
	return false
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func meanOr(parts []int, fallback int) int {
	if len(parts) == 0 {
		return fallback
	}
	sum := 0
	for _, p := range parts {
		sum += p
	}
	return sum / len(parts)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
