// Package assessment содержит статическую таблицу вопросов опроса (шаги 1–4).
package assessment

import (
	"sort"
	"strings"

	"pirlanta/internal/models"
)

// NamePlaceholder подставляется в заголовок шага (первое имя респондента)
const NamePlaceholder = "{name}"

// Ключи вопросов, которые участвуют в скоринге
const (
	KeyCompanyName           = "company_name"
	KeyDigitalPriorities     = "digital_priorities"
	KeyAIMLUsage             = "ai_ml_usage"
	KeyAIMLProcesses         = "ai_ml_processes"
	KeySellingChannels       = "selling_channels"
	KeyITNetwork             = "it_network"
	KeyTrainingFrequency     = "training_frequency"
	KeyInternetConnectivity  = "internet_connectivity"
	KeySecureEmail           = "secure_email"
	KeySecureBrowsing        = "secure_browsing"
	KeyCloudFirewall         = "cloud_firewall"
	KeyOnPremFirewall        = "onprem_firewall"
	KeyIoTUsage              = "iot_usage"
	KeyCommunicationChannels = "communication_channels"
	KeyGoogleWorkspace       = "google_workspace"
	KeyHRMS                  = "hrms"
	KeyMicrosoft365          = "microsoft_365"
)

func opts(pairs ...string) []models.Option {
	out := make([]models.Option, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Option{Value: pairs[i], Label: pairs[i+1]})
	}
	return out
}

var adoptionOptions = opts(
	"no_plans", "No plans",
	"planned", "Being planned",
	"implementing", "Being implemented",
	"in_use", "Already in use",
)

func adoption(key, text, sub string) models.Question {
	return models.Question{
		Key:         key,
		Text:        text,
		SubQuestion: sub,
		Type:        models.QuestionRadio,
		Required:    true,
		Options:     adoptionOptions,
	}
}

var steps = map[int]models.StepDefinition{
	1: {
		Step:  1,
		Title: "hello! " + NamePlaceholder + ", please fill out your details",
		Fields: []models.Question{
			{Key: KeyCompanyName, Label: "company name", Type: models.QuestionText, Placeholder: "company name", Required: true},
			{Key: "role", Label: "select role", Type: models.QuestionDropdown, Placeholder: "select role", Required: true, Options: opts(
				"owner", "Owner", "manager", "Manager", "director", "Director", "executive", "Executive", "other", "Other",
			)},
			{Key: "industry", Label: "industry", Type: models.QuestionDropdown, Placeholder: "industry", Required: true, Options: opts(
				"it", "IT/Software", "finance", "Finance", "healthcare", "Healthcare",
				"retail", "Retail", "manufacturing", "Manufacturing", "other", "Other",
			)},
			{Key: "core_business", Label: "core business", Type: models.QuestionDropdown, Placeholder: "core business", Required: true, Options: opts(
				"b2b", "B2B", "b2c", "B2C", "both", "Both", "other", "Other",
			)},
			{Key: "turnover", Label: "indicative turnover (inr)", Type: models.QuestionDropdown, Placeholder: "indicative turnover", Required: true, Options: opts(
				"0-10", "Under 10 Lakhs", "10-50", "10 Lakhs - 50 Lakhs", "50-100", "50 Lakhs - 1 Crore",
				"1-10", "1 Crore - 10 Crore", "10+", "Above 10 Crore",
			)},
			{Key: "pincode", Label: "pincode", Type: models.QuestionText, Placeholder: "pincode", Required: true, DetectLocation: true},
			{Key: "employees", Label: "number of employees", Type: models.QuestionDropdown, Placeholder: "number of employees", Required: true, Options: opts(
				"1-10", "1-10", "11-50", "11-50", "51-100", "51-100", "101-500", "101-500", "500+", "500+",
			)},
			{Key: "office_locations", Label: "no. of office locations", Type: models.QuestionDropdown, Placeholder: "No. of office locations", Required: true, Options: opts(
				"1", "1", "2-5", "2-5", "6-10", "6-10", "10+", "10+",
			)},
			{Key: "age", Label: "select age", Type: models.QuestionDropdown, Placeholder: "select age", Required: true, Options: opts(
				"18-25", "18-25", "26-35", "26-35", "36-45", "36-45", "46-55", "46-55", "55+", "55+",
			)},
			{Key: "gender", Label: "select gender", Type: models.QuestionDropdown, Placeholder: "select gender", Required: true, Options: opts(
				"male", "Male", "female", "Female", "other", "Other", "prefer_not", "Prefer not to say",
			)},
		},
	},
	2: {
		Step:  2,
		Title: "let's understand your digital strategy & management style...",
		Questions: []models.Question{
			{Key: KeyDigitalPriorities, Text: "What are the top digital priorities for your business in the present year? *", Type: models.QuestionCheckbox, Required: true, Options: opts(
				"channels", "Digitalizing channels of acquiring and engaging customers",
				"operations", "Digitalizing business operations, processes and technical infrastructure",
				"office", "Digitalizing office operations to improve employee productivity",
				"none", "None of the above",
			)},
			{Key: KeyAIMLUsage, Text: "Do you use AI or ML in any of your business processes? *", Type: models.QuestionRadio, Required: true, Options: opts(
				"no_plans", "No plans", "planning", "In planning", "implementation", "In implementation", "adopted", "Already adopted",
			)},
			{Key: KeyAIMLProcesses, Text: "In which of the processes do you use AI or ML in your organization? *", Type: models.QuestionCheckbox, Required: true, Options: []models.Option{
				{Value: "customer", Label: "In customer acquisition, engagement and servicing"},
				{Value: "operations", Label: "In business operations and process optimization/automation"},
				{Value: "productivity", Label: "To enhance workplace productivity and collaboration"},
				{Value: "others", Label: "Others", HasOther: true},
			}},
			{Key: KeySellingChannels, Text: "Which channels do you use for selling your products & services? *", Type: models.QuestionCheckbox, Required: true, Options: opts(
				"offline", "Offline channels",
				"mobile", "Mobile applications",
				"website", "Own website",
				"ecommerce", "Other e-commerce platforms",
				"social", "Social media marketplace",
				"whatsapp", "WhatsApp Business",
			)},
			{Key: KeyITNetwork, Text: "How is your IT Network setup managed? *", Type: models.QuestionDropdown, Required: true, Options: opts(
				"in_house", "In-house", "managed", "Managed service provider", "hybrid", "Hybrid", "outsourced", "Fully outsourced",
			)},
			{Key: KeyTrainingFrequency, Text: "How often is training provided for your employees to improve their digital skills? *", Type: models.QuestionRadio, Required: true, Options: opts(
				"never", "Never", "rarely", "Rarely", "sometimes", "Sometimes", "regularly", "Regularly",
			)},
		},
	},
	3: {
		Step:  3,
		Title: "tell us about your company's digital operations...",
		Questions: []models.Question{
			{Key: KeyInternetConnectivity, Text: "What types of internet connectivity are available across your office locations? *", Hint: "(You can select more than one option)", Type: models.QuestionCheckbox, Required: true, Options: opts(
				"ill", "Internet Leased Lines (ILL)",
				"sdwan", "Hybrid SD-WAN",
				"wifi", "Enterprise Wi-Fi",
				"broadband", "Broadband",
				"none", "None of the above",
			)},
			adoption(KeySecureEmail, "What is the usage status of the following digital security measure to protect your business? *", "Secure Email Communication *"),
			adoption(KeySecureBrowsing, "Secure Internet Browsing Activity *", ""),
			adoption(KeyCloudFirewall, "Cloud Firewall *", ""),
			adoption(KeyOnPremFirewall, "Managed On Premise Firewall *", ""),
			{Key: KeyIoTUsage, Text: "Do you use IoT (Internet of Things) in your business operations? *",
				Hint: "(IoT connects everyday devices to the internet, enabling smarter functions such as tracking and monitoring assets like machinery, inventory, and personnel across warehouses, shops, and plants)",
				Type: models.QuestionDropdown, Required: true, Options: opts(
					"no", "No", "planning", "Planning to use", "limited", "Limited use", "extensive", "Extensive use",
				)},
		},
	},
	4: {
		Step:  4,
		Title: "let's know more about your company's digital workspace...",
		Questions: []models.Question{
			{Key: KeyCommunicationChannels, Text: "What communication channels do you use to make sure your team can always communicate digitally? *", Hint: "(You can select more than one option)", Type: models.QuestionCheckbox, Required: true, Options: opts(
				"intranet", "Corporate intranet platform (workplace)",
				"email", "Emails",
				"whatsapp", "WhatsApp Business account",
				"mobile", "Company-paid mobile postpaid connections",
			)},
			adoption(KeyGoogleWorkspace, "Do you use any of the following employee productivity and automation application? *", "Google Workspace *"),
			adoption(KeyHRMS, "HRMS For Automating HR Processes *", ""),
			adoption(KeyMicrosoft365, "Microsoft 365 *", ""),
		},
	},
}

// ReadyForNextBenefits: блок «ready for next» в PDF-отчёте
var ReadyForNextBenefits = []models.Benefit{
	{Icon: "rocket", Text: "Accelerated Recovery For Mission-Critical Systems."},
	{Icon: "dollar", Text: "Lower Costs With Modern Infrastructure And Automation."},
	{Icon: "cloud", Text: "Audit-Ready Compliance Across Hybrid Cloud Environments."},
	{Icon: "growth", Text: "Scalable Solutions To Support Business Innovation And Growth."},
	{Icon: "shield", Text: "Enhanced Security Posture Aligned With Global Resilience Standards."},
}

// Step возвращает определение шага; ok=false для шага вне 1..4.
func Step(step int) (models.StepDefinition, bool) {
	def, ok := steps[step]
	return def, ok
}

// Steps: номера определённых шагов по возрастанию
func Steps() []int {
	out := make([]int, 0, len(steps))
	for n := range steps {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Personalize подставляет первое имя респондента в заголовок.
// Исходная таблица не меняется.
func Personalize(def models.StepDefinition, fullName string) models.StepDefinition {
	def.Title = strings.ReplaceAll(def.Title, NamePlaceholder, FirstName(fullName))
	return def
}

func FirstName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
