package models

// Threat: одна атака в демо-ленте
type Threat struct {
	Origin    string `json:"origin"`
	Target    string `json:"target"`
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Timestamp string `json:"timestamp"`
}
