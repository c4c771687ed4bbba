package models

// ===== Главная страница =====

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Brand struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
}

type Hero struct {
	Headline     string   `json:"headline"`
	Subhead      string   `json:"subhead"`
	Description  string   `json:"description"`
	Badges       []string `json:"badges"`
	CTAPrimary   Link     `json:"ctaPrimary"`
	CTASecondary Link     `json:"ctaSecondary"`
	Stats        []Stat   `json:"stats"`
}

type ServiceCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ContactBlock struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type HomePage struct {
	Brand    Brand         `json:"brand"`
	Nav      []Link        `json:"nav"`
	Hero     Hero          `json:"hero"`
	Services []ServiceCard `json:"services"`
	Partners []string      `json:"partners"`
	Contact  ContactBlock  `json:"contact"`
}

// ===== Карта атак (статичный снимок) =====

type MapAttack struct {
	ID            string `json:"id"`
	SourceCountry string `json:"source_country"`
	TargetCountry string `json:"target_country"`
	SourceIP      string `json:"source_ip"`
	TargetIP      string `json:"target_ip"`
	AttackType    string `json:"attack_type"`
	Severity      string `json:"severity"`
	Timestamp     string `json:"timestamp"`
}

type MapStats struct {
	ThreatsBlocked int    `json:"threats_blocked"`
	Systems        int    `json:"systems"`
	Monitors       string `json:"monitors"`
}

type ThreatMapSnapshot struct {
	Status  string      `json:"status"`
	Attacks []MapAttack `json:"attacks"`
	Stats   MapStats    `json:"stats"`
}
