package services

import "pirlanta/internal/models"

// SiteService отдаёт статичный контент лендинга
type SiteService struct{}

func NewSiteService() *SiteService { return &SiteService{} }

func (s *SiteService) Home() models.HomePage {
	return models.HomePage{
		Brand: models.Brand{Name: "Pirlanta", Tagline: "Secure & Scalable Solution Provider"},
		Nav: []models.Link{
			{Label: "Home", Href: "#home"},
			{Label: "About Us", Href: "#about"},
			{Label: "Threat Map", Href: "#threat-map"},
			{Label: "Services", Href: "#services"},
			{Label: "Partners", Href: "#partners"},
			{Label: "Contact Us", Href: "#contact"},
		},
		Hero: models.Hero{
			Headline: "Expert-Led. AI-Powered.",
			Subhead:  "Cybersecurity Services for the AI Era",
			Description: "AI-driven threat detection, expert implementation, and measurable outcomes. " +
				"Powered by Cisco, Fortinet, and industry-leading AI platforms.",
			Badges:       []string{"48+ Years Experience", "AI-Enhanced Operations"},
			CTAPrimary:   models.Link{Label: "Get Started", Href: "#contact"},
			CTASecondary: models.Link{Label: "Learn More", Href: "#services"},
			Stats: []models.Stat{
				{Label: "Threats Blocked", Value: "14,546"},
				{Label: "Systems", Value: "156+"},
				{Label: "Monitors", Value: "24/7"},
			},
		},
		Services: []models.ServiceCard{
			{Title: "Threat Detection & Response", Description: "AI-enhanced monitoring, triage, and rapid containment."},
			{Title: "Security Architecture", Description: "Zero-trust design and implementation for modern environments."},
			{Title: "Managed Security", Description: "End-to-end management with real-time analytics and reporting."},
		},
		Partners: []string{"Cisco", "Fortinet", "Palo Alto Networks", "Microsoft"},
		Contact: models.ContactBlock{
			Title:    "Talk to a security expert",
			Subtitle: "Tell us about your environment and we'll recommend a plan.",
		},
	}
}

func (s *SiteService) ThreatMap() models.ThreatMapSnapshot {
	return models.ThreatMapSnapshot{
		Status: "ok",
		Attacks: []models.MapAttack{
			{
				ID: "atk-001", SourceCountry: "United States", TargetCountry: "India",
				SourceIP: "203.0.113.42", TargetIP: "198.51.100.24",
				AttackType: "Malware", Severity: "high", Timestamp: "2026-02-08T08:59:14Z",
			},
			{
				ID: "atk-002", SourceCountry: "Germany", TargetCountry: "United Kingdom",
				SourceIP: "198.51.100.71", TargetIP: "203.0.113.19",
				AttackType: "Phishing", Severity: "medium", Timestamp: "2026-02-08T08:59:40Z",
			},
		},
		Stats: models.MapStats{ThreatsBlocked: 15997, Systems: 156, Monitors: "24/7"},
	}
}
