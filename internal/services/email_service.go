package services

import (
	"fmt"
	"html"
	"io"
	"log"
	"time"

	"gopkg.in/gomail.v2"

	"pirlanta/internal/models"
)

type EmailService interface {
	SendOTPEmail(to, name, code string, ttl time.Duration) error
	SendReportEmail(to string, rc models.ReportContext, pdf []byte) error
	SendContactEmail(msg models.ContactMessage) error
}

// mailSender: то, что умеет *gomail.Dialer (в тестах подменяется)
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer mailSender
	from   string
	sales  string
}

// NewEmailService: если smtpHost пустой, письма только логируются (dev)
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, salesEmail string) EmailService {
	var dialer mailSender
	if smtpHost != "" {
		dialer = gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	}
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
		sales:  salesEmail,
	}
}

func (s *emailService) SendOTPEmail(to, name, code string, ttl time.Duration) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your Pirlanta verification code")

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Use this code to start the digital readiness assessment:</p>
		<p><strong>%s</strong></p>
		<p>The code expires in %d minutes.</p>
		<p>If you did not request it, you can ignore this email.</p>
	`, html.EscapeString(name), code, int(ttl.Minutes()))
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}

func (s *emailService) SendReportEmail(to string, rc models.ReportContext, pdf []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	if s.sales != "" {
		m.SetHeader("Bcc", s.sales)
	}
	m.SetHeader("Subject", fmt.Sprintf("Your Digital Readiness Report (%s)", rc.SurveyCode))

	body := fmt.Sprintf(`
		<h2>Thank you, %s!</h2>
		<p>Your overall digital maturity score is <strong>%d / 100</strong> (industry average %d).</p>
		<p>%s</p>
		<p>The full report is attached. Survey code: %s</p>
		<p>Best regards,<br>The Pirlanta Team</p>
	`, html.EscapeString(rc.FullName), rc.Scores.Overall, rc.Scores.IndustryAverage,
		html.EscapeString(rc.ScoreMessage), rc.SurveyCode)
	m.SetBody("text/html", body)

	m.Attach(rc.SurveyCode+".pdf",
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
	)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}
	return nil
}

func (s *emailService) SendContactEmail(msg models.ContactMessage) error {
	if s.sales == "" {
		return fmt.Errorf("sales email is not configured")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.sales)
	m.SetHeader("Reply-To", msg.Email)
	m.SetHeader("Subject", "New contact request: "+msg.Name)

	body := fmt.Sprintf(`
		<h3>New contact request</h3>
		<p><b>Name:</b> %s<br><b>Email:</b> %s<br><b>Phone:</b> %s<br><b>Company:</b> %s</p>
		<p>%s</p>
	`, html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Phone),
		html.EscapeString(msg.Company), html.EscapeString(msg.Message))
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	return nil
}

func (s *emailService) send(m *gomail.Message) error {
	if s.dialer == nil {
		log.Printf("[email][dry-run] to=%v subject=%v", m.GetHeader("To"), m.GetHeader("Subject"))
		return nil
	}
	return s.dialer.DialAndSend(m)
}
