package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/mail"
	"strings"

	"pirlanta/internal/models"
)

type ContactService struct {
	mailer   EmailService
	notifier Notifier
}

func NewContactService(mailer EmailService, notifier Notifier) *ContactService {
	return &ContactService{mailer: mailer, notifier: notifier}
}

// Submit: письмо в отдел продаж (обязательно) + уведомление в Telegram (best effort)
func (s *ContactService) Submit(ctx context.Context, msg models.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Company = strings.TrimSpace(msg.Company)
	msg.Message = strings.TrimSpace(msg.Message)

	switch {
	case msg.Name == "":
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	case msg.Email == "":
		return fmt.Errorf("%w: email is required", models.ErrValidation)
	case msg.Message == "":
		return fmt.Errorf("%w: message is required", models.ErrValidation)
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return fmt.Errorf("%w: invalid email", models.ErrValidation)
	}

	if err := s.mailer.SendContactEmail(msg); err != nil {
		log.Printf("[contact][email] from=%s: %v", msg.Email, err)
		return fmt.Errorf("%w: %w", models.ErrExternalService, err)
	}

	if s.notifier != nil {
		text := fmt.Sprintf("<b>New contact request</b>\n%s &lt;%s&gt;\n%s %s\n\n%s",
			html.EscapeString(msg.Name), html.EscapeString(msg.Email),
			html.EscapeString(msg.Company), html.EscapeString(msg.Phone), html.EscapeString(msg.Message))
		if err := s.notifier.Notify(ctx, text); err != nil {
			log.Printf("[contact][tg] from=%s: %v", msg.Email, err)
		}
	}
	log.Printf("[contact][submit] from=%s company=%q", msg.Email, msg.Company)
	return nil
}
