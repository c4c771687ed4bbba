package services

import (
	"context"
	"errors"
	"testing"

	"pirlanta/internal/models"
)

type countingNotifier struct {
	texts []string
	err   error
}

func (n *countingNotifier) Notify(_ context.Context, text string) error {
	n.texts = append(n.texts, text)
	return n.err
}

func (n *countingNotifier) NotifyDocument(_ context.Context, _ string, _ []byte, _ string) error {
	return n.err
}

func TestContactService_Submit(t *testing.T) {
	mail := &fakeMailer{}
	tg := &countingNotifier{}
	svc := NewContactService(mail, tg)

	err := svc.Submit(context.Background(), models.ContactMessage{
		Name: " Asha ", Email: "asha@example.com", Company: "Acme", Message: "Need SD-WAN quote",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(mail.contact) != 1 || mail.contact[0].Name != "Asha" {
		t.Errorf("mailed = %+v", mail.contact)
	}
	if len(tg.texts) != 1 {
		t.Errorf("telegram notifications = %d", len(tg.texts))
	}
}

func TestContactService_Validation(t *testing.T) {
	cases := map[string]models.ContactMessage{
		"no name":       {Email: "a@b.c", Message: "hi"},
		"no email":      {Name: "A", Message: "hi"},
		"no message":    {Name: "A", Email: "a@b.c"},
		"invalid email": {Name: "A", Email: "not-an-email", Message: "hi"},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			mail := &fakeMailer{}
			err := NewContactService(mail, nil).Submit(context.Background(), msg)
			if !errors.Is(err, models.ErrValidation) {
				t.Fatalf("Submit() error = %v, want ErrValidation", err)
			}
			if len(mail.contact) != 0 {
				t.Error("invalid message was mailed")
			}
		})
	}
}

func TestContactService_DeliveryFailure(t *testing.T) {
	svc := NewContactService(&fakeMailer{err: errors.New("smtp down")}, nil)
	err := svc.Submit(context.Background(), models.ContactMessage{Name: "A", Email: "a@b.c", Message: "hi"})
	if !errors.Is(err, models.ErrExternalService) {
		t.Fatalf("Submit() error = %v, want ErrExternalService", err)
	}

	// сбой Telegram не ломает заявку
	svc = NewContactService(&fakeMailer{}, &countingNotifier{err: errors.New("tg down")})
	if err := svc.Submit(context.Background(), models.ContactMessage{Name: "A", Email: "a@b.c", Message: "hi"}); err != nil {
		t.Fatalf("Submit() with telegram failure error = %v", err)
	}
}
