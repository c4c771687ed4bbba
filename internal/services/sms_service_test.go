package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pirlanta/internal/models"
	"pirlanta/internal/utils"
)

type fakeSMS struct {
	to, text string
	err      error
}

func (f *fakeSMS) SendSMS(_ context.Context, to, text string) (*utils.SendSMSResponse, error) {
	f.to, f.text = to, text
	if f.err != nil {
		return nil, f.err
	}
	return &utils.SendSMSResponse{}, nil
}

type fakeMailer struct {
	otpTo   string
	reports int
	contact []models.ContactMessage
	err     error
}

func (f *fakeMailer) SendOTPEmail(to, _, _ string, _ time.Duration) error {
	f.otpTo = to
	return f.err
}

func (f *fakeMailer) SendReportEmail(_ string, _ models.ReportContext, _ []byte) error {
	f.reports++
	return f.err
}

func (f *fakeMailer) SendContactEmail(m models.ContactMessage) error {
	f.contact = append(f.contact, m)
	return f.err
}

func TestOTPDelivery_Channels(t *testing.T) {
	sess := &models.AssessmentSession{ID: "s1", Name: "Asha", Phone: "+919800000000", Email: "asha@example.com"}

	cases := []struct {
		channel           string
		wantSMS, wantMail bool
	}{
		{OTPChannelSMS, true, false},
		{OTPChannelEmail, false, true},
		{OTPChannelBoth, true, true},
		{"", false, true},
	}
	for _, c := range cases {
		t.Run(c.channel, func(t *testing.T) {
			sms, mail := &fakeSMS{}, &fakeMailer{}
			d := NewOTPDelivery(c.channel, sms, mail, 5*time.Minute)
			if err := d.SendOTP(context.Background(), sess, "482913"); err != nil {
				t.Fatalf("SendOTP() error = %v", err)
			}
			if (sms.to != "") != c.wantSMS {
				t.Errorf("sms sent = %v, want %v", sms.to != "", c.wantSMS)
			}
			if (mail.otpTo != "") != c.wantMail {
				t.Errorf("email sent = %v, want %v", mail.otpTo != "", c.wantMail)
			}
			if c.wantSMS && !strings.Contains(sms.text, "482913") {
				t.Errorf("sms text = %q", sms.text)
			}
		})
	}
}

func TestOTPDelivery_Failures(t *testing.T) {
	sess := &models.AssessmentSession{ID: "s1", Phone: "+91", Email: "a@b.c"}

	partial := NewOTPDelivery(OTPChannelBoth, &fakeSMS{err: errors.New("sms down")}, &fakeMailer{}, time.Minute)
	if err := partial.SendOTP(context.Background(), sess, "1"); err != nil {
		t.Errorf("partial failure error = %v, want nil", err)
	}

	all := NewOTPDelivery(OTPChannelBoth, &fakeSMS{err: errors.New("sms down")}, &fakeMailer{err: errors.New("smtp down")}, time.Minute)
	err := all.SendOTP(context.Background(), sess, "1")
	if !errors.Is(err, models.ErrExternalService) {
		t.Errorf("total failure error = %v, want ErrExternalService", err)
	}

	none := NewOTPDelivery(OTPChannelSMS, nil, nil, time.Minute)
	if err := none.SendOTP(context.Background(), sess, "1"); !errors.Is(err, models.ErrExternalService) {
		t.Errorf("no channel error = %v", err)
	}
}
