package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pirlanta/internal/models"
	"pirlanta/internal/utils"
)

const (
	OTPChannelSMS   = "sms"
	OTPChannelEmail = "email"
	OTPChannelBoth  = "both"
)

// SMSClient: Mobizon (utils.Client)
type SMSClient interface {
	SendSMS(ctx context.Context, to, text string) (*utils.SendSMSResponse, error)
}

// OTPDelivery отправляет код по SMS, email или обоим каналам
type OTPDelivery struct {
	Channel string
	SMS     SMSClient
	Email   EmailService
	CodeTTL time.Duration
}

func NewOTPDelivery(channel string, sms SMSClient, email EmailService, ttl time.Duration) *OTPDelivery {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	return &OTPDelivery{Channel: channel, SMS: sms, Email: email, CodeTTL: ttl}
}

// SendOTP: ошибка, только если не сработал ни один из выбранных каналов
func (d *OTPDelivery) SendOTP(ctx context.Context, s *models.AssessmentSession, code string) error {
	var errs []error
	delivered := 0

	if d.useSMS() {
		text := fmt.Sprintf("Pirlanta verification code: %s. Valid for %d min.", code, int(d.CodeTTL.Minutes()))
		if resp, err := d.SMS.SendSMS(ctx, s.Phone, text); err != nil {
			errs = append(errs, fmt.Errorf("mobizon: %w", err))
		} else {
			delivered++
			log.Printf("[sms][otp][send] session=%s phone=%s messageID=%s", s.ID, s.Phone, resp.Data.MessageID)
		}
	}
	if d.useEmail() {
		if err := d.Email.SendOTPEmail(s.Email, s.Name, code, d.CodeTTL); err != nil {
			errs = append(errs, err)
		} else {
			delivered++
			log.Printf("[email][otp][send] session=%s email=%s", s.ID, s.Email)
		}
	}

	if delivered > 0 {
		if len(errs) > 0 {
			log.Printf("[otp][partial] session=%s: %v", s.ID, errors.Join(errs...))
		}
		return nil
	}
	if len(errs) == 0 {
		return fmt.Errorf("%w: no otp channel configured (%q)", models.ErrExternalService, d.Channel)
	}
	return fmt.Errorf("%w: %w", models.ErrExternalService, errors.Join(errs...))
}

func (d *OTPDelivery) useSMS() bool {
	return d.SMS != nil && (d.Channel == OTPChannelSMS || d.Channel == OTPChannelBoth)
}

func (d *OTPDelivery) useEmail() bool {
	return d.Email != nil && (d.Channel == OTPChannelEmail || d.Channel == OTPChannelBoth || d.Channel == "")
}
