package services

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier: уведомления отделу продаж
type Notifier interface {
	Notify(ctx context.Context, text string) error
	NotifyDocument(ctx context.Context, filename string, data []byte, caption string) error
}

// tgSender: то, что нужно от *tgbotapi.BotAPI
type tgSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramService struct {
	bot    tgSender
	chatID int64
}

// NewTelegramService: без токена возвращает сервис, который только логирует
func NewTelegramService(botToken string, chatID int64) (*TelegramService, error) {
	if botToken == "" {
		return &TelegramService{chatID: chatID}, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("[tg][init] authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot, chatID: chatID}, nil
}

func (t *TelegramService) Notify(_ context.Context, text string) error {
	if t == nil || t.bot == nil || t.chatID == 0 {
		log.Printf("[tg][skip] bot or chatID empty, text=%q", text)
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] chatID=%d: %v", t.chatID, err)
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	log.Printf("[tg][send] chatID=%d", t.chatID)
	return nil
}

func (t *TelegramService) NotifyDocument(_ context.Context, filename string, data []byte, caption string) error {
	if t == nil || t.bot == nil || t.chatID == 0 {
		log.Printf("[tg][skip] bot or chatID empty, document=%s", filename)
		return nil
	}
	doc := tgbotapi.NewDocument(t.chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	doc.Caption = caption
	doc.ParseMode = tgbotapi.ModeHTML

	if _, err := t.bot.Send(doc); err != nil {
		log.Printf("[tg][doc][err] chatID=%d file=%s: %v", t.chatID, filename, err)
		return fmt.Errorf("telegram sendDocument failed: %w", err)
	}
	log.Printf("[tg][doc] chatID=%d file=%s", t.chatID, filename)
	return nil
}
