package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultMobizonURL = "https://api.mobizon.in/service/message/sendsmsmessage"

type Client struct {
	ApiKey  string
	Sender  string // опционально
	DryRun  bool   // dry-run режим
	BaseURL string
	HTTP    *http.Client
}

type SendSMSResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"messageId"`
	} `json:"data"`
}

func NewClientWithOptions(apiKey, sender string, dryRun bool) *Client {
	return &Client{
		ApiKey:  apiKey,
		Sender:  sender,
		DryRun:  dryRun,
		BaseURL: DefaultMobizonURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SendSMS: отправка SMS через Mobizon (или имитация в dry-run)
func (c *Client) SendSMS(ctx context.Context, to, text string) (*SendSMSResponse, error) {
	// DRY-RUN: не делаем HTTP-запрос
	if c.DryRun || c.ApiKey == "" || c.ApiKey == "dry-run" {
		log.Printf("[mobizon][dry-run] to=%s sender=%q len=%d", to, c.Sender, len(text))
		return &SendSMSResponse{Code: 0}, nil
	}

	form := url.Values{
		"apiKey":    {c.ApiKey},
		"recipient": {strings.TrimPrefix(to, "+")},
		"text":      {text},
	}
	if c.Sender != "" {
		form.Set("from", c.Sender)
	}

	endpoint := c.BaseURL
	if endpoint == "" {
		endpoint = DefaultMobizonURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	log.Printf("[mobizon][send] to=%s status=%d", to, resp.StatusCode)

	var result SendSMSResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("mobizon returned error code: %d (%s)", result.Code, result.Message)
	}
	return &result, nil
}
