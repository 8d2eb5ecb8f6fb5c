package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-school/internal/settings"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://graph.facebook.com/v17.0"

// Config is the per-school WhatsApp Business API configuration, read from the
// settings store.
type Config struct {
	Enabled       bool
	APIKey        string
	PhoneNumberID string
}

// ConfigFor loads a school's WhatsApp configuration. A school with the
// integration unset or disabled yields Enabled=false, not an error.
func ConfigFor(ctx context.Context, store settings.Store, schoolID string) (Config, error) {
	enabled, _, err := store.Get(ctx, schoolID, settings.KeyWhatsAppEnabled)
	if err != nil {
		return Config{}, err
	}
	apiKey, _, err := store.Get(ctx, schoolID, settings.KeyWhatsAppAPIKey)
	if err != nil {
		return Config{}, err
	}
	phoneNumberID, _, err := store.Get(ctx, schoolID, settings.KeyWhatsAppPhoneNumberID)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Enabled:       enabled == "true",
		APIKey:        apiKey,
		PhoneNumberID: phoneNumberID,
	}
	if cfg.APIKey == "" || cfg.PhoneNumberID == "" {
		cfg.Enabled = false
	}
	return cfg, nil
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewClient(logger ...*zap.Logger) *Client {
	l := zap.L().Named("whatsapp.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("whatsapp.client")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		logger:     l,
	}
}

// WithBaseURL points the client at a different Graph endpoint (tests).
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

type textMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// SendText posts a plain text message through the WhatsApp Business API and
// returns the provider message id.
func (c *Client) SendText(ctx context.Context, cfg Config, toPhone, message string) (string, error) {
	if !cfg.Enabled {
		return "", fmt.Errorf("whatsapp is not configured or disabled")
	}

	payload, err := json.Marshal(textMessage{
		MessagingProduct: "whatsapp",
		To:               toPhone,
		Type:             "text",
		Text:             textBody{Body: message},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("whatsapp send rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return "", fmt.Errorf("whatsapp api returned status %d", resp.StatusCode)
	}

	var parsed sendResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Messages) == 0 {
		return "", fmt.Errorf("whatsapp api returned no message id")
	}

	return parsed.Messages[0].ID, nil
}
