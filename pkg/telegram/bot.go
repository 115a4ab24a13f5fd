package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ParseModeMarkdown formats message text with Telegram's legacy Markdown.
const ParseModeMarkdown = "Markdown"

// Bot is the Telegram Bot API client.
type Bot struct {
	apiURL     string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", token),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
}

// SetWebhook registers the webhook URL with Telegram. A non-empty secret is echoed back by
// Telegram in the X-Telegram-Bot-Api-Secret-Token header of every update.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL, secret string) error {
	if err := b.post(ctx, "setWebhook", SetWebhookRequest{URL: webhookURL, SecretToken: secret}); err != nil {
		return fmt.Errorf("telegram setWebhook: %w", err)
	}
	return nil
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	return b.SendMessageWithMode(ctx, chatID, text, "")
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "Markdown").
func (b *Bot) SendMessageWithMode(ctx context.Context, chatID int64, text, parseMode string) error {
	req := SendMessageRequest{ChatID: chatID, Text: text, ParseMode: parseMode}
	if err := b.post(ctx, "sendMessage", req); err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}

func (b *Bot) post(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.apiURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(raw))
	}
	if !apiResp.OK {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, apiResp.Description)
	}
	return nil
}
