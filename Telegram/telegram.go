package Telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"Imperyo/Models"
)

// TelegramClient holds the bot token, target chat and base URL.
type TelegramClient struct {
	Token   string
	ChatID  string
	BaseURL string
}

// TelegramMessage represents a sendMessage payload.
type TelegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// TelegramResponse represents the Bot API response envelope.
type TelegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewTelegramClient creates a client for one bot and chat.
func NewTelegramClient(token, chatID string) *TelegramClient {
	return &TelegramClient{
		Token:   token,
		ChatID:  chatID,
		BaseURL: "https://api.telegram.org",
	}
}

// FromEnv builds a client from TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID.
// Returns nil when the credentials are not configured; notifications are
// optional and the caller must tolerate a nil notifier.
func FromEnv() *TelegramClient {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatID == "" {
		return nil
	}
	return NewTelegramClient(token, chatID)
}

// SendMessage posts a text message to the configured chat.
func (t *TelegramClient) SendMessage(ctx context.Context, text string) error {
	payload := TelegramMessage{
		ChatID: t.ChatID,
		Text:   text,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %v", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.Token)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %v", err)
	}

	var telegramResp TelegramResponse
	if err := json.Unmarshal(body, &telegramResp); err != nil {
		return fmt.Errorf("error unmarshaling response: %v", err)
	}
	if !telegramResp.OK {
		return fmt.Errorf("telegram API error %d: %s", telegramResp.ErrorCode, telegramResp.Description)
	}
	return nil
}

// NotifyNewOrder sends the new-order summary. Failures here are warnings
// for the caller; a saved order stays saved.
func (t *TelegramClient) NotifyNewOrder(ctx context.Context, o Models.Order) error {
	return t.SendMessage(ctx, NewOrderMessage(o))
}

// NewOrderMessage formats the notification text: order handle, client, club
// and the price to show (invoice price when set, list price otherwise).
func NewOrderMessage(o Models.Order) string {
	price := o.Price
	if o.InvoicePrice > 0 {
		price = o.InvoicePrice
	}
	return fmt.Sprintf("Nuevo pedido %s\nCliente: %s\nClub: %s\nPrecio: %.2f €",
		o.Ref(), o.Client, o.Club, price)
}
