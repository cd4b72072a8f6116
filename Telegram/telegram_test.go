package Telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Imperyo/Models"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotPayload TelegramMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(TelegramResponse{OK: true})
	}))
	defer server.Close()

	client := NewTelegramClient("test-token", "12345")
	client.BaseURL = server.URL

	require.NoError(t, client.SendMessage(context.Background(), "hola"))
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "12345", gotPayload.ChatID)
	assert.Equal(t, "hola", gotPayload.Text)
}

func TestSendMessageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TelegramResponse{OK: false, ErrorCode: 401, Description: "Unauthorized"})
	}))
	defer server.Close()

	client := NewTelegramClient("bad-token", "12345")
	client.BaseURL = server.URL

	err := client.SendMessage(context.Background(), "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestNewOrderMessage(t *testing.T) {
	o := Models.Order{ID: 3, Year: 2025, Client: "Ana", Club: "CC Norte", Price: 90}
	msg := NewOrderMessage(o)
	assert.Contains(t, msg, "3/2025")
	assert.Contains(t, msg, "Ana")
	assert.Contains(t, msg, "90.00 €")

	// The invoice price wins when set.
	o.InvoicePrice = 108.9
	assert.Contains(t, NewOrderMessage(o), "108.90 €")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	assert.Nil(t, FromEnv())

	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "chat")
	client := FromEnv()
	require.NotNil(t, client)
	assert.Equal(t, "tok", client.Token)
	assert.Equal(t, "chat", client.ChatID)
}
