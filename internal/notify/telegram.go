package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// DeliveryResult is the outcome of one delivery attempt
type DeliveryResult struct {
	Success bool
	Message string
}

// TelegramNotifier delivers debrief text to a fixed chat via the Telegram Bot
// API. Deliver never returns a Go error: every failure mode is mapped into a
// DeliveryResult so the orchestrator can aggregate it without unwinding.
type TelegramNotifier struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		token:   token,
		chatID:  chatID,
		baseURL: telegramAPIBase,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Deliver sends one message to the configured chat.
func (n *TelegramNotifier) Deliver(ctx context.Context, text string) DeliveryResult {
	body, err := json.Marshal(sendMessageRequest{ChatID: n.chatID, Text: text})
	if err != nil {
		return DeliveryResult{Success: false, Message: fmt.Sprintf("Failed to send message: %v", err)}
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return DeliveryResult{Success: false, Message: fmt.Sprintf("Failed to send message: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return DeliveryResult{Success: false, Message: fmt.Sprintf("Failed to send message: %v", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return DeliveryResult{Success: false, Message: fmt.Sprintf("Failed to send message: %v", err)}
	}

	var result sendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return DeliveryResult{Success: false, Message: fmt.Sprintf("Failed to send message: unexpected response (%d): %s", resp.StatusCode, respBody)}
	}

	if !result.OK {
		return DeliveryResult{Success: false, Message: fmt.Sprintf("Telegram API Error: %s", result.Description)}
	}

	return DeliveryResult{Success: true, Message: "Message sent successfully."}
}
