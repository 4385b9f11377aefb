package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/contracts"
)

const (
	DefaultBaseURL = "https://api.telegram.org"
	serviceName    = "Telegram"
	parseMode      = "Markdown"
)

// Client posts messages to a single chat through the Bot API.
type Client struct {
	BaseURL    string
	BotToken   string
	ChatID     string
	HTTPClient *http.Client
}

func NewClient(baseURL, botToken, chatID string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		BotToken:   botToken,
		ChatID:     chatID,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

func (c *Client) Send(ctx context.Context, text string) (*contracts.Receipt, error) {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.ChatID,
		Text:      text,
		ParseMode: parseMode,
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: encode message: %w", err)
	}

	endpoint := c.BaseURL + "/bot" + c.BotToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("telegram: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// *url.Error repeats the URL, which carries the bot token
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("telegram: send: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("telegram: read body: %w", err)
	}

	var out sendMessageResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.Description
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &contracts.APIError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Message:    msg,
			HideStatus: true,
		}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("telegram: decode response: %w", decodeErr)
	}

	return &contracts.Receipt{MessageID: out.Result.MessageID}, nil
}
