package telegram

import (
	"context"
	"fmt"
	"time"

	drepo "SignalPull/internal/domain/repository"
	xhttp "SignalPull/pkg/http"
	applogger "SignalPull/pkg/logger"
)

// Client implements Notifier over the Telegram Bot API. Messages go to
// one fixed channel in Markdown.
type Client struct {
	http      *xhttp.Client
	botToken  string
	channelID string
	log       *applogger.Logger
}

// New creates a Telegram notifier. Missing credentials are not an
// error at construction time; Send reports them per call so the rest
// of the service runs without alerting.
func New(botToken, channelID string, timeout time.Duration, l *applogger.Logger) drepo.Notifier {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:      xhttp.NewClient("https://api.telegram.org", xhttp.WithTimeout(timeout)),
		botToken:  botToken,
		channelID: channelID,
		log:       l,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c.botToken != "" && c.channelID != ""
}

// Send delivers one Markdown message to the channel.
func (c *Client) Send(ctx context.Context, message string) error {
	if c.botToken == "" {
		return xhttp.ConfigMissingError("telegram bot token not configured")
	}
	if c.channelID == "" {
		return xhttp.ConfigMissingError("telegram channel ID not configured")
	}

	req := sendMessageRequest{
		ChatID:                c.channelID,
		Text:                  message,
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	}

	var resp sendMessageResponse
	path := fmt.Sprintf("/bot%s/sendMessage", c.botToken)
	if err := c.http.PostJSON(ctx, path, req, &resp); err != nil {
		return xhttp.UpstreamError("telegram send failed", err)
	}
	if !resp.OK {
		return xhttp.UpstreamError(fmt.Sprintf("telegram rejected message: %s", resp.Description), nil)
	}

	c.log.Debug("telegram message sent", applogger.Int("message_id", int(resp.Result.MessageID)))
	return nil
}
