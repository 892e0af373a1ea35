// Package telegram wraps the telego SDK behind the few capabilities the bot
// core needs: sending text, resolving file URLs and downloading bytes.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"shopgram/internal/domain"
)

type Client struct {
	bot  *telego.Bot
	http *http.Client
}

func New(token string) (*Client, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Client{
		bot:  bot,
		http: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// RegisterWebhook points the bot platform at url, with secret echoed back in
// the X-Telegram-Bot-Api-Secret-Token header of every delivery.
func (c *Client) RegisterWebhook(ctx context.Context, url, secret string) error {
	err := c.bot.SetWebhook(ctx, &telego.SetWebhookParams{
		URL:         url,
		SecretToken: secret,
	})
	if err != nil {
		return &domain.ExternalServiceError{Op: "telegram.set_webhook", Err: err}
	}
	return nil
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &telego.SendMessageParams{
		ChatID: tu.ID(chatID),
		Text:   text,
	})
	if err != nil {
		return &domain.ExternalServiceError{Op: "telegram.send_message", Err: err}
	}
	return nil
}

// FileURL resolves a file id into a short-lived download URL.
func (c *Client) FileURL(ctx context.Context, fileID string) (string, error) {
	file, err := c.bot.GetFile(ctx, &telego.GetFileParams{FileID: fileID})
	if err != nil {
		return "", &domain.ExternalServiceError{Op: "telegram.get_file", Err: err}
	}
	if file.FilePath == "" {
		return "", &domain.ExternalServiceError{Op: "telegram.get_file", Err: fmt.Errorf("empty file path for %s", fileID)}
	}
	return c.bot.FileDownloadURL(file.FilePath), nil
}

// Download fetches raw bytes and returns them with the reported content type.
func (c *Client) Download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &domain.ExternalServiceError{Op: "telegram.download", Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &domain.ExternalServiceError{Op: "telegram.download", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &domain.ExternalServiceError{Op: "telegram.download", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &domain.ExternalServiceError{Op: "telegram.download", Err: err}
	}
	return data, resp.Header.Get("Content-Type"), nil
}
