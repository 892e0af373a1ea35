package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/mymmrac/telego"

	"shopgram/internal/bot"
	applog "shopgram/internal/log"
)

// WebhookPath is registered with the bot platform at startup.
const WebhookPath = "/telegram/webhook"

// secretHeader is set by Telegram on every webhook delivery when a secret
// token was passed to setWebhook.
const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateRouter is what the webhook hands classified updates to.
type UpdateRouter interface {
	Dispatch(ctx context.Context, u bot.Update) bool
}

type WebhookHandler struct {
	Secret  string
	Updates UpdateRouter
}

// Receive authenticates the delivery, acknowledges it, and processes the
// update asynchronously. Once a body is accepted the answer is always 200:
// handler failures become chat replies, never upstream retries.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	if c.Get(secretHeader) != h.Secret {
		applog.Security(c, "webhook.secret.reject", nil)
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	body := c.Body()
	if len(body) == 0 {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	var raw telego.Update
	if err := json.Unmarshal(body, &raw); err != nil {
		applog.Security(c, "webhook.body.reject", map[string]any{"error": err.Error()})
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if u, ok := bot.FromTelegram(raw); ok {
		// Detached from the request: the ack must not wait on Telegram,
		// the database or the media store.
		go h.Updates.Dispatch(context.Background(), u)
	}
	return c.SendStatus(fiber.StatusOK)
}
