package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopgram/internal/bot"
	"shopgram/internal/http/handlers"
)

type recordingRouter struct {
	got chan bot.Update
}

func (r *recordingRouter) Dispatch(_ context.Context, u bot.Update) bool {
	r.got <- u
	return true
}

func newApp(secret string) (*fiber.App, *recordingRouter) {
	router := &recordingRouter{got: make(chan bot.Update, 1)}
	app := fiber.New()
	app.Use(requestid.New())
	wh := &handlers.WebhookHandler{Secret: secret, Updates: router}
	app.Post(handlers.WebhookPath, wh.Receive)
	app.Get("/healthz", handlers.Health)
	return app, router
}

const sampleUpdate = `{"update_id":1,"message":{"message_id":10,"date":1700000000,` +
	`"chat":{"id":77,"type":"private"},"from":{"id":9,"is_bot":false,"first_name":"Ann","username":"ann"},` +
	`"text":"/update_order 123 shipped"}}`

func post(app *fiber.App, body, secret string) int {
	req := httptest.NewRequest("POST", handlers.WebhookPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", secret)
	}
	resp, err := app.Test(req)
	if err != nil {
		panic(err)
	}
	return resp.StatusCode
}

func TestWebhookRejectsMissingSecret(t *testing.T) {
	app, router := newApp("s3cret")

	code := post(app, sampleUpdate, "")
	if code != fiber.StatusUnauthorized {
		t.Fatalf("want 401 for missing secret, got %d", code)
	}
	code = post(app, sampleUpdate, "wrong")
	if code != fiber.StatusUnauthorized {
		t.Fatalf("want 401 for wrong secret, got %d", code)
	}

	select {
	case u := <-router.got:
		t.Fatalf("update must not be dispatched, got %+v", u)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWebhookRejectsEmptyAndMalformedBody(t *testing.T) {
	app, router := newApp("s3cret")

	code := post(app, "", "s3cret")
	if code != fiber.StatusBadRequest {
		t.Fatalf("want 400 for empty body, got %d", code)
	}
	code = post(app, "{not json", "s3cret")
	if code != fiber.StatusBadRequest {
		t.Fatalf("want 400 for malformed body, got %d", code)
	}

	select {
	case u := <-router.got:
		t.Fatalf("nothing may be dispatched, got %+v", u)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWebhookAcknowledgesAndDispatches(t *testing.T) {
	app, router := newApp("s3cret")

	code := post(app, sampleUpdate, "s3cret")
	if code != fiber.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}

	select {
	case u := <-router.got:
		if u.Kind != bot.KindText || u.ChatID != 77 || u.Text != "/update_order 123 shipped" {
			t.Fatalf("unexpected dispatched update: %+v", u)
		}
	case <-time.After(time.Second):
		t.Fatal("update was not dispatched")
	}
}

func TestWebhookAcksUnhandledShapes(t *testing.T) {
	app, router := newApp("s3cret")

	// A sticker-only message: valid JSON, no text, no photo.
	body := `{"update_id":2,"message":{"message_id":11,"date":1700000000,"chat":{"id":77,"type":"private"}}}`
	code := post(app, body, "s3cret")
	if code != fiber.StatusOK {
		t.Fatalf("want 200 for unhandled shapes, got %d", code)
	}
	select {
	case u := <-router.got:
		t.Fatalf("unhandled shape must be dropped, got %+v", u)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHealthz(t *testing.T) {
	app, _ := newApp("s3cret")

	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		OK   bool   `json:"ok"`
		Time string `json:"time"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("bad body %s: %v", raw, err)
	}
	if !body.OK || body.Time == "" {
		t.Fatalf("unexpected health payload: %s", raw)
	}
}
