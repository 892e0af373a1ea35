package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"shopgram/internal/config"
	"shopgram/internal/http/handlers"
	applog "shopgram/internal/log"
	"shopgram/internal/media"
	"shopgram/internal/repos"
	"shopgram/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN, cfg.Env == "development")
	if err != nil {
		log.Fatal(err)
	}

	mediaStore, err := media.NewStore(cfg.MediaDir, cfg.PublicURL)
	if err != nil {
		log.Fatal(err)
	}

	tg, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Fatal(err)
	}

	deps := handlers.NewDeps(db, cfg, tg, mediaStore)

	engine := html.New("./web/templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong.")
		},
	})
	// Telegram updates are small; anything bigger is not for us.
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())

	app.Post(handlers.WebhookPath, deps.Webhook.Receive)
	app.Get("/healthz", handlers.Health)
	app.Get("/", deps.Status.Page)

	// Guarded media to avoid traversal
	mediaDir := mediaStore.Dir()
	if abs, err := filepath.Abs(mediaDir); err == nil {
		mediaDir = abs
	}
	log.Printf("[static] /media -> %s", mediaDir)
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	webhookURL := cfg.PublicURL + handlers.WebhookPath
	if err := tg.RegisterWebhook(ctx, webhookURL, cfg.WebhookSecret); err != nil {
		log.Fatal(err)
	}
	log.Printf("[telegram] webhook registered at %s", webhookURL)

	log.Fatal(app.Listen(cfg.Addr()))
}
