package handlers

import (
	"github.com/jmoiron/sqlx"

	"shopgram/internal/bot"
	"shopgram/internal/config"
	"shopgram/internal/media"
	"shopgram/internal/repos"
	"shopgram/internal/telegram"
)

type Deps struct {
	Webhook *WebhookHandler
	Status  *StatusHandler
}

// NewDeps wires the repos, the bot core and the HTTP handlers. The telegram
// client doubles as Messenger and FileSource.
func NewDeps(db *sqlx.DB, cfg config.Config, tg *telegram.Client, mediaStore *media.Store) *Deps {
	prodRepo := repos.NewProductRepo(db)
	ordRepo := repos.NewOrderRepo(db)

	h := &bot.Handlers{
		Bot:      tg,
		Files:    tg,
		Products: prodRepo,
		Orders:   ordRepo,
		Media:    mediaStore,
		Notify:   bot.LogNotifier{},
	}

	return &Deps{
		Webhook: &WebhookHandler{Secret: cfg.WebhookSecret, Updates: bot.NewRouter(h)},
		Status:  &StatusHandler{Products: prodRepo, Orders: ordRepo, Env: cfg.Env},
	}
}
