package bot

import (
	"shopgram/internal/domain"
	applog "shopgram/internal/log"
)

// LogNotifier stands in for a real mailer: the log line is the hand-off
// point where an email queue would be wired in later.
type LogNotifier struct{}

func (LogNotifier) OrderUpdated(o domain.Order) {
	applog.Info(nil, "notify.email.queued", map[string]any{
		"order_number": o.Number,
		"status":       o.Status,
		"recipient":    o.CustomerEmail,
	})
}
