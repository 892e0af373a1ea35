// Package bot holds the update model, the command router and the command
// handlers. Updates are classified once at the webhook boundary into a text
// or photo variant; everything downstream switches on that kind.
package bot

import (
	"strconv"
	"time"

	"github.com/mymmrac/telego"
)

type Kind int

const (
	KindText Kind = iota
	KindPhoto
)

// PhotoVariant is one resolution of an attached photo.
type PhotoVariant struct {
	FileID   string
	Width    int
	Height   int
	ByteSize int
}

// Update is one inbound event, already reduced to the fields the handlers
// read. It is immutable for the lifetime of a handler invocation.
type Update struct {
	ChatID     int64
	Sender     string
	ReceivedAt time.Time

	Kind    Kind
	Text    string         // KindText only
	Caption string         // KindPhoto only
	Photos  []PhotoVariant // KindPhoto only, ordered as delivered
}

// FromTelegram classifies a raw platform update. The second return is false
// for update shapes the bot does not handle (edits, callbacks, media other
// than photos); those are acknowledged upstream and dropped.
func FromTelegram(upd telego.Update) (Update, bool) {
	m := upd.Message
	if m == nil {
		return Update{}, false
	}

	u := Update{
		ChatID:     m.Chat.ID,
		ReceivedAt: time.Unix(m.Date, 0),
	}
	if m.From != nil {
		u.Sender = m.From.Username
		if u.Sender == "" {
			u.Sender = strconv.FormatInt(m.From.ID, 10)
		}
	}

	if len(m.Photo) > 0 {
		u.Kind = KindPhoto
		u.Caption = m.Caption
		u.Photos = make([]PhotoVariant, 0, len(m.Photo))
		for _, p := range m.Photo {
			u.Photos = append(u.Photos, PhotoVariant{
				FileID:   p.FileID,
				Width:    p.Width,
				Height:   p.Height,
				ByteSize: p.FileSize,
			})
		}
		return u, true
	}

	if m.Text != "" {
		u.Kind = KindText
		u.Text = m.Text
		return u, true
	}

	return Update{}, false
}

// largestVariant picks the biggest photo by reported byte size. Ties keep
// the first-seen variant.
func largestVariant(photos []PhotoVariant) PhotoVariant {
	best := photos[0]
	for _, p := range photos[1:] {
		if p.ByteSize > best.ByteSize {
			best = p
		}
	}
	return best
}
