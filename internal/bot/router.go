package bot

import (
	"context"

	applog "shopgram/internal/log"
	"shopgram/internal/parser"
)

// HandlerFunc processes one classified update. Handlers own their error
// translation: they always reply to the chat, never return an error upward.
type HandlerFunc func(ctx context.Context, u Update)

type route struct {
	name   string
	match  func(Update) bool
	handle HandlerFunc
}

// Router is an ordered (predicate, handler) table evaluated first-match.
// The order is fixed here rather than at registration time so precedence is
// readable in one place.
type Router struct {
	routes []route
}

func NewRouter(h *Handlers) *Router {
	return &Router{routes: []route{
		{
			name: "add_product",
			// A bare text /add_product still routes here so the handler can
			// ask for the missing photo instead of dropping the command.
			match: func(u Update) bool {
				if u.Kind == KindPhoto {
					return parser.HasCommand(u.Caption, parser.CmdAddProduct)
				}
				return parser.HasCommand(u.Text, parser.CmdAddProduct)
			},
			handle: h.AddProduct,
		},
		{
			name: "update_order",
			match: func(u Update) bool {
				return u.Kind == KindText && parser.HasCommand(u.Text, parser.CmdUpdateOrder)
			},
			handle: h.UpdateOrder,
		},
		{
			name: "help",
			match: func(u Update) bool {
				return u.Kind == KindText &&
					(parser.HasCommand(u.Text, "/start") || parser.HasCommand(u.Text, "/help"))
			},
			handle: h.Help,
		},
	}}
}

// Dispatch runs the first matching handler and reports whether one fired.
// No match is not an error: the update was acknowledged and is dropped.
func (r *Router) Dispatch(ctx context.Context, u Update) bool {
	for _, rt := range r.routes {
		if rt.match(u) {
			applog.Info(nil, "bot.dispatch", map[string]any{
				"route":   rt.name,
				"chat_id": u.ChatID,
				"sender":  u.Sender,
			})
			rt.handle(ctx, u)
			return true
		}
	}
	applog.Info(nil, "bot.drop", map[string]any{"chat_id": u.ChatID})
	return false
}
