package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopgram/internal/domain"
	applog "shopgram/internal/log"
	"shopgram/internal/parser"
)

// The handlers depend on capabilities, not concrete clients, so tests can
// inject doubles and startup wires the real Telegram/sqlite/disk ones.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

type FileSource interface {
	FileURL(ctx context.Context, fileID string) (string, error)
	Download(ctx context.Context, url string) (data []byte, contentType string, err error)
}

type ProductStore interface {
	Insert(p domain.NewProduct) (domain.Product, error)
}

type OrderStore interface {
	GetByNumber(number string) (domain.Order, error)
	Update(number string, upd domain.OrderUpdate) (domain.Order, error)
}

type ObjectStore interface {
	Save(data []byte, ext string) (publicURL string, err error)
}

// Notifier receives the post-update side effect. Implementations must not
// block; they run after the store write and before the user reply.
type Notifier interface {
	OrderUpdated(o domain.Order)
}

const (
	msgNeedPhoto = "Please attach a photo. Send the product image with the /add_product caption."

	msgProductFormat = "Caption must start with /add_product and carry key: value lines, e.g.\n" +
		"/add_product\nName: Vintage Jacket\nPrice: 79.99\nDescription: Warm."

	msgDownloadFail = "Could not fetch the photo from Telegram. Please try again."
	msgUploadFail   = "Could not store the product image. Please try again."
	msgProductFail  = "Could not save the product. Please try again."
	msgOrderFail    = "Could not update the order. Please try again."

	msgHelp = "Commands:\n" +
		"/add_product - send a photo captioned with Name: and Price: (Description: optional)\n" +
		"/update_order <order_number> <status> [tracking=<number>]"
)

type Handlers struct {
	Bot      Messenger
	Files    FileSource
	Products ProductStore
	Orders   OrderStore
	Media    ObjectStore
	Notify   Notifier
}

// reply sends exactly one message back to the originating chat. A send
// failure is logged and swallowed: there is nobody left to tell.
func (h *Handlers) reply(ctx context.Context, chatID int64, text string) {
	if err := h.Bot.SendText(ctx, chatID, text); err != nil {
		applog.Error(nil, "bot.reply", err, map[string]any{"chat_id": chatID})
	}
}

// AddProduct runs the add-product flow: gates fail fast with their own
// message, and nothing is written before the caption parses.
func (h *Handlers) AddProduct(ctx context.Context, u Update) {
	if u.Kind != KindPhoto || len(u.Photos) == 0 {
		h.reply(ctx, u.ChatID, msgNeedPhoto)
		return
	}
	if !parser.HasCommand(u.Caption, parser.CmdAddProduct) {
		h.reply(ctx, u.ChatID, msgProductFormat)
		return
	}

	cmd, err := parser.ProductCaption(u.Caption)
	if err != nil {
		h.reply(ctx, u.ChatID, err.Error())
		return
	}

	photo := largestVariant(u.Photos)
	fileURL, err := h.Files.FileURL(ctx, photo.FileID)
	if err != nil {
		applog.Error(nil, "product.file_url", err, map[string]any{"file_id": photo.FileID})
		h.reply(ctx, u.ChatID, msgDownloadFail)
		return
	}
	data, contentType, err := h.Files.Download(ctx, fileURL)
	if err != nil {
		applog.Error(nil, "product.download", err, map[string]any{"file_id": photo.FileID})
		h.reply(ctx, u.ChatID, msgDownloadFail)
		return
	}

	imageURL, err := h.Media.Save(data, parser.ExtensionForMIME(contentType))
	if err != nil {
		applog.Error(nil, "product.image_save", err, nil)
		h.reply(ctx, u.ChatID, msgUploadFail)
		return
	}

	created, err := h.Products.Insert(domain.NewProduct{
		Name:        cmd.Name,
		Price:       cmd.Price,
		Description: cmd.Description,
		ImageURL:    imageURL,
	})
	if err != nil {
		// The stored image is not cleaned up; the log line is the only trace.
		applog.Error(nil, "product.insert", err, map[string]any{"image_url": imageURL, "name": cmd.Name})
		h.reply(ctx, u.ChatID, msgProductFail)
		return
	}

	applog.Audit(nil, "product.create", map[string]any{"id": created.ID, "name": created.Name})
	h.reply(ctx, u.ChatID, fmt.Sprintf(
		"Product created: %s\nPrice: %.2f\nID: %s\nImage: %s",
		created.Name, created.Price, created.ID, created.ImageURL))
}

// UpdateOrder runs the update-order flow.
func (h *Handlers) UpdateOrder(ctx context.Context, u Update) {
	text := strings.TrimSpace(u.Text)
	if text == "" {
		h.reply(ctx, u.ChatID, msgHelp)
		return
	}

	cmd, err := parser.OrderUpdate(text)
	if err != nil {
		h.reply(ctx, u.ChatID, err.Error())
		return
	}

	if _, err := h.Orders.GetByNumber(cmd.OrderNumber); err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			h.reply(ctx, u.ChatID, fmt.Sprintf("Order %s not found.", cmd.OrderNumber))
			return
		}
		applog.Error(nil, "order.lookup", err, map[string]any{"order_number": cmd.OrderNumber})
		h.reply(ctx, u.ChatID, msgOrderFail)
		return
	}

	updated, err := h.Orders.Update(cmd.OrderNumber, domain.OrderUpdate{
		Status:         cmd.Status,
		TrackingNumber: cmd.TrackingNumber,
	})
	if err != nil {
		applog.Error(nil, "order.update", err, map[string]any{"order_number": cmd.OrderNumber})
		h.reply(ctx, u.ChatID, msgOrderFail)
		return
	}

	// Side effect after a successful write; it cannot fail the reply.
	h.Notify.OrderUpdated(updated)

	applog.Audit(nil, "order.update", map[string]any{
		"order_number": updated.Number,
		"status":       updated.Status,
		"tracking_set": cmd.TrackingNumber != nil,
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Order %s updated.\nStatus: %s\nCustomer: %s <%s>",
		updated.Number, updated.Status, updated.CustomerName, updated.CustomerEmail)
	if updated.TrackingNumber != "" {
		fmt.Fprintf(&b, "\nTracking: %s", updated.TrackingNumber)
	}
	h.reply(ctx, u.ChatID, b.String())
}

// Help answers /start and /help with static usage text.
func (h *Handlers) Help(ctx context.Context, u Update) {
	h.reply(ctx, u.ChatID, msgHelp)
}
