package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopgram/internal/log"
	"shopgram/internal/repos"
)

// StatusHandler renders the read-only ops page: recent products written by
// the bot and a per-status order count.
type StatusHandler struct {
	Products *repos.ProductRepo
	Orders   *repos.OrderRepo
	Env      string
}

func (h *StatusHandler) Page(c *fiber.Ctx) error {
	products, err := h.Products.ListRecent(20)
	if err != nil {
		applog.Error(c, "status.products", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("status unavailable")
	}
	counts, err := h.Orders.CountByStatus()
	if err != nil {
		applog.Error(c, "status.orders", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("status unavailable")
	}
	return c.Render("status", fiber.Map{
		"Env":      h.Env,
		"Products": products,
		"Counts":   counts,
	})
}
