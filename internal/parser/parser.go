// Package parser turns raw Telegram command text into structured records.
// Everything here is pure: same input, same result, no I/O. A command either
// parses completely or fails with a ValidationError before any side effect.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"shopgram/internal/domain"
)

// Plain base-10 decimal, no sign. Keeps ParseFloat's extras (NaN, Inf, hex
// floats, underscore digits) out of the price field.
var rePrice = regexp.MustCompile(`^([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)

const (
	CmdAddProduct  = "/add_product"
	CmdUpdateOrder = "/update_order"

	trackingPrefix = "tracking="
)

// HasCommand reports whether the trimmed, lower-cased text starts with cmd.
func HasCommand(text, cmd string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), cmd)
}

// stripCommand removes a leading command token, case-insensitively, and trims
// the surrounding whitespace. Text without the token passes through trimmed.
func stripCommand(text, cmd string) string {
	t := strings.TrimSpace(text)
	if len(t) >= len(cmd) && strings.EqualFold(t[:len(cmd)], cmd) {
		t = t[len(cmd):]
	}
	return strings.TrimSpace(t)
}

// ProductCaption parses an /add_product caption of the form
//
//	/add_product
//	Name: Vintage Jacket
//	Price: 79.99
//	Description: Warm.
//
// Keys are matched case-insensitively at the first colon of each line; lines
// without a colon are ignored and a repeated key overwrites the earlier one.
func ProductCaption(caption string) (domain.ProductCommand, error) {
	body := stripCommand(caption, CmdAddProduct)

	fields := map[string]string{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	name, ok := fields["name"]
	if !ok || name == "" {
		return domain.ProductCommand{}, &domain.ValidationError{Msg: "name required"}
	}
	rawPrice, ok := fields["price"]
	if !ok || rawPrice == "" {
		return domain.ProductCommand{}, &domain.ValidationError{Msg: "price required"}
	}
	if !rePrice.MatchString(rawPrice) {
		return domain.ProductCommand{}, domain.Validationf("invalid price %q", rawPrice)
	}
	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil || price < 0 {
		return domain.ProductCommand{}, domain.Validationf("invalid price %q", rawPrice)
	}

	cmd := domain.ProductCommand{Name: name, Price: price}
	// An empty "Description:" line is the empty string, not absence.
	if desc, ok := fields["description"]; ok {
		cmd.Description = &desc
	}
	return cmd, nil
}

// OrderUpdate parses "/update_order <number> <status> [tracking=<value>]".
// Number and status are positional; the first tracking= token after them
// wins, with the value taken verbatim. Extra trailing tokens are ignored.
func OrderUpdate(text string) (domain.OrderUpdateCommand, error) {
	body := stripCommand(text, CmdUpdateOrder)
	if body == "" {
		return domain.OrderUpdateCommand{}, usageErr()
	}

	tokens := strings.Fields(body)
	if len(tokens) < 2 {
		return domain.OrderUpdateCommand{}, usageErr()
	}

	cmd := domain.OrderUpdateCommand{OrderNumber: tokens[0], Status: tokens[1]}
	if cmd.OrderNumber == "" || cmd.Status == "" {
		return domain.OrderUpdateCommand{}, usageErr()
	}

	for _, tok := range tokens[2:] {
		if len(tok) >= len(trackingPrefix) && strings.EqualFold(tok[:len(trackingPrefix)], trackingPrefix) {
			value := tok[len(trackingPrefix):]
			cmd.TrackingNumber = &value
			break
		}
	}
	return cmd, nil
}

func usageErr() *domain.ValidationError {
	return &domain.ValidationError{Msg: "expected: /update_order <order_number> <status> [tracking=<number>]"}
}

// ExtensionForMIME maps a content type to a file extension. It is total:
// anything unrecognized (including the empty string) falls back to jpg.
func ExtensionForMIME(mime string) string {
	sub := strings.ToLower(strings.TrimSpace(mime))
	sub = strings.TrimPrefix(sub, "image/")
	if i := strings.Index(sub, ";"); i >= 0 {
		sub = strings.TrimSpace(sub[:i])
	}
	switch sub {
	case "jpeg", "jpg":
		return "jpg"
	case "png":
		return "png"
	case "gif":
		return "gif"
	case "webp":
		return "webp"
	default:
		return "jpg"
	}
}
