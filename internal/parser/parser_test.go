package parser_test

import (
	"errors"
	"strings"
	"testing"

	"shopgram/internal/domain"
	"shopgram/internal/parser"
)

func TestProductCaptionWellFormed(t *testing.T) {
	cmd, err := parser.ProductCaption("/add_product\nName: Vintage Jacket\nPrice: 79.99\nDescription: Warm.")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Name != "Vintage Jacket" || cmd.Price != 79.99 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Description == nil || *cmd.Description != "Warm." {
		t.Fatalf("description not parsed: %+v", cmd.Description)
	}
}

func TestProductCaptionCaseAndWhitespace(t *testing.T) {
	cmd, err := parser.ProductCaption("  /ADD_PRODUCT \n NAME :  Lamp \n price: 10 ")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Name != "Lamp" || cmd.Price != 10 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Description != nil {
		t.Fatalf("description should be absent, got %q", *cmd.Description)
	}
}

func TestProductCaptionDuplicateKeyLastWins(t *testing.T) {
	cmd, err := parser.ProductCaption("/add_product\nName: First\nName: Second\nPrice: 5")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Name != "Second" {
		t.Fatalf("want last Name to win, got %q", cmd.Name)
	}
}

func TestProductCaptionEmptyDescriptionIsEmptyString(t *testing.T) {
	cmd, err := parser.ProductCaption("/add_product\nName: X\nPrice: 1\nDescription:")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Description == nil || *cmd.Description != "" {
		t.Fatalf("want empty-string description, got %+v", cmd.Description)
	}
}

func TestProductCaptionValueWithColon(t *testing.T) {
	// Split happens at the first colon only.
	cmd, err := parser.ProductCaption("/add_product\nName: Watch: Limited Edition\nPrice: 250")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Name != "Watch: Limited Edition" {
		t.Fatalf("unexpected name: %q", cmd.Name)
	}
}

func TestProductCaptionValidationFailures(t *testing.T) {
	cases := []struct {
		name    string
		caption string
	}{
		{"missing name", "/add_product\nPrice: 10"},
		{"missing price", "/add_product\nName: X"},
		{"non-numeric price", "/add_product\nName: X\nPrice: cheap"},
		{"negative price", "/add_product\nName: X\nPrice: -5"},
		{"NaN price", "/add_product\nName: X\nPrice: NaN"},
		{"Inf price", "/add_product\nName: X\nPrice: Inf"},
		{"signed Inf price", "/add_product\nName: X\nPrice: +Inf"},
		{"hex float price", "/add_product\nName: X\nPrice: 0x1p4"},
		{"underscore digits price", "/add_product\nName: X\nPrice: 7_9.99"},
		{"signed price", "/add_product\nName: X\nPrice: +5"},
		{"empty caption", "/add_product"},
		{"no colon lines only", "/add_product\njust some text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.ProductCaption(tc.caption)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
		})
	}
}

func TestProductCaptionPlainDecimalPrices(t *testing.T) {
	cases := map[string]float64{
		"0":     0,
		"10":    10,
		"79.99": 79.99,
		".5":    0.5,
		"5.":    5,
	}
	for raw, want := range cases {
		cmd, err := parser.ProductCaption("/add_product\nName: X\nPrice: " + raw)
		if err != nil {
			t.Fatalf("price %q should parse: %v", raw, err)
		}
		if cmd.Price != want {
			t.Fatalf("price %q = %v, want %v", raw, cmd.Price, want)
		}
	}
}

func TestProductCaptionInvalidPriceMentionsValue(t *testing.T) {
	_, err := parser.ProductCaption("/add_product\nName: X\nPrice: abc")
	if err == nil || !strings.Contains(err.Error(), "abc") {
		t.Fatalf("error should carry the raw price, got %v", err)
	}
}

func TestOrderUpdateBasic(t *testing.T) {
	cmd, err := parser.OrderUpdate("/update_order 123 shipped")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.OrderNumber != "123" || cmd.Status != "shipped" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.TrackingNumber != nil {
		t.Fatalf("tracking should be absent, got %q", *cmd.TrackingNumber)
	}
}

func TestOrderUpdateTracking(t *testing.T) {
	cmd, err := parser.OrderUpdate("/update_order 123 shipped tracking=1Z999")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.TrackingNumber == nil || *cmd.TrackingNumber != "1Z999" {
		t.Fatalf("tracking not parsed: %+v", cmd.TrackingNumber)
	}
}

func TestOrderUpdateTrackingPrefixCaseInsensitiveValueVerbatim(t *testing.T) {
	cmd, err := parser.OrderUpdate("/update_order 123 shipped TRACKING=AbC-9")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.TrackingNumber == nil || *cmd.TrackingNumber != "AbC-9" {
		t.Fatalf("want verbatim value AbC-9, got %+v", cmd.TrackingNumber)
	}
}

func TestOrderUpdateFirstTrackingWinsExtrasIgnored(t *testing.T) {
	cmd, err := parser.OrderUpdate("/update_order 7 packed note tracking=first tracking=second extra")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.TrackingNumber == nil || *cmd.TrackingNumber != "first" {
		t.Fatalf("want first tracking token, got %+v", cmd.TrackingNumber)
	}
	if cmd.OrderNumber != "7" || cmd.Status != "packed" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestOrderUpdateTooFewTokens(t *testing.T) {
	for _, text := range []string{"/update_order", "/update_order 123", "/update_order   "} {
		_, err := parser.OrderUpdate(text)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: want ValidationError, got %v", text, err)
		}
	}
}

func TestExtensionForMIME(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":               "jpg",
		"image/jpg":                "jpg",
		"IMAGE/PNG":                "png",
		"image/gif":                "gif",
		"image/webp":               "webp",
		"image/png; charset=utf-8": "png",
		"application/octet-stream": "jpg",
		"":                         "jpg",
		"jpeg":                     "jpg",
	}
	for mime, want := range cases {
		if got := parser.ExtensionForMIME(mime); got != want {
			t.Fatalf("parser.ExtensionForMIME(%q) = %q, want %q", mime, got, want)
		}
	}
}
