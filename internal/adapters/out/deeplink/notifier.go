// Package deeplink hands notifications to the operator as WhatsApp click-to-chat links.
// Opening the link is left to the operator's device; delivery is never confirmed.
package deeplink

import (
	"context"
	"net/url"
	"strings"
	"unicode"

	"warehouse/internal/core/ports"
)

const baseURL = "https://wa.me/"

// Notifier implements ports.Notifier.
type Notifier struct {
	supportPhone string
}

// NewNotifier uses supportPhone for notifications without a phone of their own. A
// blank support phone produces a link that lets the operator pick the chat.
func NewNotifier(supportPhone string) Notifier {
	return Notifier{supportPhone: digits(supportPhone)}
}

// Notify builds the chat link for the message. Nothing is sent from the server, the
// operator opens the link.
func (n Notifier) Notify(_ context.Context, notification ports.Notification) (ports.Handoff, error) {
	phone := digits(notification.Phone)
	if phone == "" {
		phone = n.supportPhone
	}

	query := url.Values{"text": {notification.Message}}
	return ports.Handoff{Link: baseURL + phone + "?" + query.Encode()}, nil
}

// digits keeps only the digits of a phone number, as wa.me expects.
func digits(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}
