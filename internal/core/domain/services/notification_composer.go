package services

import (
	"fmt"
	"strings"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
)

const notificationTimeLayout = "02/01/2006 15:04"

// NotificationComposer renders the status message sent to customers and drivers.
type NotificationComposer struct {
	loc *time.Location
}

// NewNotificationComposer renders timestamps in loc; nil means UTC.
func NewNotificationComposer(loc *time.Location) NotificationComposer {
	if loc == nil {
		loc = time.UTC
	}
	return NotificationComposer{loc: loc}
}

// Compose builds the message for an order. The packaging and dispatch assignment are
// passed separately so that unsaved edits can be previewed. The result depends only on
// the arguments.
func (c NotificationComposer) Compose(
	o *order.Order,
	packaging order.PackagingLedger,
	dispatch order.DispatchAssignment,
	operator string,
	now time.Time,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s* - %s\n", strings.ToUpper(o.Locality()), o.Status().Label())
	fmt.Fprintf(&b, "Pedido: %s\n", o.OrderNumber())
	if o.CustomerNumber() != "" {
		fmt.Fprintf(&b, "Cliente: %s (%s)\n", o.CustomerName(), o.CustomerNumber())
	} else {
		fmt.Fprintf(&b, "Cliente: %s\n", o.CustomerName())
	}

	b.WriteString("Bultos:\n")
	if packaging.IsEmpty() {
		b.WriteString("- sin detalle\n")
	}
	for _, entry := range packaging.Entries() {
		fmt.Fprintf(&b, "- %d %s (%s)\n", entry.Quantity(), strings.ToUpper(entry.ParcelType()), entry.Deposit())
	}
	fmt.Fprintf(&b, "Total: %d bultos\n", packaging.Total())

	fmt.Fprintf(&b, "Preparó: %s\n", orDash(o.Reviewers().String()))
	fmt.Fprintf(&b, "Informa: %s\n", orDash(kernel.NormalizeName(operator)))
	fmt.Fprintf(&b, "Despacho: %s\n", orDash(dispatch.String()))
	fmt.Fprintf(&b, "Estado: %s\n", o.Status().Label())
	fmt.Fprintf(&b, "Fecha: %s", now.In(c.loc).Format(notificationTimeLayout))

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
