package services

import (
	"fmt"
	"iter"
	"strings"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"golang.org/x/text/cases"
)

// View is a named lifecycle filter over the order set.
type View int

const (
	// ViewActive shows every order that is not archived.
	ViewActive View = iota
	ViewPending
	ViewCompleted
	ViewDispatched
	// ViewArchived is the history view.
	ViewArchived
)

var viewNames = map[View]string{
	ViewActive:     "active",
	ViewPending:    "pending",
	ViewCompleted:  "completed",
	ViewDispatched: "dispatched",
	ViewArchived:   "archived",
}

// ParseView accepts the view names case-insensitively. "", "all" mean ViewActive and
// "history" means ViewArchived.
func ParseView(s string) (View, error) {
	switch needle := strings.ToLower(strings.TrimSpace(s)); needle {
	case "", "all":
		return ViewActive, nil
	case "history":
		return ViewArchived, nil
	default:
		for view, name := range viewNames {
			if name == needle {
				return view, nil
			}
		}
	}
	return ViewActive, errs.NewValueIsInvalidErrorWithCause("view", fmt.Errorf("%q is not a known view", s))
}

// String returns the name ParseView accepts for v.
func (v View) String() string {
	return viewNames[v]
}

// Includes reports whether an order with the given status belongs to the view.
func (v View) Includes(status order.Status) bool {
	switch v {
	case ViewActive:
		return status != order.Archived
	case ViewPending:
		return status == order.Pending
	case ViewCompleted:
		return status == order.Completed
	case ViewDispatched:
		return status == order.Dispatched
	case ViewArchived:
		return status == order.Archived
	default:
		return false
	}
}

// SearchFilter narrows an order set by view and search term.
type SearchFilter struct{}

// NewSearchFilter creates the filter used by the order list.
//
// Example:
//
// 	view, _ := services.ParseView("pending")
// 	for o := range services.NewSearchFilter().Filter(engine.Snapshot(), view, "firmat") {
// 	    fmt.Println(o.OrderNumber(), o.CustomerName())
// 	}
func NewSearchFilter() SearchFilter {
	return SearchFilter{}
}

// Filter yields the orders in view whose customer name, customer number, locality or
// order number contains term, ignoring case. A blank term matches every order in view.
//
// The sequence is lazy and can be ranged over more than once; it keeps the input order.
// orders must not be modified while the sequence is in use.
func (SearchFilter) Filter(orders []*order.Order, view View, term string) iter.Seq[*order.Order] {
	return func(yield func(*order.Order) bool) {
		fold := cases.Fold()
		needle := fold.String(strings.TrimSpace(term))

		for _, o := range orders {
			if o == nil || !view.Includes(o.Status()) {
				continue
			}
			if needle != "" && !matches(fold, o, needle) {
				continue
			}
			if !yield(o) {
				return
			}
		}
	}
}

func matches(fold cases.Caser, o *order.Order, needle string) bool {
	for _, field := range []string{o.CustomerName(), o.CustomerNumber(), o.Locality(), o.OrderNumber()} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}
