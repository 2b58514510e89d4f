package order

import (
	"fmt"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// DispatchCategory says who takes an order out of the warehouse.
type DispatchCategory int

const (
	// NoCategory marks an empty or legacy assignment.
	NoCategory DispatchCategory = iota
	TravelingAgent
	Salesperson
	Carrier
	SelfPickup
)

var dispatchCategories = []struct {
	category DispatchCategory
	name     string
	prefix   string
}{
	{TravelingAgent, "Traveling Agent", "TRAVELING AGENT:"},
	{Salesperson, "Salesperson", "SALESPERSON:"},
	{Carrier, "Carrier", "CARRIER:"},
	{SelfPickup, "Self-Pickup", "SELF-PICKUP:"},
}

// DispatchCategories lists the selectable categories.
func DispatchCategories() []DispatchCategory {
	return []DispatchCategory{TravelingAgent, Salesperson, Carrier, SelfPickup}
}

// ParseDispatchCategory accepts the display name or the storage prefix, ignoring case,
// spaces, hyphens and underscores: "Traveling Agent", "TRAVELING_AGENT" and
// "traveling-agent" are the same category.
func ParseDispatchCategory(s string) (DispatchCategory, error) {
	needle := categoryKey(s)
	for _, c := range dispatchCategories {
		if categoryKey(c.name) == needle || categoryKey(c.prefix) == needle {
			return c.category, nil
		}
	}
	return NoCategory, errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a dispatch category", s))
}

func categoryKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', ':':
			return -1
		}
		return r
	}, strings.ToUpper(s))
}

// String returns the category's display name, e.g. "Traveling Agent".
// NoCategory renders as an empty string.
func (c DispatchCategory) String() string {
	for _, known := range dispatchCategories {
		if known.category == c {
			return known.name
		}
	}
	return ""
}

// Prefix is the marker that starts the stored form of an assignment in this category.
func (c DispatchCategory) Prefix() string {
	for _, known := range dispatchCategories {
		if known.category == c {
			return known.prefix
		}
	}
	return ""
}

// UsesRoster reports whether values of this category come from a closed list of names.
func (c DispatchCategory) UsesRoster() bool {
	return c == TravelingAgent || c == Salesperson
}

// DispatchAssignment is the tagged union behind the stored "carrier" string.
// The zero value means nothing is assigned yet. An assignment with NoCategory and a
// value is a legacy free-form string kept exactly as it was stored.
type DispatchAssignment struct {
	category DispatchCategory
	value    string
}

// NewDispatchAssignment validates a category/value pair chosen by an operator.
// Roster membership is checked by the dispatch resolver, which owns the roster.
func NewDispatchAssignment(category DispatchCategory, value string) (DispatchAssignment, error) {
	if category == NoCategory || category.Prefix() == "" {
		return DispatchAssignment{}, errs.NewValueIsRequiredError("category")
	}

	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return DispatchAssignment{}, errs.NewValueIsRequiredError("value")
	}

	return DispatchAssignment{category: category, value: value}, nil
}

// LegacyDispatch wraps a stored string that carries no known prefix.
func LegacyDispatch(raw string) DispatchAssignment {
	return DispatchAssignment{value: strings.TrimSpace(raw)}
}

// DecodeDispatch reads a stored assignment. Prefixes match case-insensitively;
// strings without a known prefix, or with a prefix and nothing after it, are legacy.
func DecodeDispatch(s string) DispatchAssignment {
	trimmed := strings.TrimSpace(s)
	for _, c := range dispatchCategories {
		if len(trimmed) < len(c.prefix) || !strings.EqualFold(trimmed[:len(c.prefix)], c.prefix) {
			continue
		}
		value := strings.TrimSpace(trimmed[len(c.prefix):])
		if value == "" {
			break
		}
		return DispatchAssignment{category: c.category, value: value}
	}
	return LegacyDispatch(trimmed)
}

// NormalizeDispatch is the canonical stored form of s.
func NormalizeDispatch(s string) string {
	return DecodeDispatch(s).Encode()
}

// Encode produces the stored form: "PREFIX: VALUE" with the value upper-cased, or the
// legacy string verbatim.
func (a DispatchAssignment) Encode() string {
	if a.category == NoCategory {
		return a.value
	}
	return a.category.Prefix() + " " + kernel.NormalizeName(a.value)
}

// WithValue returns the assignment with its value replaced, keeping the category.
func (a DispatchAssignment) WithValue(value string) DispatchAssignment {
	a.value = value
	return a
}

// Category returns how the order leaves the warehouse.
func (a DispatchAssignment) Category() DispatchCategory {
	return a.category
}

// Value returns who carries the order, as chosen or typed by the operator.
func (a DispatchAssignment) Value() string {
	return a.value
}

// IsZero reports whether no dispatch has been chosen.
func (a DispatchAssignment) IsZero() bool {
	return a.category == NoCategory && a.value == ""
}

// IsLegacy reports a stored value without a recognized category prefix.
// It is kept verbatim and encoded back unchanged.
func (a DispatchAssignment) IsLegacy() bool {
	return a.category == NoCategory && a.value != ""
}

// String renders the assignment for people, e.g. "Traveling Agent: Matías".
func (a DispatchAssignment) String() string {
	if a.category == NoCategory {
		return a.value
	}
	return a.category.String() + ": " + a.value
}
