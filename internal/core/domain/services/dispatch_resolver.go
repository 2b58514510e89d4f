package services

import (
	"fmt"
	"slices"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"
)

// Roster holds the closed lists of names allowed for the roster categories.
// It is deployment configuration.
type Roster struct {
	TravelingAgents []string
	Salespeople     []string
}

// Names returns the roster for category, or nil for free-text categories.
func (r Roster) Names(category order.DispatchCategory) []string {
	switch category {
	case order.TravelingAgent:
		return slices.Clone(r.TravelingAgents)
	case order.Salesperson:
		return slices.Clone(r.Salespeople)
	default:
		return nil
	}
}

// DispatchResolver converts between the operator's two-part dispatch selection and the
// stored string.
//
// Business rules:
//   - Traveling Agent and Salesperson values must match a roster name (case-insensitive)
//   - Carrier and Self-Pickup take free text
//   - Values decoded from storage are mapped back to the roster spelling, so
//     "TRAVELING AGENT: MATÍAS" reopens as Traveling Agent / "Matías"
//   - Stored strings without a known prefix stay verbatim as legacy assignments
type DispatchResolver struct {
	roster Roster
}

// NewDispatchResolver trims the roster and drops blank or repeated names.
func NewDispatchResolver(roster Roster) DispatchResolver {
	return DispatchResolver{roster: Roster{
		TravelingAgents: cleanRoster(roster.TravelingAgents),
		Salespeople:     cleanRoster(roster.Salespeople),
	}}
}

func cleanRoster(names []string) []string {
	var out []string
	for _, name := range names {
		name = strings.Join(strings.Fields(name), " ")
		if name == "" || slices.ContainsFunc(out, func(n string) bool { return kernel.SameName(n, name) }) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Options lists the selectable values for category. Free-text categories have none.
func (r DispatchResolver) Options(category order.DispatchCategory) []string {
	return r.roster.Names(category)
}

// Resolve validates an operator's selection and returns the assignment to store.
func (r DispatchResolver) Resolve(category order.DispatchCategory, value string) (order.DispatchAssignment, error) {
	assignment, err := order.NewDispatchAssignment(category, value)
	if err != nil {
		return order.DispatchAssignment{}, err
	}

	if !category.UsesRoster() {
		return assignment, nil
	}

	canonical, ok := r.lookup(category, assignment.Value())
	if !ok {
		return order.DispatchAssignment{}, errs.NewValueIsInvalidErrorWithCause(
			"value",
			fmt.Errorf("%q is not a known %s", value, strings.ToLower(category.String())),
		)
	}
	return assignment.WithValue(canonical), nil
}

// Decode reads a stored assignment for editing.
// A roster value that is no longer in the roster is kept as stored.
func (r DispatchResolver) Decode(stored string) order.DispatchAssignment {
	assignment := order.DecodeDispatch(stored)
	if !assignment.Category().UsesRoster() {
		return assignment
	}

	if canonical, ok := r.lookup(assignment.Category(), assignment.Value()); ok {
		return assignment.WithValue(canonical)
	}
	return assignment
}

// Encode produces the stored form of an assignment.
func (r DispatchResolver) Encode(assignment order.DispatchAssignment) string {
	return assignment.Encode()
}

func (r DispatchResolver) lookup(category order.DispatchCategory, value string) (string, bool) {
	for _, name := range r.roster.Names(category) {
		if kernel.SameName(name, value) {
			return name, true
		}
	}
	return "", false
}
