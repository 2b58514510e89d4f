package order

import (
	"errors"
	"slices"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// ReviewerSeparator joins reviewer names in the persisted form.
const ReviewerSeparator = " + "

// Reviewers holds the normalized names of the operators credited with an order,
// in order of first addition.
type Reviewers struct {
	names []string
}

// ParseReviewers reads a persisted reviewer list. Both "+" and "," separate names.
func ParseReviewers(s string) Reviewers {
	var r Reviewers
	fields := strings.FieldsFunc(s, func(c rune) bool { return c == '+' || c == ',' })
	for _, field := range fields {
		name := kernel.NormalizeName(field)
		if name == "" || slices.Contains(r.names, name) {
			continue
		}
		r.names = append(r.names, name)
	}
	return r
}

// ErrReviewerNameHasSeparator is the cause reported for a name that would split into
// several names once stored.
var ErrReviewerNameHasSeparator = errors.New(`reviewer name must not contain "+" or ","`)

// Add returns a copy with name appended. Adding a name already present is a no-op
// reported through changed. A name holding one of the stored separators is rejected.
func (r Reviewers) Add(name string) (_ Reviewers, changed bool, _ error) {
	normalized := kernel.NormalizeName(name)
	if normalized == "" {
		return r, false, errs.NewValueIsRequiredError("collaborator")
	}
	if strings.ContainsAny(normalized, "+,") {
		return r, false, errs.NewValueIsInvalidErrorWithCause("collaborator", ErrReviewerNameHasSeparator)
	}
	if slices.Contains(r.names, normalized) {
		return r, false, nil
	}

	names := append(slices.Clone(r.names), normalized)
	return Reviewers{names: names}, true, nil
}

// Contains reports whether name, once normalized, is credited.
func (r Reviewers) Contains(name string) bool {
	return slices.Contains(r.names, kernel.NormalizeName(name))
}

// Names returns a copy of the credited names in order of addition.
func (r Reviewers) Names() []string {
	return slices.Clone(r.names)
}

// IsEmpty reports whether nobody has been credited yet.
func (r Reviewers) IsEmpty() bool {
	return len(r.names) == 0
}

// String returns the stored form, names joined with ReviewerSeparator.
func (r Reviewers) String() string {
	return strings.Join(r.names, ReviewerSeparator)
}
