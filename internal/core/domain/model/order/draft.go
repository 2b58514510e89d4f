package order

import (
	"errors"
	"strings"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrDraftIsNotConstructed is returned by Validate on a zero Draft.
var ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft")

// DraftParams are the fields an operator (or an extraction) supplies for a new order.
type DraftParams struct {
	OrderNumber    string
	CustomerNumber string
	CustomerName   string
	Locality       string
	Notes          string
	Source         Source
	// Operator is the acting operator; it becomes the first reviewer.
	Operator string
}

// Draft is a validated new order that has not been stored yet. The store assigns the
// identifier and creation time through Materialize.
type Draft struct {
	orderNumbers   OrderNumbers
	customerNumber string
	customerName   string
	locality       string
	notes          string
	source         Source
	reviewers      Reviewers
	guard          guard.ConstructorGuard
}

// NewDraft validates the creation fields.
//
// An order number and a customer name are required. A blank locality becomes
// DefaultLocality, a blank operator becomes kernel.SystemOperator and an unset source
// becomes SourceManual.
func NewDraft(params DraftParams) (Draft, error) {
	var joined error

	numbers := ParseOrderNumbers(params.OrderNumber)
	if numbers.IsEmpty() {
		joined = errors.Join(joined, errs.NewValueIsRequiredError("orderNumber"))
	}

	customerName := strings.TrimSpace(params.CustomerName)
	if customerName == "" {
		joined = errors.Join(joined, errs.NewValueIsRequiredError("customerName"))
	}

	source := params.Source
	if source == SourceUnknown {
		source = SourceManual
	}
	joined = errors.Join(joined, source.Validate())

	if joined != nil {
		return Draft{}, joined
	}

	operator := kernel.NormalizeName(params.Operator)
	if operator == "" {
		operator = kernel.SystemOperator
	}
	reviewers, _, err := Reviewers{}.Add(operator)
	if err != nil {
		return Draft{}, err
	}

	return Draft{
		orderNumbers:   numbers,
		customerNumber: strings.TrimSpace(params.CustomerNumber),
		customerName:   customerName,
		locality:       normalizeLocality(params.Locality),
		notes:          params.Notes,
		source:         source,
		reviewers:      reviewers,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the draft was created through NewDraft.
// Returns ErrDraftIsNotConstructed otherwise.
func (d Draft) Validate() error {
	return d.guard.Validate(ErrDraftIsNotConstructed)
}

// OrderNumber returns the order numbers in their stored, comma-joined form.
func (d Draft) OrderNumber() string {
	return d.orderNumbers.String()
}

// CustomerNumber returns the customer's account number; it may be empty.
func (d Draft) CustomerNumber() string {
	return d.customerNumber
}

// CustomerName returns the trimmed customer name.
func (d Draft) CustomerName() string {
	return d.customerName
}

// Locality returns the destination town, DefaultLocality when none was given.
func (d Draft) Locality() string {
	return d.locality
}

// Notes returns the initial remarks.
func (d Draft) Notes() string {
	return d.notes
}

// Source tells whether the draft was typed in or prefilled by extraction.
func (d Draft) Source() Source {
	return d.source
}

// Reviewer returns the creating operator's normalized name, or
// kernel.SystemOperator when the draft was created without one.
func (d Draft) Reviewer() string {
	return d.reviewers.String()
}

// Materialize turns the draft into a PENDING order with the identity the store assigned.
// The order starts at version 1 and reports no changes.
func (d Draft) Materialize(id kernel.UUID, createdAt time.Time) (*Order, error) {
	if err := errors.Join(d.Validate(), id.Validate()); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Order{
		id:             id,
		orderNumbers:   d.orderNumbers,
		customerNumber: d.customerNumber,
		customerName:   d.customerName,
		locality:       d.locality,
		status:         Pending,
		reviewers:      d.reviewers,
		notes:          d.notes,
		source:         d.source,
		createdAt:      createdAt,
		version:        1,
		isConstructed:  true,
	}, nil
}
