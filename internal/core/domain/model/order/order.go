package order

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// DefaultLocality is stored when an order is created without a locality.
const DefaultLocality = "GENERAL"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// RestoreOrder or Draft.Materialize.
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder or Draft.Materialize")

	// ErrOrderIsReadOnly is returned by every mutation of an archived order.
	ErrOrderIsReadOnly = errors.New("order is archived and read-only")
)

// Field names a mutable attribute of an order. Mutations record the fields they touch
// so that the store can write only those.
type Field string

// Fields recorded by the mutations of Order.
const (
	FieldOrderNumber    Field = "orderNumber"
	FieldCustomerNumber Field = "customerNumber"
	FieldCustomerName   Field = "customerName"
	FieldLocality       Field = "locality"
	FieldStatus         Field = "status"
	FieldNotes          Field = "notes"
	FieldReviewer       Field = "reviewer"
	FieldDispatch       Field = "dispatchAssignment"
	FieldPackaging      Field = "packaging"
)

// Order is a single shipment tracked through the fulfillment pipeline. It is the
// aggregate root: packaging, dispatch and reviewers only change through its methods.
//
// Order follows these invariants:
//   - The identifier and creation time are assigned by the store and never change
//   - Status only moves forward through Advance, and an archived order rejects every mutation
//   - Packaging entries have positive quantities
//   - Reviewer names are unique and upper-cased
//   - Order number tokens are never removed
//
// Every successful mutation records the touched Field; Changes reports them.
type Order struct {
	id             kernel.UUID
	orderNumbers   OrderNumbers
	customerNumber string
	customerName   string
	locality       string
	status         Status
	packaging      PackagingLedger
	dispatch       DispatchAssignment
	reviewers      Reviewers
	notes          string
	source         Source
	createdAt      time.Time

	// version counts the writes the store has accepted for this order.
	version int

	changes map[Field]struct{}

	isConstructed bool
}

// State is the full persisted form of an order, used to rebuild it from storage.
type State struct {
	ID             kernel.UUID
	OrderNumber    string
	CustomerNumber string
	CustomerName   string
	Locality       string
	Status         Status
	Packaging      PackagingLedger
	Dispatch       DispatchAssignment
	Reviewer       string
	Notes          string
	Source         Source
	CreatedAt      time.Time
	Version        int
}

// RestoreOrder rebuilds an order read back from the store.
//
// Only structural fields are checked: the identifier, status and source must be valid.
// Free-text fields are taken as stored, so records written by older clients still load.
// The restored order reports no changes.
//
// Parameters:
//   - state: the persisted form, as produced by State or by the repository
//
// Returns:
//   - *Order: the rebuilt order
//   - error: a validation error naming every invalid structural field
//
// Example:
//
//	o, err := order.RestoreOrder(order.State{
//	    ID:           id,
//	    OrderNumber:  "5542, 5543",
//	    CustomerName: "Bazar Firmat",
//	    Status:       order.Completed,
//	    Source:       order.SourceManual,
//	    Reviewer:     "LUCÍA + PEDRO",
//	})
func RestoreOrder(state State) (*Order, error) {
	if err := errors.Join(
		state.ID.Validate(),
		state.Status.Validate(),
		state.Source.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:             state.ID,
		orderNumbers:   ParseOrderNumbers(state.OrderNumber),
		customerNumber: strings.TrimSpace(state.CustomerNumber),
		customerName:   strings.TrimSpace(state.CustomerName),
		locality:       strings.TrimSpace(state.Locality),
		status:         state.Status,
		packaging:      state.Packaging,
		dispatch:       state.Dispatch,
		reviewers:      ParseReviewers(state.Reviewer),
		notes:          state.Notes,
		source:         state.Source,
		createdAt:      state.CreatedAt,
		version:        state.Version,
		isConstructed:  true,
	}, nil
}

// State returns the full persisted form of the order.
func (o *Order) State() State {
	return State{
		ID:             o.id,
		OrderNumber:    o.orderNumbers.String(),
		CustomerNumber: o.customerNumber,
		CustomerName:   o.customerName,
		Locality:       o.locality,
		Status:         o.status,
		Packaging:      o.packaging,
		Dispatch:       o.dispatch,
		Reviewer:       o.reviewers.String(),
		Notes:          o.notes,
		Source:         o.source,
		CreatedAt:      o.createdAt,
		Version:        o.version,
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Clone returns an independent copy, including the recorded changes.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.changes = maps.Clone(o.changes)
	return &cp
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumbers returns every order number linked to the order.
func (o *Order) OrderNumbers() OrderNumbers {
	return o.orderNumbers
}

// OrderNumber returns the linked order numbers in their stored, comma-joined form.
func (o *Order) OrderNumber() string {
	return o.orderNumbers.String()
}

// CustomerNumber returns the customer's account number; it may be empty.
func (o *Order) CustomerNumber() string {
	return o.customerNumber
}

// CustomerName returns the name the order is shipped to.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Locality returns the destination town, DefaultLocality when none was given.
func (o *Order) Locality() string {
	return o.locality
}

// Status returns the current pipeline stage.
func (o *Order) Status() Status {
	return o.status
}

// Packaging returns the parcels prepared for the order.
func (o *Order) Packaging() PackagingLedger {
	return o.packaging
}

// Dispatch returns who or what takes the order out of the warehouse.
// The zero assignment means nothing was chosen yet.
func (o *Order) Dispatch() DispatchAssignment {
	return o.dispatch
}

// Reviewers returns the operators credited with preparing the order.
func (o *Order) Reviewers() Reviewers {
	return o.reviewers
}

// Notes returns the operators' free-text remarks.
func (o *Order) Notes() string {
	return o.notes
}

// Source tells whether the order was typed in or prefilled by extraction.
func (o *Order) Source() Source {
	return o.source
}

// CreatedAt returns when the store accepted the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the number of writes the store has accepted for the order.
// Updates under the reject policy must carry the version they were based on.
func (o *Order) Version() int {
	return o.version
}

// CanMutate reports whether the order accepts changes. Archived orders can only be deleted.
func (o *Order) CanMutate() bool {
	return o.status.CanMutate()
}

// Advance moves the order one step along the pipeline.
// On an archived order it does nothing and records no change.
func (o *Order) Advance() error {
	if !o.CanMutate() {
		return nil
	}

	next, err := o.status.Advance()
	if err != nil {
		return err
	}

	o.status = next
	o.touch(FieldStatus)
	return nil
}

// SetStatus sets the status directly, bypassing single-step progression.
// It is the generic update path; Advance is the one operators normally use.
func (o *Order) SetStatus(status Status) error {
	if err := o.mutable(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}
	if status == o.status {
		return nil
	}

	o.status = status
	o.touch(FieldStatus)
	return nil
}

// SetCustomerNumber replaces the customer's account number. Blank is allowed.
func (o *Order) SetCustomerNumber(customerNumber string) error {
	if err := o.mutable(); err != nil {
		return err
	}
	o.setText(&o.customerNumber, strings.TrimSpace(customerNumber), FieldCustomerNumber)
	return nil
}

// SetCustomerName replaces the customer name. A blank name is a validation error.
func (o *Order) SetCustomerName(customerName string) error {
	if err := o.mutable(); err != nil {
		return err
	}
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.setText(&o.customerName, customerName, FieldCustomerName)
	return nil
}

// SetLocality stores DefaultLocality for a blank value.
func (o *Order) SetLocality(locality string) error {
	if err := o.mutable(); err != nil {
		return err
	}
	o.setText(&o.locality, normalizeLocality(locality), FieldLocality)
	return nil
}

// SetNotes replaces the remarks verbatim.
func (o *Order) SetNotes(notes string) error {
	if err := o.mutable(); err != nil {
		return err
	}
	o.setText(&o.notes, notes, FieldNotes)
	return nil
}

// LinkOrderNumber appends one or more comma separated order numbers.
// Numbers that are already linked are skipped.
func (o *Order) LinkOrderNumber(number string) error {
	if err := o.mutable(); err != nil {
		return err
	}

	numbers, changed, err := o.orderNumbers.Link(number)
	if err != nil {
		return err
	}
	if changed {
		o.orderNumbers = numbers
		o.touch(FieldOrderNumber)
	}
	return nil
}

// AddPackagingEntry appends an entry to the packaging ledger and returns it.
//
// Parameters:
//   - deposit: where the parcels wait, a preset deposit or free text
//   - parcelType: box, bag and so on, a preset type or free text
//   - quantity: number of parcels, at least 1
//
// Returns the new entry with a fresh identifier, or a validation error that leaves
// the ledger unchanged.
//
// Example:
//
//	entry, err := o.AddPackagingEntry(order.Preset("Dep.D1"), order.Preset("Caja"), 3)
func (o *Order) AddPackagingEntry(deposit, parcelType Choice, quantity int) (PackagingEntry, error) {
	if err := o.mutable(); err != nil {
		return PackagingEntry{}, err
	}

	ledger, entry, err := o.packaging.Add(deposit, parcelType, quantity)
	if err != nil {
		return PackagingEntry{}, err
	}

	o.packaging = ledger
	o.touch(FieldPackaging)
	return entry, nil
}

// RemovePackagingEntry drops an entry by id. An unknown id changes nothing.
func (o *Order) RemovePackagingEntry(entryID kernel.UUID) error {
	if err := o.mutable(); err != nil {
		return err
	}

	ledger, removed := o.packaging.Remove(entryID)
	if removed {
		o.packaging = ledger
		o.touch(FieldPackaging)
	}
	return nil
}

// AssignDispatch replaces the dispatch assignment. The zero assignment clears it.
func (o *Order) AssignDispatch(assignment DispatchAssignment) error {
	if err := o.mutable(); err != nil {
		return err
	}
	if assignment.Encode() == o.dispatch.Encode() {
		o.dispatch = assignment
		return nil
	}

	o.dispatch = assignment
	o.touch(FieldDispatch)
	return nil
}

// AddCollaborator credits another operator with preparing the order.
// Adding a name that is already credited is a no-op.
func (o *Order) AddCollaborator(name string) error {
	if err := o.mutable(); err != nil {
		return err
	}

	reviewers, changed, err := o.reviewers.Add(name)
	if err != nil {
		return err
	}
	if changed {
		o.reviewers = reviewers
		o.touch(FieldReviewer)
	}
	return nil
}

// EnsureReviewerAssigned makes operator the sole reviewer of an order nobody has been
// credited with yet. It reports whether the order changed. Orders that already have a
// reviewer, and archived orders, are left alone.
func (o *Order) EnsureReviewerAssigned(operator string) (bool, error) {
	if !o.CanMutate() || !o.reviewers.IsEmpty() {
		return false, nil
	}

	reviewers, changed, err := o.reviewers.Add(operator)
	if err != nil {
		return false, err
	}
	o.reviewers = reviewers
	if changed {
		o.touch(FieldReviewer)
	}
	return changed, nil
}

// Changes lists the fields touched since the order was restored, in a stable order.
func (o *Order) Changes() []Field {
	return slices.Sorted(maps.Keys(o.changes))
}

// HasChanges reports whether any field was touched since the order was restored.
func (o *Order) HasChanges() bool {
	return len(o.changes) > 0
}

// IsChanged reports whether field was touched since the order was restored.
func (o *Order) IsChanged(field Field) bool {
	_, ok := o.changes[field]
	return ok
}

func (o *Order) mutable() error {
	if !o.CanMutate() {
		return ErrOrderIsReadOnly
	}
	return nil
}

func (o *Order) setText(dst *string, value string, field Field) {
	if *dst == value {
		return
	}
	*dst = value
	o.touch(field)
}

func (o *Order) touch(field Field) {
	if o.changes == nil {
		o.changes = make(map[Field]struct{})
	}
	o.changes[field] = struct{}{}
}

func normalizeLocality(locality string) string {
	locality = strings.TrimSpace(locality)
	if locality == "" {
		return DefaultLocality
	}
	return locality
}
