package order

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrPackagingEntryIsNotConstructed is returned by Validate on a zero PackagingEntry.
var ErrPackagingEntryIsNotConstructed = errors.New("PackagingEntry must be created via NewPackagingEntry")

// Choice is either one of the preset labels offered to operators or free text
// entered under "Other". Both resolve to the plain label that gets stored.
type Choice struct {
	label string
	other bool
}

// Preset selects one of the predefined labels.
func Preset(label string) Choice {
	return Choice{label: strings.TrimSpace(label)}
}

// Other carries free text typed by the operator.
func Other(text string) Choice {
	return Choice{label: strings.TrimSpace(text), other: true}
}

// IsOther reports whether the operator typed the label under "Other".
func (c Choice) IsOther() bool {
	return c.other
}

// Resolve returns the label to store.
func (c Choice) Resolve() string {
	return c.label
}

// PackagingEntry is one line of the packaging ledger: some quantity of a parcel type
// taken from a deposit. Entries are immutable; correcting one means removing it and
// adding a new one.
type PackagingEntry struct {
	id         kernel.UUID
	deposit    string
	parcelType string
	quantity   int
	guard      guard.ConstructorGuard
}

// NewPackagingEntry validates the choices and assigns a fresh identifier.
func NewPackagingEntry(deposit, parcelType Choice, quantity int) (PackagingEntry, error) {
	return newPackagingEntry(kernel.NewUUID(), deposit.Resolve(), parcelType.Resolve(), quantity)
}

// RestorePackagingEntry rebuilds an entry read back from storage.
func RestorePackagingEntry(id kernel.UUID, deposit, parcelType string, quantity int) (PackagingEntry, error) {
	if err := id.Validate(); err != nil {
		return PackagingEntry{}, err
	}
	return newPackagingEntry(id, strings.TrimSpace(deposit), strings.TrimSpace(parcelType), quantity)
}

func newPackagingEntry(id kernel.UUID, deposit, parcelType string, quantity int) (PackagingEntry, error) {
	var joined error
	if deposit == "" {
		joined = errors.Join(joined, errs.NewValueIsRequiredError("deposit"))
	}
	if parcelType == "" {
		joined = errors.Join(joined, errs.NewValueIsRequiredError("type"))
	}
	if quantity <= 0 {
		joined = errors.Join(joined, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32))
	}
	if joined != nil {
		return PackagingEntry{}, joined
	}

	return PackagingEntry{
		id:         id,
		deposit:    deposit,
		parcelType: parcelType,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through NewPackagingEntry.
// Returns ErrPackagingEntryIsNotConstructed otherwise.
func (e PackagingEntry) Validate() error {
	return e.guard.Validate(ErrPackagingEntryIsNotConstructed)
}

// ID returns the entry's identifier, used to remove it.
func (e PackagingEntry) ID() kernel.UUID {
	return e.id
}

// Deposit returns where the parcels wait, e.g. "Dep.D1".
func (e PackagingEntry) Deposit() string {
	return e.deposit
}

// ParcelType returns the kind of parcel, e.g. "Caja".
func (e PackagingEntry) ParcelType() string {
	return e.parcelType
}

// Quantity returns the number of parcels; always at least 1.
func (e PackagingEntry) Quantity() int {
	return e.quantity
}

// String renders the entry as "3 x Caja (Dep.D1)".
func (e PackagingEntry) String() string {
	return fmt.Sprintf("%d x %s (%s)", e.quantity, e.parcelType, e.deposit)
}

// PackagingLedger is the ordered list of packaging entries of an order.
// It is a value: Add and Remove return a new ledger and leave the receiver untouched.
type PackagingLedger struct {
	entries []PackagingEntry
}

// NewPackagingLedger builds a ledger from already validated entries.
func NewPackagingLedger(entries ...PackagingEntry) (PackagingLedger, error) {
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return PackagingLedger{}, err
		}
	}
	return PackagingLedger{entries: slices.Clone(entries)}, nil
}

// Add appends a new entry. On a validation error the ledger is returned unchanged.
func (l PackagingLedger) Add(deposit, parcelType Choice, quantity int) (PackagingLedger, PackagingEntry, error) {
	entry, err := NewPackagingEntry(deposit, parcelType, quantity)
	if err != nil {
		return l, PackagingEntry{}, err
	}

	entries := append(slices.Clone(l.entries), entry)
	return PackagingLedger{entries: entries}, entry, nil
}

// Remove drops the entry with the given id. Removing an unknown id is a no-op
// reported through removed.
func (l PackagingLedger) Remove(id kernel.UUID) (_ PackagingLedger, removed bool) {
	idx := slices.IndexFunc(l.entries, func(e PackagingEntry) bool { return e.id.IsEqual(id) })
	if idx < 0 {
		return l, false
	}
	return PackagingLedger{entries: slices.Delete(slices.Clone(l.entries), idx, idx+1)}, true
}

// Total is the sum of all entry quantities, 0 for an empty ledger.
func (l PackagingLedger) Total() int {
	total := 0
	for _, e := range l.entries {
		total += e.quantity
	}
	return total
}

// Entries returns a copy of the entries in insertion order.
func (l PackagingLedger) Entries() []PackagingEntry {
	return slices.Clone(l.entries)
}

// Len returns the number of entries, not the number of parcels; see Total.
func (l PackagingLedger) Len() int {
	return len(l.entries)
}

// IsEmpty reports whether nothing has been packed yet.
func (l PackagingLedger) IsEmpty() bool {
	return len(l.entries) == 0
}
