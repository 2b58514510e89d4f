package order

import (
	"fmt"
	"strings"

	"warehouse/internal/pkg/errs"
)

// Status is the lifecycle stage of an order.
//
//	PENDING ──> COMPLETED ──> DISPATCHED ──> ARCHIVED
//
// Advance moves exactly one step forward. ARCHIVED is terminal and read-only.
type Status int

const (
	// Unknown catches uninitialised or unparseable values.
	Unknown Status = iota
	Pending
	Completed
	Dispatched
	Archived
)

var statusNames = map[Status]string{
	Pending:    "PENDING",
	Completed:  "COMPLETED",
	Dispatched: "DISPATCHED",
	Archived:   "ARCHIVED",
}

// statusLabels are shown to operators and in outbound notifications.
var statusLabels = map[Status]string{
	Pending:    "Pendiente",
	Completed:  "Preparado",
	Dispatched: "Despachado",
	Archived:   "Archivado",
}

// Statuses lists the valid statuses in pipeline order.
func Statuses() []Status {
	return []Status{Pending, Completed, Dispatched, Archived}
}

// ParseStatus accepts the persisted names case-insensitively.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and values outside the enumeration.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Label returns the localized name shown to operators.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s.String()
}

// CanMutate reports whether an order in this status accepts changes.
// Callers must honor it for every mutation except physical deletion.
func (s Status) CanMutate() bool {
	return s != Archived
}

// Advance returns the next status in the pipeline.
// Archived advances to itself; Unknown cannot advance.
func (s Status) Advance() (Status, error) {
	switch s {
	case Pending:
		return Completed, nil
	case Completed:
		return Dispatched, nil
	case Dispatched, Archived:
		return Archived, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to advance", s),
		)
	}
}
