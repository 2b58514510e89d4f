package order

import (
	"fmt"
	"strings"

	"warehouse/internal/pkg/errs"
)

// Source records how an order entered the system.
type Source int

const (
	SourceUnknown Source = iota
	// SourceAI marks orders created from a document extraction.
	SourceAI
	// SourceManual marks orders typed in by an operator.
	SourceManual
)

// ParseSource reads a stored source. Blank reads as SourceManual, which is what
// records written before the column existed hold.
func ParseSource(s string) (Source, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AI":
		return SourceAI, nil
	case "MANUAL", "":
		return SourceManual, nil
	default:
		return SourceUnknown, errs.NewValueIsInvalidErrorWithCause("source", fmt.Errorf("%q is not a valid source", s))
	}
}

// String returns the stored form: "AI" or "Manual".
func (s Source) String() string {
	switch s {
	case SourceAI:
		return "AI"
	case SourceManual:
		return "Manual"
	default:
		return "Unknown"
	}
}

// Validate rejects SourceUnknown and values outside the enumeration.
func (s Source) Validate() error {
	if s != SourceAI && s != SourceManual {
		return errs.NewValueIsInvalidErrorWithCause("source", fmt.Errorf("%d is not a valid source", s))
	}
	return nil
}
