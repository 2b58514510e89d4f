package extractor

import (
	"context"

	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// Disabled is used when no extraction collaborator is configured. Every call fails
// as an extraction failure, so operators fall back to typing the order in.
type Disabled struct{}

// ExtractFromText always fails with errs.ErrExtractionFailed.
func (Disabled) ExtractFromText(context.Context, string) (ports.Extraction, error) {
	return ports.Extraction{}, errs.NewExtractionFailedError("extraction is not configured")
}

// ExtractFromMedia always fails with errs.ErrExtractionFailed.
func (Disabled) ExtractFromMedia(context.Context, string, string) (ports.Extraction, error) {
	return ports.Extraction{}, errs.NewExtractionFailedError("extraction is not configured")
}
