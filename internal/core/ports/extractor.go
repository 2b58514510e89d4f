package ports

import (
	"context"
)

// Extraction is the prefill an extractor proposes for a new order.
type Extraction struct {
	CustomerName string
	Locality     string
}

// Extractor reads customer details out of free text or a picture of an order.
//
// Implementations return errs.ExtractionFailedError when nothing usable was found,
// including when the collaborator answers with an empty result.
type Extractor interface {
	ExtractFromText(ctx context.Context, text string) (Extraction, error)
	ExtractFromMedia(ctx context.Context, base64Data, mimeType string) (Extraction, error)
}
