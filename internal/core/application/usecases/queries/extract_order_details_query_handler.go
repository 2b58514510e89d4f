package queries

import (
	"context"
	"errors"
	"strings"

	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// ExtractOrderDetailsQueryHandler asks the extraction service for order details.
//
// Example:
//
// 	query, _ := NewExtractOrderDetailsFromText("Pedido 5542 para Bazar Firmat")
// 	details, err := handler.Handle(ctx, query)
type ExtractOrderDetailsQueryHandler struct {
	extractor ports.Extractor
}

// NewExtractOrderDetailsQueryHandler creates the handler with the given extractor.
func NewExtractOrderDetailsQueryHandler(extractor ports.Extractor) ExtractOrderDetailsQueryHandler {
	return ExtractOrderDetailsQueryHandler{extractor: extractor}
}

// Handle returns the proposed customer name and locality. Any failure of the
// collaborator, and any answer missing either field, is an errs.ExtractionFailedError:
// the operator falls back to typing the order in.
func (h ExtractOrderDetailsQueryHandler) Handle(ctx context.Context, query ExtractOrderDetailsQuery) (ports.Extraction, error) {
	if err := query.Validate(); err != nil {
		return ports.Extraction{}, err
	}

	var (
		extraction ports.Extraction
		err        error
	)
	if query.IsMedia() {
		extraction, err = h.extractor.ExtractFromMedia(ctx, query.Media(), query.MimeType())
	} else {
		extraction, err = h.extractor.ExtractFromText(ctx, query.Text())
	}

	if err != nil {
		if errors.Is(err, errs.ErrExtractionFailed) {
			return ports.Extraction{}, err
		}
		return ports.Extraction{}, errs.NewExtractionFailedErrorWithCause("extractor failed", err)
	}

	extraction.CustomerName = strings.TrimSpace(extraction.CustomerName)
	extraction.Locality = strings.TrimSpace(extraction.Locality)

	switch {
	case extraction.CustomerName == "":
		return ports.Extraction{}, errs.NewExtractionFailedError("no customer name found")
	case extraction.Locality == "":
		return ports.Extraction{}, errs.NewExtractionFailedError("no locality found")
	}
	return extraction, nil
}
