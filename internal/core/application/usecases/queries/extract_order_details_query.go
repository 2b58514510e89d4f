package queries

import (
	"errors"
	"strings"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrExtractOrderDetailsQueryIsNotConstructed is returned by Validate for a
// ExtractOrderDetailsQuery built without its constructor.
var ErrExtractOrderDetailsQueryIsNotConstructed = errors.New(
	"ExtractOrderDetailsQuery must be created via one of the NewExtractOrderDetails constructors",
)

// ExtractOrderDetailsQuery asks the extraction collaborator to prefill a new order
// from a pasted message or from a picture of a handwritten order. Nothing is stored.
type ExtractOrderDetailsQuery struct {
	text     string
	media    string
	mimeType string

	guard guard.ConstructorGuard
}

// NewExtractOrderDetailsFromText builds a query over pasted text. Blank text is rejected.
func NewExtractOrderDetailsFromText(text string) (ExtractOrderDetailsQuery, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ExtractOrderDetailsQuery{}, errs.NewValueIsRequiredError("text")
	}
	return ExtractOrderDetailsQuery{text: text, guard: guard.NewConstructorGuard()}, nil
}

// NewExtractOrderDetailsFromMedia takes base64 encoded image data.
func NewExtractOrderDetailsFromMedia(base64Data, mimeType string) (ExtractOrderDetailsQuery, error) {
	var joined error
	base64Data = strings.TrimSpace(base64Data)
	if base64Data == "" {
		joined = errors.Join(joined, errs.NewValueIsRequiredError("data"))
	}
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		joined = errors.Join(joined, errs.NewValueIsRequiredError("mimeType"))
	}
	if joined != nil {
		return ExtractOrderDetailsQuery{}, joined
	}

	return ExtractOrderDetailsQuery{media: base64Data, mimeType: mimeType, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through its constructor.
func (q ExtractOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrExtractOrderDetailsQueryIsNotConstructed)
}

// IsMedia reports whether the query carries an image or a document.
func (q ExtractOrderDetailsQuery) IsMedia() bool {
	return q.media != ""
}

// Text returns the pasted text.
func (q ExtractOrderDetailsQuery) Text() string {
	return q.text
}

// Media returns the base64 payload.
func (q ExtractOrderDetailsQuery) Media() string {
	return q.media
}

// MimeType returns the payload's media type.
func (q ExtractOrderDetailsQuery) MimeType() string {
	return q.mimeType
}
