// Package extractor talks to the AI extraction collaborator over HTTP.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// DefaultTimeout bounds one extraction call when NewClient gets no timeout.
const (
	DefaultTimeout = 30 * time.Second
	maxBodyBytes   = 1 << 20
)

type textRequest struct {
	Text string `json:"text"`
}

type mediaRequest struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

type extractionResponse struct {
	CustomerName string `json:"customer_name"`
	Locality     string `json:"locality"`
}

// Client implements ports.Extractor.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the extraction service at baseURL.
//
// Parameters:
//   - baseURL: service root, a trailing slash is ignored
//   - timeout: per call, DefaultTimeout when zero or negative
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}, nil
}

// ExtractFromText posts pasted text to the service.
func (c *Client) ExtractFromText(ctx context.Context, text string) (ports.Extraction, error) {
	if strings.TrimSpace(text) == "" {
		return ports.Extraction{}, errs.NewValueIsRequiredError("text")
	}
	return c.post(ctx, "/extract/text", textRequest{Text: text})
}

// ExtractFromMedia posts a base64 image or document to the service.
func (c *Client) ExtractFromMedia(ctx context.Context, base64Data, mimeType string) (ports.Extraction, error) {
	if base64Data == "" {
		return ports.Extraction{}, errs.NewValueIsRequiredError("base64Data")
	}
	if mimeType == "" {
		return ports.Extraction{}, errs.NewValueIsRequiredError("mimeType")
	}
	return c.post(ctx, "/extract/media", mediaRequest{Data: base64Data, MimeType: mimeType})
}

func (c *Client) post(ctx context.Context, path string, body any) (ports.Extraction, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return ports.Extraction{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return ports.Extraction{}, errs.NewExtractionFailedErrorWithCause("building request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.Extraction{}, errs.NewExtractionFailedErrorWithCause("collaborator unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ports.Extraction{}, errs.NewExtractionFailedErrorWithCause("reading response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ports.Extraction{}, errs.NewExtractionFailedError(fmt.Sprintf("collaborator answered %d", resp.StatusCode))
	}

	var out *extractionResponse
	if err = json.Unmarshal(raw, &out); err != nil {
		return ports.Extraction{}, errs.NewExtractionFailedErrorWithCause("malformed response", err)
	}
	if out == nil {
		return ports.Extraction{}, errs.NewExtractionFailedError("empty response")
	}

	return ports.Extraction{
		CustomerName: strings.TrimSpace(out.CustomerName),
		Locality:     strings.TrimSpace(out.Locality),
	}, nil
}
