package http

import (
	"fmt"

	"warehouse/internal/adapters/in/http/api"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoadAPIDocument parses the embedded OpenAPI document and checks it against the
// routes NewRouter mounts. The service refuses to start on error.
func LoadAPIDocument() (*openapi3.T, error) {
	doc, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("load api document: %w", err)
	}
	if err = CheckAPIDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CheckAPIDocument reports a document whose server URL is not BaseURL or that
// leaves an operation without an id.
func CheckAPIDocument(doc *openapi3.T) error {
	if len(doc.Servers) == 0 || doc.Servers[0].URL != BaseURL {
		return fmt.Errorf("api document must be served under %s", BaseURL)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return fmt.Errorf("api document has no paths")
	}
	for path, item := range doc.Paths.Map() {
		for method, op := range item.Operations() {
			if op.OperationID == "" {
				return fmt.Errorf("api document: %s %s has no operationId", method, path)
			}
		}
	}
	return nil
}
