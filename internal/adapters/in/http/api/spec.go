// Package api holds the OpenAPI description of the REST surface, its wire types and
// the echo route binding that decodes path, query and header parameters.
package api

import (
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var rawSpec []byte

// GetSwagger returns the parsed and validated OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	return doc, nil
}

type swaggerDoc struct{}

// ReadDoc implements swag.Swagger.
func (swaggerDoc) ReadDoc() string {
	return string(rawSpec)
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}
