// Package docs embeds the OpenAPI description of the HTTP API.
package docs

import (
	_ "embed"
)

// OpenAPISpec contains the embedded OpenAPI specification in YAML format.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
