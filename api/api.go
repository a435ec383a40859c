// Package api embeds the OpenAPI document of the fulfillment HTTP API.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPISpec []byte
