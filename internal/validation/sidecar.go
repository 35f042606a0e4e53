// Package validation checks product sidecar metadata against the embedded
// JSON schema. The check is advisory: callers log violations and proceed.
package validation

import (
	_ "embed"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed sidecar.schema.json
var sidecarSchema string

const sidecarSchemaUrl = "resource://sidecar.schema.json"

var sidecarValidator *jsonschema.Schema

func init() {
	sidecarValidator = jsonschema.MustCompileString(sidecarSchemaUrl, sidecarSchema)
}

// ValidateSidecar validates raw sidecar metadata against the schema.
// Returns an error if raw is not valid JSON or violates the schema.
func ValidateSidecar(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return err
	}
	return sidecarValidator.Validate(parsed)
}
