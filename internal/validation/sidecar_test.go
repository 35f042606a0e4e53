package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSidecar(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		expErr bool
	}{
		{"typical sidecar", `{"product_id": "PROD001", "name": "Omni Lamp", "description": "d", "category": "3D Models", "tags": ["lamp", "interior"]}`, false},
		{"empty object", `{}`, false},
		{"unknown keys pass", `{"weight": 2.5, "status": "raw"}`, false},
		{"empty product_id", `{"product_id": ""}`, true},
		{"product_id not a string", `{"product_id": 7}`, true},
		{"tags not strings", `{"tags": [1, 2]}`, true},
		{"not an object", `["a"]`, true},
		{"invalid json", `{broken`, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateSidecar([]byte(test.raw))
			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
