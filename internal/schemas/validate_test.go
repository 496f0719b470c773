package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"count": {"type": "integer", "minimum": 0}
	}
}`

func TestValidateBytes_Valid(t *testing.T) {
	err := ValidateBytes([]byte(testSchema), []byte(`{"name": "gig", "count": 3}`))
	assert.NoError(t, err)
}

func TestValidateBytes_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
		field    string
	}{
		{"missing required field", `{"count": 3}`, "(root)"},
		{"wrong type", `{"name": "gig", "count": "three"}`, "count"},
		{"violates minimum", `{"name": "gig", "count": -1}`, "count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBytes([]byte(testSchema), []byte(tt.document))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.field, validationErr.Errors[0].Field)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateBytes_BadSchema(t *testing.T) {
	err := ValidateBytes([]byte(`{`), []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateBytes_BadDocument(t *testing.T) {
	err := ValidateBytes([]byte(testSchema), []byte(`not json`))
	require.Error(t, err)
}
