package apierror

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation_KeepsOrder(t *testing.T) {
	v := NewValidation([]FieldError{
		{Field: "email", Message: "requerido"},
		{Field: "products", Message: "debe incluir al menos 1 elemento"},
	})

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"detail":"Error de validacion","errors":[
		{"field":"email","message":"requerido"},
		{"field":"products","message":"debe incluir al menos 1 elemento"}]}`, string(raw))
}
