package binder

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISBNValidator(t *testing.T) {
	t.Parallel()

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("isbn", isbnValidator))

	type payload struct {
		ISBN string `validate:"isbn"`
	}

	assert.NoError(t, validate.Struct(payload{ISBN: "9780307245304"}))
	assert.NoError(t, validate.Struct(payload{ISBN: "0307245306"}))
	assert.NoError(t, validate.Struct(payload{ISBN: "030724530X"}))
	assert.NoError(t, validate.Struct(payload{ISBN: "978-0-307-24530-4"}))
	assert.Error(t, validate.Struct(payload{ISBN: "12345"}))
	assert.Error(t, validate.Struct(payload{ISBN: ""}))
	assert.Error(t, validate.Struct(payload{ISBN: "not-an-isbn"}))
}
