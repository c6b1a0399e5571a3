package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestToDetailsValidationErrors(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"min=3"`
	}
	err := validator.New().Struct(form{Email: "x"})
	require.Error(t, err)

	d := ToDetails(err)
	assert.Equal(t, "is required", d["Name"])
	assert.Equal(t, "must be at least 3 characters long", d["Email"])
}

func TestToDetailsMalformedJSON(t *testing.T) {
	var v struct{}
	err := json.Unmarshal([]byte("{"), &v)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}
