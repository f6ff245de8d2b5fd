package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email     string `json:"email" validate:"required,email"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	Website   string `json:"website_url" validate:"omitempty,url"`
	Status    string `json:"status" validate:"omitempty,oneof=draft completed"`
}

func TestDetailsUsesJSONNames(t *testing.T) {
	v := New()
	err := v.Struct(sample{Email: "nope", StartDate: "03/2024", Website: "not a url", Status: "gone"})
	require.Error(t, err)

	details := Details(err)
	assert.Equal(t, "Enter a valid email address.", details["email"])
	assert.Equal(t, "Date has wrong format. Use YYYY-MM-DD.", details["start_date"])
	assert.Equal(t, "Enter a valid URL.", details["website_url"])
	assert.Equal(t, "Must be one of: draft, completed.", details["status"])
}

func TestDetailsValidStruct(t *testing.T) {
	v := New()
	err := v.Struct(sample{Email: "a@b.co", StartDate: "2024-03-01"})
	assert.NoError(t, err)
	assert.Nil(t, Details(err))
}

func TestDetailsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, Details(errors.New("boom")))
}
