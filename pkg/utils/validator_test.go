package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Location string `json:"location" validate:"required"`
	Adults   int    `json:"adults" validate:"min=1"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	errs := ValidateStruct(sampleRequest{Adults: 0, CheckIn: "tomorrow"})

	assert.Equal(t, "This field is required", errs["location"])
	assert.Equal(t, "Must be at least 1", errs["adults"])
	assert.Equal(t, "Must be a date in YYYY-MM-DD format", errs["check_in"])

	assert.Nil(t, ValidateStruct(sampleRequest{Location: "Paris", Adults: 2, CheckIn: "2025-06-01"}))
}

func TestFormatValidationErrorsIsSorted(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{"rooms": "b", "adults": "a"})
	assert.Equal(t, "adults: a; rooms: b", msg)
}
