package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound_MatchesSentinelThroughWrapping(t *testing.T) {
	err := fmt.Errorf("get protest 7: %w", NotFound("Protest"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "get protest 7: Protest not found", err.Error())
}

func TestForbidden_KeepsReason(t *testing.T) {
	err := Forbidden("only organizers can create protests")

	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, "only organizers can create protests", err.Error())
}

func TestValidationError(t *testing.T) {
	v := NewValidationError()
	assert.NoError(t, v.OrNil())

	v.Add("end_datetime", "must be after start")
	v.Add("end_datetime", "second message is ignored")
	v.Add("city", "required")

	var target *ValidationError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", v.OrNil()), &target))
	assert.Equal(t, map[string]string{
		"end_datetime": "must be after start",
		"city":         "required",
	}, target.Fields)
	assert.Equal(t, "validation failed: city: required; end_datetime: must be after start", v.Error())
}
