package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("ticker_id is required", "depth must be numeric")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ticker_id is required")
	assert.Contains(t, err.Error(), "depth must be numeric")

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Violations, 2)
}

func TestUnknownTokenError(t *testing.T) {
	err := NewUnknownTokenError("FOO")
	assert.EqualError(t, err, `unknown token "FOO"`)

	var ute *UnknownTokenError
	assert.True(t, errors.As(err, &ute))
	assert.Equal(t, "FOO", ute.Symbol)
}

func TestUpstreamErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamError("GetTokens", cause)
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.Contains(t, err.Error(), "GetTokens")
}

func TestUpstreamErrorKeepsMalformedCategory(t *testing.T) {
	cause := NewMalformedUpstreamErrorf("decoding /api/pairs: bad json")
	err := NewUpstreamError("GetPairs", cause)
	assert.True(t, errors.Is(err, ErrMalformedUpstream))
	assert.False(t, errors.Is(err, ErrUpstreamUnavailable))
}

func TestMalformedUpstreamErrorWrapping(t *testing.T) {
	err := NewMalformedUpstreamErrorf("pricepoint %q is not an integer", "abc")
	assert.True(t, errors.Is(err, ErrMalformedUpstream))
	assert.Contains(t, err.Error(), "pricepoint")
}
