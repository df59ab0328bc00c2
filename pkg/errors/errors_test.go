package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewProviderError("VirusTotal", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "VirusTotal")
	assert.Contains(t, err.Error(), "connection refused")

	var provErr *ProviderError
	assert.ErrorAs(t, fmt.Errorf("check failed: %w", err), &provErr)
	assert.Equal(t, "VirusTotal", provErr.Provider)
}

func TestProviderErrorWrapsSentinel(t *testing.T) {
	err := NewProviderError("Google Safe Browsing", ErrProviderNotConfigured)

	assert.ErrorIs(t, err, ErrProviderNotConfigured)
}

func TestResolveErrorWrapsCause(t *testing.T) {
	cause := errors.New("no such host")
	err := NewResolveError("https://dead.example", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "https://dead.example")

	var resErr *ResolveError
	assert.ErrorAs(t, err, &resErr)
	assert.Equal(t, "https://dead.example", resErr.URL)
}
