package errors

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput            = errors.New("no URL provided")
	ErrProviderNotConfigured = errors.New("reputation provider not configured")
	ErrDiscordNotConfigured  = errors.New("discord client not configured")
)

// ProviderError wraps a failure from an external reputation provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}

// ResolveError wraps a failure while following redirects for a URL.
type ResolveError struct {
	URL string
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolving %s failed: %v", e.URL, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func NewResolveError(url string, err error) *ResolveError {
	return &ResolveError{
		URL: url,
		Err: err,
	}
}
