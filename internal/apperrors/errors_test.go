package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrConfiguration(t *testing.T) {
	err := NewConfigurationError("username and password must be specified")

	want := "configuration error: username and password must be specified"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
	if !errors.Is(err, &ErrConfiguration{}) {
		t.Error("Expected errors.Is to match ErrConfiguration")
	}
}

func TestErrServiceUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewServiceUnavailableError(cause)

	if !errors.Is(err, &ErrServiceUnavailable{}) {
		t.Error("Expected errors.Is to match ErrServiceUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected the cause to be unwrappable")
	}

	bare := NewServiceUnavailableError(nil)
	if bare.Error() != "service unavailable" {
		t.Errorf("Unexpected message: %q", bare.Error())
	}
}

func TestErrAuthentication(t *testing.T) {
	err := NewAuthenticationError("401 Unauthorized")

	want := "login failed: 401 Unauthorized"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
	if !errors.Is(err, &ErrAuthentication{}) {
		t.Error("Expected errors.Is to match ErrAuthentication")
	}
	if errors.Is(err, &ErrProvider{}) {
		t.Error("Did not expect a match against ErrProvider")
	}
}

func TestErrProvider(t *testing.T) {
	err := NewProviderError("bad status code: 503")

	if err.Error() != "provider error: bad status code: 503" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
	if !errors.Is(err, &ErrProvider{}) {
		t.Error("Expected errors.Is to match ErrProvider")
	}
}

func TestErrBadStatus(t *testing.T) {
	err := NewBadStatusError("title search", 502)

	if err.Error() != "title search returned status 502" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
	if !errors.Is(err, &ErrBadStatus{}) {
		t.Error("Expected errors.Is to match ErrBadStatus")
	}
}

func TestErrDownloadLimitExceeded(t *testing.T) {
	err := NewDownloadLimitExceededError()

	if err.Error() != "download limit exceeded" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
	if !errors.Is(err, &ErrDownloadLimitExceeded{}) {
		t.Error("Expected errors.Is to match ErrDownloadLimitExceeded")
	}
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	err := fmt.Errorf("query failed: %w", NewBadStatusError("subtitle query", 500))
	if !errors.Is(err, &ErrBadStatus{}) {
		t.Error("Expected a wrapped ErrBadStatus to match")
	}
}
