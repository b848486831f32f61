package apperrors

import "fmt"

// ErrConfiguration represents an error in the provider configuration,
// such as missing credentials at construction time.
type ErrConfiguration struct {
	Reason string
}

// Error implements the error interface.
func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrConfiguration) Is(target error) bool {
	_, ok := target.(*ErrConfiguration)
	return ok
}

// NewConfigurationError creates a new ErrConfiguration.
func NewConfigurationError(reason string) *ErrConfiguration {
	return &ErrConfiguration{Reason: reason}
}

// ErrServiceUnavailable represents a network-level failure reaching the
// provider, such as a connection error or timeout during login.
type ErrServiceUnavailable struct {
	Cause error
}

// Error implements the error interface.
func (e *ErrServiceUnavailable) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("service unavailable: %v", e.Cause)
	}
	return "service unavailable"
}

// Unwrap exposes the underlying network error.
func (e *ErrServiceUnavailable) Unwrap() error {
	return e.Cause
}

// Is allows for error checking with errors.Is().
func (e *ErrServiceUnavailable) Is(target error) bool {
	_, ok := target.(*ErrServiceUnavailable)
	return ok
}

// NewServiceUnavailableError creates a new ErrServiceUnavailable.
func NewServiceUnavailableError(cause error) *ErrServiceUnavailable {
	return &ErrServiceUnavailable{Cause: cause}
}

// ErrAuthentication is returned when the provider rejects the configured
// credentials. Status carries the server's status line.
type ErrAuthentication struct {
	Status string
}

// Error implements the error interface.
func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("login failed: %s", e.Status)
}

// Is allows for error checking with errors.Is().
func (e *ErrAuthentication) Is(target error) bool {
	_, ok := target.(*ErrAuthentication)
	return ok
}

// NewAuthenticationError creates a new ErrAuthentication.
func NewAuthenticationError(status string) *ErrAuthentication {
	return &ErrAuthentication{Status: status}
}

// ErrProvider represents an unexpected response from the provider, such as
// a body that is not valid JSON or a status code outside the handled set.
type ErrProvider struct {
	Reason string
}

// Error implements the error interface.
func (e *ErrProvider) Error() string {
	return fmt.Sprintf("provider error: %s", e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrProvider) Is(target error) bool {
	_, ok := target.(*ErrProvider)
	return ok
}

// NewProviderError creates a new ErrProvider.
func NewProviderError(reason string) *ErrProvider {
	return &ErrProvider{Reason: reason}
}

// ErrBadStatus is returned when an API endpoint answers with a non-2xx
// status code outside of login's specially handled cases.
type ErrBadStatus struct {
	Operation  string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrBadStatus) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Operation, e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrBadStatus) Is(target error) bool {
	_, ok := target.(*ErrBadStatus)
	return ok
}

// NewBadStatusError creates a new ErrBadStatus.
func NewBadStatusError(operation string, statusCode int) *ErrBadStatus {
	return &ErrBadStatus{Operation: operation, StatusCode: statusCode}
}

// ErrDownloadLimitExceeded is returned when the provider refuses a download
// because the account's daily quota is spent.
type ErrDownloadLimitExceeded struct{}

// Error implements the error interface.
func (e *ErrDownloadLimitExceeded) Error() string {
	return "download limit exceeded"
}

// Is allows for error checking with errors.Is().
func (e *ErrDownloadLimitExceeded) Is(target error) bool {
	_, ok := target.(*ErrDownloadLimitExceeded)
	return ok
}

// NewDownloadLimitExceededError creates a new ErrDownloadLimitExceeded.
func NewDownloadLimitExceededError() *ErrDownloadLimitExceeded {
	return &ErrDownloadLimitExceeded{}
}
