// Package errors provides custom error types and utilities for spotweb.
//
// This package provides error handling for various operations including:
// - Transport errors (network failures and non-2xx responses)
// - Authentication errors
// - Configuration errors
// - Validation errors
// - Multi-error handling
//
// The request builder never classifies errors itself. The helpers here exist
// for callers that want to look inside a transport failure, e.g. to read the
// Retry-After header of a rate limited response.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Error categories for spotweb operations
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrRateLimited    = errors.New("rate limited")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNetwork        = errors.New("network error")
	ErrConfiguration  = errors.New("configuration error")
	ErrAuthentication = errors.New("authentication error")
)

// Transport error codes.
const (
	CodeBadRequest  = "ERR_BAD_REQUEST"
	CodeBadResponse = "ERR_BAD_RESPONSE"
	CodeNetwork     = "ERR_NETWORK"
	CodeCanceled    = "ERR_CANCELED"
)

// ResponseInfo is the part of an HTTP response kept on a TransportError.
type ResponseInfo struct {
	Status     int
	StatusText string
	Headers    http.Header
	Data       any
}

// TransportError represents a failed HTTP exchange: either no response was
// received (Response is nil) or the server answered with a non-2xx status.
type TransportError struct {
	Message  string
	Code     string
	Method   string
	URL      string
	Response *ResponseInfo
	Err      error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	if e.Response == nil {
		return e.Code == CodeNetwork && errors.Is(target, ErrNetwork)
	}
	switch e.Response.Status {
	case http.StatusNotFound:
		return errors.Is(target, ErrNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Is(target, ErrUnauthorized)
	case http.StatusBadRequest:
		return errors.Is(target, ErrInvalidInput)
	case http.StatusTooManyRequests:
		return errors.Is(target, ErrRateLimited)
	default:
		return false
	}
}

// NewResponseError creates a transport error for a non-2xx response.
func NewResponseError(method, url string, resp *ResponseInfo) *TransportError {
	code := CodeBadResponse
	if resp.Status >= 400 && resp.Status < 500 {
		code = CodeBadRequest
	}
	return &TransportError{
		Message:  fmt.Sprintf("Request failed with status code %d", resp.Status),
		Code:     code,
		Method:   method,
		URL:      url,
		Response: resp,
	}
}

// NewNetworkError creates a transport error for a request that got no response.
func NewNetworkError(method, url string, err error) *TransportError {
	code := CodeNetwork
	if errors.Is(err, context.Canceled) {
		code = CodeCanceled
	}
	return &TransportError{
		Message: err.Error(),
		Code:    code,
		Method:  method,
		URL:     url,
		Err:     err,
	}
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var transportErr *TransportError
	if errors.As(err, &transportErr) && transportErr.Response != nil {
		return transportErr.Response.Status, true
	}
	return 0, false
}

// IsHTTPStatus checks if an error represents a specific HTTP status
func IsHTTPStatus(err error, statusCode int) bool {
	status, ok := StatusCode(err)
	return ok && status == statusCode
}

// IsRateLimited checks if an error is a 429 response.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited) || IsHTTPStatus(err, http.StatusTooManyRequests)
}

// RetryAfter reports how long the server asked the client to wait, read from
// the Retry-After header of the response carried by err. Both the
// delay-seconds and HTTP-date forms are understood.
func RetryAfter(err error) (time.Duration, bool) {
	var transportErr *TransportError
	if !errors.As(err, &transportErr) || transportErr.Response == nil {
		return 0, false
	}

	value := strings.TrimSpace(transportErr.Response.Headers.Get("Retry-After"))
	if value == "" {
		return 0, false
	}

	if seconds, parseErr := strconv.Atoi(value); parseErr == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second, true
	}
	if at, parseErr := http.ParseTime(value); parseErr == nil {
		return max(time.Until(at), 0), true
	}
	return 0, false
}

// AuthenticationError represents a failure to obtain an access token
type AuthenticationError struct {
	TokenURL string
	Flow     string
	ClientID string
	Err      error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed for client '%s' at '%s' (%s flow)", e.ClientID, e.TokenURL, e.Flow)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

func (e *AuthenticationError) Is(target error) bool {
	return errors.Is(target, ErrAuthentication)
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(tokenURL, flow, clientID string, err error) *AuthenticationError {
	return &AuthenticationError{
		TokenURL: tokenURL,
		Flow:     flow,
		ClientID: clientID,
		Err:      err,
	}
}

// IsAuthentication checks if an error is authentication-related
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(target, ErrConfiguration)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, value, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// IsConfiguration checks if an error is configuration-related
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Value   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidInput)
}

// NewValidationError creates a new validation error
func NewValidationError(field, value, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// IsValidation checks if an error is validation-related
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// MultiError represents multiple errors that occurred together
type MultiError struct {
	Errors []error
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e.Errors[0].Error(), len(e.Errors)-1)
}

func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// Join creates a MultiError from multiple errors, filtering out nils
func Join(errs ...error) error {
	var nonNilErrors []error
	for _, err := range errs {
		if err != nil {
			nonNilErrors = append(nonNilErrors, err)
		}
	}

	if len(nonNilErrors) == 0 {
		return nil
	}
	if len(nonNilErrors) == 1 {
		return nonNilErrors[0]
	}

	return &MultiError{Errors: nonNilErrors}
}

// IsNotFound checks if an error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || IsHTTPStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if an error represents an authorization failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		IsHTTPStatus(err, http.StatusUnauthorized) ||
		IsHTTPStatus(err, http.StatusForbidden)
}

// IsNetwork checks if an error is network-related
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
