// Package errors provides custom error types for the freerank system.
// These errors let callers check failures programmatically: upstream fetch and
// scrape failures are fatal to a run and must reach the caller unchanged,
// while the matching core itself never fails.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
var As = errors.As

// Common sentinel errors for the freerank system
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable indicates that an upstream source is temporarily unavailable
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrScrape indicates the leaderboard page could not be scraped
	ErrScrape = errors.New("scrape failed")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents an error from an upstream HTTP API
type APIError struct {
	Source     string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return target == ErrRateLimited
	}
	if e.StatusCode >= http.StatusInternalServerError {
		return target == ErrSourceUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(source string, statusCode int, message string) *APIError {
	return &APIError{
		Source:     source,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ScrapeError represents a failure while scraping the leaderboard page.
// Stage names the step that failed, such as "launch" or "parse".
type ScrapeError struct {
	Stage string
	URL   string
	Err   error
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("scrape failed during %s of %s: %v", e.Stage, e.URL, e.Err)
	}
	return fmt.Sprintf("scrape failed during %s: %v", e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ScrapeError) Is(target error) bool {
	return target == ErrScrape
}

// NewScrapeError creates a new ScrapeError
func NewScrapeError(stage, url string, err error) *ScrapeError {
	return &ScrapeError{Stage: stage, URL: url, Err: err}
}

// Helper functions for error checking

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsSourceUnavailable checks if an error indicates source unavailability
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsScrapeError checks if an error came from the leaderboard scrape
func IsScrapeError(err error) bool {
	return errors.Is(err, ErrScrape)
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "html"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "move"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "fetch", "load", "write"
	Resource  string // "request", "sources", "leaderboard", "report"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
