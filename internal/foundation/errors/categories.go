package errors

import (
	stderrors "errors"
	"maps"
)

// ErrorCategory represents the broad category of an error for classification and routing.
type ErrorCategory string

const (
	// CategoryConfig represents user-facing configuration and input errors.
	CategoryConfig ErrorCategory = "config"

	// CategoryScan represents content directory traversal failures.
	CategoryScan ErrorCategory = "scan"

	// CategoryCompleteness and CategoryBrokenLink represent model validation failures.
	CategoryCompleteness ErrorCategory = "completeness"
	CategoryBrokenLink   ErrorCategory = "broken_link"

	// CategoryFileSystem represents artifact write failures.
	CategoryFileSystem ErrorCategory = "filesystem"

	CategoryInternal ErrorCategory = "internal"
)

// Sentinels matched by ClassifiedError.Is for the corresponding category.
var (
	ErrConfig       = stderrors.New("configuration error")
	ErrScan         = stderrors.New("content scan failed")
	ErrCompleteness = stderrors.New("completeness violation")
	ErrBrokenLink   = stderrors.New("broken link violation")
	ErrSerialize    = stderrors.New("artifact serialization failed")
)

func sentinelFor(c ErrorCategory) error {
	switch c {
	case CategoryConfig:
		return ErrConfig
	case CategoryScan:
		return ErrScan
	case CategoryCompleteness:
		return ErrCompleteness
	case CategoryBrokenLink:
		return ErrBrokenLink
	case CategoryFileSystem:
		return ErrSerialize
	default:
		return nil
	}
}

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal ErrorSeverity = "fatal" // Aborts the run
	SeverityError ErrorSeverity = "error" // Fails the current operation
)

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, exists := c[key]
	return value, exists
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	if value, exists := c.Get(key); exists {
		if str, ok := value.(string); ok {
			return str, true
		}
	}
	return "", false
}

// GetStrings retrieves a []string context value.
func (c ErrorContext) GetStrings(key string) ([]string, bool) {
	if value, exists := c.Get(key); exists {
		if list, ok := value.([]string); ok {
			return list, true
		}
	}
	return nil, false
}

// Merge combines two contexts, with other taking precedence.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}
	result := make(ErrorContext, len(c)+len(other))
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}
