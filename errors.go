package envcheck

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	ErrCodeRequired      = "required"
	ErrCodeRegex         = "regex"
	ErrCodeFormat        = "format"
	ErrCodeCustom        = "custom"
	ErrCodeInvalidNumber = "invalid_number"
	ErrCodeMin           = "min"
	ErrCodeMax           = "max"
	ErrCodeTransform     = "transform"
)

var (
	// ErrUnknownFormat is returned when a format name is not recognized.
	ErrUnknownFormat = errors.New("envcheck: unknown format")

	// ErrUnknownTransform is returned when a transformer name is not recognized.
	ErrUnknownTransform = errors.New("envcheck: unknown transform")
)

// Issue is a single presence or validation failure.
type Issue struct {
	Name    string // Variable name
	Code    string // Issue code (e.g., "required", "format")
	Message string // Human-readable description
}

// ValidationError aggregates the issues of an invalid Result.
type ValidationError struct {
	Issues []Issue
}

// Error formats issues as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "env validation failed: no errors"
	}

	var b strings.Builder
	if len(e.Issues) == 1 {
		b.WriteString("env validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "env validation failed: %d errors\n", len(e.Issues))
	}

	for _, is := range e.Issues {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", is.Name, is.Code, is.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FatalError is raised when strict mode meets an invalid state.
type FatalError struct {
	Code     int      // Process exit status
	Messages []string // Presence messages followed by validation messages
}

func (e *FatalError) Error() string {
	return strings.Join(e.Messages, "\n")
}
