package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Request size limits (in bytes)
const (
	MaxJSONSize = 16 * 1024 // request bodies only ever carry one identifier
)

// String length limits
const (
	MaxAppIDLength = 255 // flatpak refuses longer application names
)

// AppIDPattern is the only grammar a caller-supplied package identifier may
// take before it is placed into a command argument.
var AppIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ErrInvalidAppID is returned for any identifier outside AppIDPattern.
var ErrInvalidAppID = errors.New("invalid appId")

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Null bytes never reach exec
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// NormalizeAppID trims surrounding whitespace the way the UI may send it.
func NormalizeAppID(appID string) string {
	return strings.TrimSpace(appID)
}

// ValidateAppID checks a normalized identifier against AppIDPattern.
// The returned error wraps ErrInvalidAppID.
func ValidateAppID(appID string) error {
	if err := ValidateString(appID, "appId", 1, MaxAppIDLength, true); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAppID, err)
	}

	if !AppIDPattern.MatchString(appID) {
		return fmt.Errorf("%w: %q does not match %s", ErrInvalidAppID, appID, AppIDPattern.String())
	}

	return nil
}
