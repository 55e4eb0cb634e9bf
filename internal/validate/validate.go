// Package validate implements the request field checks. Request schemas are
// plain tagged structs; each handler builds an Errors map through these
// helpers and rejects the request when the map is non-empty.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Errors maps a field name to a human-readable problem with it.
type Errors map[string]string

// Ok reports whether no field failed validation.
func (e Errors) Ok() bool {
	return len(e) == 0
}

// Add records a problem for a field, keeping the first message per field.
func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required checks that a trimmed string is non-empty.
func (e Errors) Required(field, value, label string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, label+" is required")
	}
}

// Length checks that a trimmed string is within [min, max] characters.
// Empty values are reported as missing rather than too short.
func (e Errors) Length(field, value, label string, min, max int) {
	v := strings.TrimSpace(value)
	if v == "" {
		e.Add(field, label+" is required")
		return
	}
	if n := len([]rune(v)); n < min || n > max {
		e.Add(field, fmt.Sprintf("%s must be between %d and %d characters", label, min, max))
	}
}

// MinLength checks that a string is at least min characters. Unlike Length it
// does not trim, so passwords keep their whitespace.
func (e Errors) MinLength(field, value, label string, min int) {
	if len([]rune(value)) < min {
		e.Add(field, fmt.Sprintf("%s must be at least %d characters", label, min))
	}
}

// Email checks basic address shape.
func (e Errors) Email(field, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		e.Add(field, "Email is required")
		return
	}
	if !emailPattern.MatchString(v) {
		e.Add(field, "A valid email address is required")
	}
}

// Positive checks that an amount is strictly greater than zero.
func (e Errors) Positive(field string, value float64, label string) {
	if value <= 0 {
		e.Add(field, label+" must be greater than zero")
	}
}

// Range checks that an integer lies within [min, max].
func (e Errors) Range(field string, value, min, max int, label string) {
	if value < min || value > max {
		e.Add(field, fmt.Sprintf("%s must be between %d and %d", label, min, max))
	}
}
