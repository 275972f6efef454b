package rules

import (
	"context"
	"regexp"
)

// Canonical rule kind identifiers. They key the entries of FieldErrors so
// consumers can address individual failures.
const (
	KindRequired  = "required"
	KindMinLength = "minLength"
	KindMaxLength = "maxLength"
	KindPattern   = "pattern"
	KindValidate  = "validate"
)

// Flag marks a presence-only constraint such as required. A nil Flag disables
// the rule; an empty Message falls back to the kind default.
type Flag struct {
	Message string
}

// Length bounds the character count of string values or the element count of
// slices, arrays, and maps.
type Length struct {
	Value   int
	Message string
}

// Pattern matches string values against a compiled expression. Non-string
// values are skipped rather than failed.
type Pattern struct {
	Value   *regexp.Regexp
	Message string
}

// Predicate is a custom validation hook. It returns a failure message, or the
// empty string when the value passes. A non-nil error signals an
// infrastructure problem (timeout, lookup failure) rather than a rule failure
// and aborts evaluation.
type Predicate func(ctx context.Context, value any) (string, error)

// Set is the declarative rule set attached to a field at registration. The
// zero value applies no constraints.
type Set struct {
	Required  *Flag
	MinLength *Length
	MaxLength *Length
	Pattern   *Pattern

	// Validate runs as the anonymous "validate" rule.
	Validate Predicate

	// Checks are named predicates; each failure is keyed by its check name.
	Checks map[string]Predicate
}

// Empty reports whether the set applies no constraints at all.
func (s Set) Empty() bool {
	return s.Required == nil &&
		s.MinLength == nil &&
		s.MaxLength == nil &&
		s.Pattern == nil &&
		s.Validate == nil &&
		len(s.Checks) == 0
}

// FieldErrors maps a rule kind (or named check) to its failure message. An
// empty map means every rule passed.
type FieldErrors map[string]string
