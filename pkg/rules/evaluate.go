package rules

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"unicode/utf8"
)

// Input carries everything the evaluator needs for one field.
type Input struct {
	Name  string
	Value any
	Rules Set

	// Focus is invoked when evaluation fails and Options.FocusOnError is set.
	// It is a UI adapter side effect; nil disables focusing.
	Focus func()
}

// Options configures a single evaluation pass.
type Options struct {
	// CollectAll evaluates every rule and gathers all failures. When false,
	// evaluation stops at the first failing rule.
	CollectAll bool

	// FocusOnError requests focus on the field element when any rule fails.
	FocusOnError bool
}

// Evaluate applies the rule set to the field value. It returns an empty map
// when every rule passes. Predicate infrastructure errors abort evaluation
// and are returned wrapped; they are not rule failures.
func Evaluate(ctx context.Context, in Input, opts Options) (FieldErrors, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	errs := make(FieldErrors)
	add := func(kind, message, fallback string) bool {
		if message == "" {
			message = fallback
		}
		errs[kind] = message
		return !opts.CollectAll
	}

	failed, err := evaluateRules(ctx, in, add)
	if err != nil {
		return nil, fmt.Errorf("rules: evaluate %q: %w", in.Name, err)
	}

	if failed && opts.FocusOnError && in.Focus != nil {
		in.Focus()
	}
	if len(errs) == 0 {
		return FieldErrors{}, nil
	}
	return errs, nil
}

// evaluateRules walks the rules in canonical order: required, minLength,
// maxLength, pattern, validate, then named checks sorted by name. The add
// callback reports whether evaluation should stop (fail-fast).
func evaluateRules(ctx context.Context, in Input, add func(kind, message, fallback string) bool) (bool, error) {
	set := in.Rules
	failed := false

	if set.Required != nil && isEmptyValue(in.Value) {
		failed = true
		if add(KindRequired, set.Required.Message, defaultMessage(KindRequired, 0)) {
			return failed, nil
		}
	}

	if set.MinLength != nil {
		if length, ok := valueLength(in.Value); ok && length < set.MinLength.Value {
			failed = true
			if add(KindMinLength, set.MinLength.Message, defaultMessage(KindMinLength, set.MinLength.Value)) {
				return failed, nil
			}
		}
	}

	if set.MaxLength != nil {
		if length, ok := valueLength(in.Value); ok && length > set.MaxLength.Value {
			failed = true
			if add(KindMaxLength, set.MaxLength.Message, defaultMessage(KindMaxLength, set.MaxLength.Value)) {
				return failed, nil
			}
		}
	}

	if set.Pattern != nil && set.Pattern.Value != nil {
		if str, ok := in.Value.(string); ok && !set.Pattern.Value.MatchString(str) {
			failed = true
			if add(KindPattern, set.Pattern.Message, defaultMessage(KindPattern, 0)) {
				return failed, nil
			}
		}
	}

	if set.Validate != nil {
		message, err := set.Validate(ctx, in.Value)
		if err != nil {
			return failed, err
		}
		if message != "" {
			failed = true
			if add(KindValidate, message, "") {
				return failed, nil
			}
		}
	}

	for _, name := range sortedCheckNames(set.Checks) {
		check := set.Checks[name]
		if check == nil {
			continue
		}
		message, err := check(ctx, in.Value)
		if err != nil {
			return failed, err
		}
		if message != "" {
			failed = true
			if add(name, message, "") {
				return failed, nil
			}
		}
	}

	return failed, nil
}

func sortedCheckNames(checks map[string]Predicate) []string {
	if len(checks) == 0 {
		return nil
	}
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isEmptyValue decides whether required fails: nil, empty strings, empty
// collections, and false all count as absent. False covers unchecked toggles.
func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return v == ""
	case bool:
		return !v
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// valueLength reports the rune count for strings and the element count for
// slices, arrays, and maps. Other kinds have no length and skip length rules.
func valueLength(value any) (int, bool) {
	if value == nil {
		return 0, false
	}
	if str, ok := value.(string); ok {
		return utf8.RuneCountInString(str), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len(), true
	}
	return 0, false
}

func defaultMessage(kind string, bound int) string {
	switch kind {
	case KindRequired:
		return "field is required"
	case KindMinLength:
		return fmt.Sprintf("must contain at least %d characters", bound)
	case KindMaxLength:
		return fmt.Sprintf("must contain at most %d characters", bound)
	case KindPattern:
		return "value does not match the expected pattern"
	default:
		return "invalid value"
	}
}
