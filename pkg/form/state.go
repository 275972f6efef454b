package form

import "github.com/goliatone/go-formstate/pkg/rules"

// State is the single shared snapshot of form status. It is mutated only by
// the registry, dirty tracker, scheduler, and submission pipeline, and is
// published to the configured store after every mutation.
type State struct {
	// IsDirty is true iff any field differs from its default.
	IsDirty bool

	// DirtyFields holds the names of fields currently dirty.
	DirtyFields map[string]struct{}

	// Errors maps field name to that field's rule failures. A missing key
	// means the field has no error. Errors never holds a key for a field
	// that is no longer registered.
	Errors map[string]rules.FieldErrors

	IsValidating       bool
	IsSubmitting       bool
	IsSubmitted        bool
	IsSubmitSuccessful bool

	// SubmitCount only ever increases for the lifetime of the form.
	SubmitCount int

	// IsValid reflects the outcome of the most recent validation pass; it is
	// not live during partial validation.
	IsValid bool
}

func newState() State {
	return State{
		DirtyFields: make(map[string]struct{}),
		Errors:      make(map[string]rules.FieldErrors),
	}
}

// clone deep-copies the snapshot so store subscribers never alias the
// engine's mutable maps.
func (s State) clone() State {
	out := s
	out.DirtyFields = make(map[string]struct{}, len(s.DirtyFields))
	for name := range s.DirtyFields {
		out.DirtyFields[name] = struct{}{}
	}
	out.Errors = cloneErrors(s.Errors)
	return out
}

func cloneErrors(errs map[string]rules.FieldErrors) map[string]rules.FieldErrors {
	out := make(map[string]rules.FieldErrors, len(errs))
	for name, fieldErrs := range errs {
		copied := make(rules.FieldErrors, len(fieldErrs))
		for kind, message := range fieldErrs {
			copied[kind] = message
		}
		out[name] = copied
	}
	return out
}
