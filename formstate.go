// Package formstate tracks named input fields, applies declarative
// validation rules under configurable timing policies, aggregates errors,
// and drives a submission pipeline. The engine is framework-independent: a
// UI adapter wires binding handlers to its events and observes the state
// snapshots published to an injectable store.
package formstate

import (
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/rules"
)

// Form re-exports the core engine type.
type Form = form.Form

// State is the shared form status snapshot.
type State = form.State

// Binding is the field descriptor returned by Register.
type Binding = form.Binding

// RuleSet is the declarative validation rule set attached at registration.
type RuleSet = rules.Set

// FieldErrors maps rule names to failure messages for one field.
type FieldErrors = rules.FieldErrors

// Validation timing modes, re-exported for convenience.
const (
	ModeOnSubmit = form.ModeOnSubmit
	ModeOnBlur   = form.ModeOnBlur
	ModeOnChange = form.ModeOnChange
	ModeAll      = form.ModeAll
)

// Error reporting criteria.
const (
	CriteriaFirstError = form.CriteriaFirstError
	CriteriaAll        = form.CriteriaAll
)

// New constructs a form engine; see pkg/form for the available options.
func New(options ...form.Option) *Form {
	return form.New(options...)
}
