// Package form implements the field registry, validation scheduler, and
// submission pipeline behind a framework-independent form-state engine. A UI
// adapter wires the binding handlers returned by Register to its input
// events and observes the State snapshots published to the configured store.
package form

import (
	"sort"
	"sync"

	"github.com/goliatone/go-formstate/pkg/element"
	"github.com/goliatone/go-formstate/pkg/observe"
	"github.com/goliatone/go-formstate/pkg/rules"
)

// Mode selects which UI events trigger validation.
type Mode string

const (
	// ModeOnSubmit defers all validation to the submission pipeline.
	ModeOnSubmit Mode = "onSubmit"
	// ModeOnBlur validates a field when its blur handler fires.
	ModeOnBlur Mode = "onBlur"
	// ModeOnChange validates a field on input and value-commit events.
	ModeOnChange Mode = "onChange"
	// ModeAll defers event-driven validation to submission, like ModeOnSubmit.
	ModeAll Mode = "all"
)

// CriteriaMode selects how many failing rules a validation pass reports per
// field.
type CriteriaMode string

const (
	CriteriaFirstError CriteriaMode = "firstError"
	CriteriaAll        CriteriaMode = "all"
)

// Options configures a Form. Construct via New with functional options.
type Options struct {
	// Mode is the validation timing before the first submit.
	Mode Mode

	// ReValidateMode is the validation timing once the form has been
	// submitted at least once.
	ReValidateMode Mode

	// Criteria selects first-error or all-errors reporting per field.
	Criteria CriteriaMode

	// DefaultValues seed field values at registration and anchor dirty
	// comparison.
	DefaultValues map[string]any

	// ShouldFocusError requests focus on the first failing field's element.
	ShouldFocusError bool

	// ShouldFocusErrorFunc, when set, is sampled at evaluation time and
	// overrides ShouldFocusError. It lets callers back the flag with their
	// own observable value.
	ShouldFocusErrorFunc func() bool

	// Store receives a State snapshot after every mutation. Defaults to an
	// in-memory observe.Value.
	Store observe.Store[State]
}

// Option customises the form configuration.
type Option func(*Options)

// WithMode sets the before-submit validation timing.
func WithMode(mode Mode) Option {
	return func(o *Options) {
		o.Mode = mode
	}
}

// WithReValidateMode sets the after-submit validation timing.
func WithReValidateMode(mode Mode) Option {
	return func(o *Options) {
		o.ReValidateMode = mode
	}
}

// WithCriteria selects first-error or all-errors reporting.
func WithCriteria(criteria CriteriaMode) Option {
	return func(o *Options) {
		o.Criteria = criteria
	}
}

// WithDefaultValues seeds per-field default values.
func WithDefaultValues(defaults map[string]any) Option {
	return func(o *Options) {
		if len(defaults) == 0 {
			return
		}
		if o.DefaultValues == nil {
			o.DefaultValues = make(map[string]any, len(defaults))
		}
		for name, value := range defaults {
			o.DefaultValues[name] = value
		}
	}
}

// WithShouldFocusError toggles focus-on-error behaviour.
func WithShouldFocusError(enabled bool) Option {
	return func(o *Options) {
		o.ShouldFocusError = enabled
	}
}

// WithShouldFocusErrorFunc supplies a dynamic focus-on-error flag sampled at
// evaluation time.
func WithShouldFocusErrorFunc(fn func() bool) Option {
	return func(o *Options) {
		o.ShouldFocusErrorFunc = fn
	}
}

// WithStore injects the observable store snapshots are published to.
func WithStore(store observe.Store[State]) Option {
	return func(o *Options) {
		o.Store = store
	}
}

// Form owns the field registry, the shared State snapshot, and the
// validation/submission machinery.
type Form struct {
	opts  Options
	store observe.Store[State]

	mu      sync.Mutex
	fields  map[string]*field
	order   []string
	pending map[string]struct{}
	state   State
}

type field struct {
	name  string
	value any
	rules rules.Set
	slot  *element.Slot
}

// New constructs a Form applying the provided options. Missing settings fall
// back to onSubmit mode, onChange re-validation, first-error criteria, and an
// in-memory store.
func New(options ...Option) *Form {
	opts := Options{
		Mode:           ModeOnSubmit,
		ReValidateMode: ModeOnChange,
		Criteria:       CriteriaFirstError,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}

	f := &Form{
		opts:    opts,
		store:   opts.Store,
		fields:  make(map[string]*field),
		pending: make(map[string]struct{}),
		state:   newState(),
	}
	if f.store == nil {
		f.store = observe.NewValue(f.state.clone())
	}
	return f
}

// Store exposes the observable store the form publishes into, so UI layers
// can subscribe without holding the options around.
func (f *Form) Store() observe.Store[State] {
	return f.store
}

// State returns a defensive copy of the current snapshot.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// Values returns a plain name→value snapshot of all registered fields.
// Fields pending unregistration are still included until the next validation
// entry point drains them.
func (f *Form) Values() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valuesLocked()
}

func (f *Form) valuesLocked() map[string]any {
	out := make(map[string]any, len(f.fields))
	for name, fld := range f.fields {
		out[name] = fld.value
	}
	return out
}

// Value returns the current value of one field and whether it is registered.
func (f *Form) Value(name string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fld, ok := f.fields[name]
	if !ok {
		return nil, false
	}
	return fld.value, true
}

// FieldError returns the current error entry for one field. The boolean is
// false when the field has no recorded failure.
func (f *Form) FieldError(name string) (rules.FieldErrors, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fieldErrs, ok := f.state.Errors[name]
	if !ok {
		return nil, false
	}
	out := make(rules.FieldErrors, len(fieldErrs))
	for kind, message := range fieldErrs {
		out[kind] = message
	}
	return out, true
}

// FieldNames returns the registered names in registration order.
func (f *Form) FieldNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.order...)
}

// publish pushes a fresh snapshot to the store. Callers must not hold f.mu;
// subscribers may read the form re-entrantly.
func (f *Form) publish() {
	f.mu.Lock()
	snap := f.state.clone()
	f.mu.Unlock()
	f.store.Set(snap)
}

func (f *Form) defaultValue(name string) (any, bool) {
	value, ok := f.opts.DefaultValues[name]
	return value, ok
}

func (f *Form) focusOnError() bool {
	if f.opts.ShouldFocusErrorFunc != nil {
		return f.opts.ShouldFocusErrorFunc()
	}
	return f.opts.ShouldFocusError
}

func sortedNames(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
