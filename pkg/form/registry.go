package form

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/element"
	"github.com/goliatone/go-formstate/pkg/rules"
)

// Binding is the descriptor Register returns for a field. The UI adapter
// attaches the element reference to Element and wires the three handlers to
// its blur, value-commit, and input events.
type Binding struct {
	Name  string
	Value any

	// Element is the slot the adapter attaches the underlying UI reference
	// to. The engine reads it only to focus on error.
	Element *element.Slot

	// OnBlur fires on blur events. Validation runs only when the active mode
	// is onBlur.
	OnBlur func(ctx context.Context) error

	// OnChange fires on value-commit events. The value is stored and marked
	// dirty; validation runs only when the active mode is onChange.
	OnChange func(ctx context.Context, value any) error

	// OnInput fires on per-keystroke input events with the same storage and
	// trigger semantics as OnChange.
	OnInput func(ctx context.Context, value any) error
}

// RegisterOption customises one Register call.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	rules    rules.Set
	hasRules bool
	value    any
	hasValue bool
}

// WithRules attaches the validation rule set for the field.
func WithRules(set rules.Set) RegisterOption {
	return func(cfg *registerConfig) {
		cfg.rules = set
		cfg.hasRules = true
	}
}

// WithValue seeds the field's current value explicitly. Without it a repeat
// Register never overwrites an already populated value.
func WithValue(value any) RegisterOption {
	return func(cfg *registerConfig) {
		cfg.value = value
		cfg.hasValue = true
	}
}

// Register creates the field record if absent and returns its binding
// descriptor. Repeated calls for the same name are a rebind: the populated
// value survives unless an explicit WithValue is passed, the rule set is
// replaced only when one is supplied, and the element slot is preserved.
// Registering a name queued for unregistration revives it.
func (f *Form) Register(name string, options ...RegisterOption) Binding {
	cfg := registerConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	f.mu.Lock()
	delete(f.pending, name)

	fld, ok := f.fields[name]
	if !ok {
		fld = &field{
			name: name,
			slot: &element.Slot{},
		}
		if cfg.hasValue {
			fld.value = cfg.value
		} else if def, found := f.defaultValue(name); found {
			fld.value = def
		}
		if cfg.hasRules {
			fld.rules = cfg.rules
		}
		f.fields[name] = fld
		f.order = append(f.order, name)
	} else {
		if cfg.hasValue {
			fld.value = cfg.value
		}
		if cfg.hasRules && !cfg.rules.Empty() {
			fld.rules = cfg.rules
		}
	}

	binding := Binding{
		Name:    name,
		Value:   fld.value,
		Element: fld.slot,
	}
	f.mu.Unlock()

	binding.OnBlur = func(ctx context.Context) error {
		return f.fieldBlurred(ctx, name)
	}
	binding.OnChange = func(ctx context.Context, value any) error {
		return f.fieldInput(ctx, name, value)
	}
	binding.OnInput = func(ctx context.Context, value any) error {
		return f.fieldInput(ctx, name, value)
	}
	return binding
}

// UseRegister returns a lazy registration factory. Each invocation performs
// the Register call, so deferred consumers always observe current state.
func (f *Form) UseRegister(name string, options ...RegisterOption) func() Binding {
	return func() Binding {
		return f.Register(name, options...)
	}
}

// Unregister queues the names for removal. Field data stays readable until
// the next validation entry point drains the queue, so in-flight validations
// referencing the field do not crash.
func (f *Form) Unregister(names ...string) {
	if len(names) == 0 {
		return
	}
	f.mu.Lock()
	for _, name := range names {
		f.pending[name] = struct{}{}
	}
	f.mu.Unlock()
}

// drainPending purges every queued field from the registry, the error map,
// and the dirty set, then clears the queue. It runs at the start of every
// validation call.
func (f *Form) drainPending() {
	f.mu.Lock()
	if len(f.pending) == 0 {
		f.mu.Unlock()
		return
	}

	for _, name := range sortedNames(f.pending) {
		delete(f.fields, name)
		delete(f.state.Errors, name)
		delete(f.state.DirtyFields, name)
		f.order = removeName(f.order, name)
	}
	f.pending = make(map[string]struct{})
	f.state.IsDirty = len(f.state.DirtyFields) > 0
	f.mu.Unlock()

	f.publish()
}

func removeName(order []string, name string) []string {
	for idx, candidate := range order {
		if candidate == name {
			return append(order[:idx], order[idx+1:]...)
		}
	}
	return order
}
