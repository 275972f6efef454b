package form

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/rules"
)

// fieldEvent classifies the binding handler that fired.
type fieldEvent int

const (
	eventInput fieldEvent = iota
	eventBlur
)

// activeMode returns the trigger policy currently in force: the configured
// mode before the first submit, the re-validation mode afterwards.
func (f *Form) activeMode() Mode {
	f.mu.Lock()
	submitted := f.state.IsSubmitted
	f.mu.Unlock()
	if submitted {
		return f.opts.ReValidateMode
	}
	return f.opts.Mode
}

// shouldValidate implements the trigger table: blur validates only in onBlur
// mode, input/value-commit only in onChange mode. onSubmit and all defer to
// the submission pipeline.
func (f *Form) shouldValidate(event fieldEvent) bool {
	switch f.activeMode() {
	case ModeOnChange:
		return event == eventInput
	case ModeOnBlur:
		return event == eventBlur
	default:
		return false
	}
}

// fieldInput stores the value, refreshes the dirty flags, and validates when
// the active mode triggers on input events.
func (f *Form) fieldInput(ctx context.Context, name string, value any) error {
	f.mu.Lock()
	fld, ok := f.fields[name]
	if !ok {
		f.mu.Unlock()
		return nil
	}
	fld.value = value
	f.markDirtyLocked(name, value)
	f.mu.Unlock()
	f.publish()

	if !f.shouldValidate(eventInput) {
		return nil
	}
	return f.fieldChanged(ctx, name)
}

// fieldBlurred validates when the active mode triggers on blur events.
func (f *Form) fieldBlurred(ctx context.Context, name string) error {
	if !f.shouldValidate(eventBlur) {
		return nil
	}
	return f.fieldChanged(ctx, name)
}

// fieldChanged validates one field, then recomputes IsValid as "errors map
// is empty".
func (f *Form) fieldChanged(ctx context.Context, name string) error {
	if err := f.validateOne(ctx, name, false); err != nil {
		return err
	}
	f.mu.Lock()
	f.state.IsValid = len(f.state.Errors) == 0
	f.mu.Unlock()
	f.publish()
	return nil
}

// ValidateField validates a single field on demand with the same semantics
// as an event-triggered validation.
func (f *Form) ValidateField(ctx context.Context, name string) error {
	return f.fieldChanged(ctx, name)
}

// validateOne drains pending unregisters, evaluates the field's rules, and
// stores the result. A field that no longer exists is a silent no-op. Outside
// batch mode the IsValidating flag is toggled around the evaluation.
func (f *Form) validateOne(ctx context.Context, name string, batch bool) error {
	f.drainPending()

	f.mu.Lock()
	fld, ok := f.fields[name]
	if !ok {
		f.mu.Unlock()
		return nil
	}
	in := rules.Input{
		Name:  name,
		Value: fld.value,
		Rules: fld.rules,
	}
	slot := fld.slot
	in.Focus = func() { slot.Focus() }

	if !batch {
		f.state.IsValidating = true
	}
	f.mu.Unlock()
	if !batch {
		f.publish()
	}

	result, err := rules.Evaluate(ctx, in, rules.Options{
		CollectAll:   f.opts.Criteria == CriteriaAll,
		FocusOnError: f.focusOnError(),
	})

	f.mu.Lock()
	if err == nil {
		// The existence check drops stale results for fields purged while
		// the evaluation was in flight.
		if _, exists := f.fields[name]; exists {
			if len(result) > 0 {
				f.state.Errors[name] = result
			} else {
				delete(f.state.Errors, name)
			}
		}
	}
	if !batch {
		f.state.IsValidating = false
	}
	f.mu.Unlock()
	f.publish()

	return err
}

// Validate runs full-form validation in registration order, awaiting each
// field before the next. The IsValidating flag bounces true/false around
// every field rather than once around the loop; store subscribers observe
// one transition per field. IsValid is recomputed once the pass completes.
func (f *Form) Validate(ctx context.Context) error {
	f.drainPending()

	f.mu.Lock()
	names := append([]string(nil), f.order...)
	f.mu.Unlock()

	for _, name := range names {
		f.mu.Lock()
		f.state.IsValidating = true
		f.mu.Unlock()
		f.publish()

		err := f.validateOne(ctx, name, true)

		f.mu.Lock()
		f.state.IsValidating = false
		f.mu.Unlock()
		f.publish()

		if err != nil {
			return err
		}
	}

	f.mu.Lock()
	f.state.IsValid = len(f.state.Errors) == 0
	f.mu.Unlock()
	f.publish()
	return nil
}
