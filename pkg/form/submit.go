package form

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/rules"
)

// SubmitHandler receives the name→value snapshot of a form whose validation
// passed, plus the event that triggered submission.
type SubmitHandler func(ctx context.Context, values map[string]any, event any) error

// ErrorHandler receives the aggregated field errors of a failed validation
// pass, plus the triggering event.
type ErrorHandler func(ctx context.Context, errs map[string]rules.FieldErrors, event any) error

// SubmitFunc is the event handler HandleSubmit returns.
type SubmitFunc func(ctx context.Context, event any) error

// HandleSubmit builds the submit event handler. The submit counter and the
// submitting flag move when the handler is built, not when the returned
// callable runs; callers constructing one handler per render observe one
// increment per construction.
//
// The returned callable validates every field, then branches: non-empty
// errors invoke onInvalid (when set) and leave onValid untouched; an empty
// error map snapshots all values and invokes onValid. Errors returned by
// either callback propagate uncaught, in which case the submitting flag is
// not reset.
func (f *Form) HandleSubmit(onValid SubmitHandler, onInvalid ErrorHandler) SubmitFunc {
	f.mu.Lock()
	f.state.IsSubmitting = true
	f.state.SubmitCount++
	f.mu.Unlock()
	f.publish()

	return func(ctx context.Context, event any) error {
		if err := f.Validate(ctx); err != nil {
			return err
		}

		f.mu.Lock()
		errs := cloneErrors(f.state.Errors)
		f.mu.Unlock()

		if len(errs) > 0 {
			if onInvalid != nil {
				if err := onInvalid(ctx, errs, event); err != nil {
					return err
				}
			}
			f.mu.Lock()
			f.state.IsSubmitting = false
			f.state.IsSubmitted = true
			f.mu.Unlock()
			f.publish()
			return nil
		}

		f.mu.Lock()
		values := f.valuesLocked()
		f.mu.Unlock()

		if onValid != nil {
			if err := onValid(ctx, values, event); err != nil {
				return err
			}
		}

		f.mu.Lock()
		f.state.IsSubmitting = false
		f.state.IsSubmitted = true
		f.state.IsSubmitSuccessful = true
		f.mu.Unlock()
		f.publish()
		return nil
	}
}

// CreateSubmitHandler pins the success callback signature. It exists so
// callers can declare handlers inline without repeating the type.
func (f *Form) CreateSubmitHandler(fn SubmitHandler) SubmitHandler {
	return fn
}

// CreateErrorHandler pins the error callback signature.
func (f *Form) CreateErrorHandler(fn ErrorHandler) ErrorHandler {
	return fn
}
