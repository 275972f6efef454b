package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/schemarules"
)

// Option configures the Filler.
type Option func(*Filler)

// WithDriver injects a PromptDriver. Defaults to the survey driver.
func WithDriver(driver PromptDriver) Option {
	return func(fl *Filler) {
		if driver != nil {
			fl.driver = driver
		}
	}
}

// Filler walks a form definition, prompts for each field, and pushes the
// answers through the engine's binding handlers, so the configured validation
// mode applies exactly as it would under a graphical adapter.
type Filler struct {
	driver PromptDriver
}

// NewFiller constructs a Filler applying the provided options.
func NewFiller(options ...Option) *Filler {
	fl := &Filler{driver: NewSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(fl)
	}
	return fl
}

// Fill registers every field of the definition with its rule set, prompts for
// a value, and feeds the answer through the input and blur handlers.
func (fl *Filler) Fill(ctx context.Context, frm *form.Form, def schemarules.Definition) error {
	sets, err := def.RuleSets()
	if err != nil {
		return err
	}

	for _, fieldDef := range def.Fields {
		binding := frm.Register(fieldDef.Name, form.WithRules(sets[fieldDef.Name]))

		answer, err := fl.driver.Input(ctx, InputConfig{
			Message: promptMessage(fieldDef),
			Default: fmt.Sprint(currentValue(binding)),
			Help:    fieldDef.Help,
			Secret:  fieldDef.Secret,
		})
		if err != nil {
			return err
		}

		if err := binding.OnInput(ctx, answer); err != nil {
			return err
		}
		if err := binding.OnBlur(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Submit builds the submit handler, runs it, and reports the outcome on the
// driver: one line per validation failure, or a confirmation with the value
// count on success.
func (fl *Filler) Submit(ctx context.Context, frm *form.Form) error {
	var failures []render.FieldMessage
	var accepted int

	submit := frm.HandleSubmit(
		func(ctx context.Context, values map[string]any, _ any) error {
			accepted = len(values)
			return nil
		},
		func(ctx context.Context, errs map[string]rules.FieldErrors, _ any) error {
			failures = render.Messages(errs)
			return nil
		},
	)

	if err := submit(ctx, nil); err != nil {
		return err
	}

	if len(failures) > 0 {
		for _, failure := range failures {
			line := fmt.Sprintf("%s: %s", failure.Field, failure.Message)
			if err := fl.driver.Info(ctx, line); err != nil {
				return err
			}
		}
		return nil
	}
	return fl.driver.Info(ctx, fmt.Sprintf("submitted %d fields", accepted))
}

func promptMessage(fieldDef schemarules.FieldDef) string {
	if fieldDef.Label != "" {
		return fieldDef.Label
	}
	return fieldDef.Name
}

func currentValue(binding form.Binding) any {
	if binding.Value == nil {
		return ""
	}
	return binding.Value
}
