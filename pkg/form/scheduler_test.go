package form_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-formstate/pkg/element"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/rules"
)

type focusRecorder struct {
	count int
}

func (r *focusRecorder) Focus() { r.count++ }

// Scenario: onChange mode, username with minLength 6. Typing a short value
// populates the error, blurring does nothing, typing a passing value clears
// it and the form becomes valid.
func TestOnChangeModeValidatesOnInputNotBlur(t *testing.T) {
	f := form.New(form.WithMode(form.ModeOnChange))
	ctx := context.Background()

	b := f.Register("username", form.WithRules(rules.Set{
		MinLength: &rules.Length{Value: 6},
	}))

	if err := b.OnInput(ctx, "ab"); err != nil {
		t.Fatalf("input: %v", err)
	}
	state := f.State()
	if _, ok := state.Errors["username"]; !ok {
		t.Fatalf("short input should populate errors, got %v", state.Errors)
	}
	if state.IsValid {
		t.Fatal("form should not be valid with a failing field")
	}

	if err := b.OnBlur(ctx); err != nil {
		t.Fatalf("blur: %v", err)
	}
	state = f.State()
	if _, ok := state.Errors["username"]; !ok {
		t.Fatal("blur in onChange mode must not clear or re-run validation")
	}

	if err := b.OnInput(ctx, "abcdef"); err != nil {
		t.Fatalf("input: %v", err)
	}
	state = f.State()
	if len(state.Errors) != 0 {
		t.Fatalf("passing value should clear errors, got %v", state.Errors)
	}
	if !state.IsValid {
		t.Fatal("form should be valid once every field passes")
	}
}

func TestOnBlurModeValidatesOnBlurNotInput(t *testing.T) {
	f := form.New(form.WithMode(form.ModeOnBlur))
	ctx := context.Background()

	b := f.Register("username", form.WithRules(rules.Set{
		Required: &rules.Flag{},
	}))

	if err := b.OnInput(ctx, ""); err != nil {
		t.Fatalf("input: %v", err)
	}
	if len(f.State().Errors) != 0 {
		t.Fatal("input in onBlur mode must not validate")
	}

	if err := b.OnBlur(ctx); err != nil {
		t.Fatalf("blur: %v", err)
	}
	if _, ok := f.State().Errors["username"]; !ok {
		t.Fatal("blur in onBlur mode should validate")
	}
}

func TestOnSubmitModeDefersEventValidation(t *testing.T) {
	for _, mode := range []form.Mode{form.ModeOnSubmit, form.ModeAll} {
		f := form.New(form.WithMode(mode))
		ctx := context.Background()

		b := f.Register("username", form.WithRules(rules.Set{
			Required: &rules.Flag{},
		}))

		if err := b.OnInput(ctx, ""); err != nil {
			t.Fatalf("%s input: %v", mode, err)
		}
		if err := b.OnBlur(ctx); err != nil {
			t.Fatalf("%s blur: %v", mode, err)
		}
		if len(f.State().Errors) != 0 {
			t.Fatalf("%s mode must defer validation to submission", mode)
		}
	}
}

func TestReValidateModeAppliesAfterFirstSubmit(t *testing.T) {
	f := form.New(
		form.WithMode(form.ModeOnSubmit),
		form.WithReValidateMode(form.ModeOnChange),
	)
	ctx := context.Background()

	b := f.Register("username", form.WithRules(rules.Set{
		Required: &rules.Flag{},
	}))

	if err := b.OnInput(ctx, ""); err != nil {
		t.Fatalf("input: %v", err)
	}
	if len(f.State().Errors) != 0 {
		t.Fatal("before the first submit, onSubmit mode defers validation")
	}

	submit := f.HandleSubmit(nil, nil)
	if err := submit(ctx, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !f.State().IsSubmitted {
		t.Fatal("submit should mark the form submitted")
	}

	if err := b.OnInput(ctx, "someone"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if len(f.State().Errors) != 0 {
		t.Fatal("re-validation on change should clear the error")
	}
	if err := b.OnInput(ctx, ""); err != nil {
		t.Fatalf("input: %v", err)
	}
	if _, ok := f.State().Errors["username"]; !ok {
		t.Fatal("re-validation on change should re-report the error")
	}
}

func TestValidateUnknownFieldIsNoOp(t *testing.T) {
	f := form.New()
	if err := f.ValidateField(context.Background(), "ghost"); err != nil {
		t.Fatalf("validating an unregistered field must be silent, got %v", err)
	}
}

// The validating flag bounces true/false around every field of a full-form
// pass, so observers see one rising edge per field.
func TestValidateAllTogglesValidatingPerField(t *testing.T) {
	f := form.New()
	ctx := context.Background()

	f.Register("a", form.WithRules(rules.Set{Required: &rules.Flag{}}))
	f.Register("b", form.WithRules(rules.Set{Required: &rules.Flag{}}))

	var flags []bool
	cancel := f.Store().Subscribe(func(s form.State) {
		flags = append(flags, s.IsValidating)
	})
	defer cancel()

	if err := f.Validate(ctx); err != nil {
		t.Fatalf("validate: %v", err)
	}

	rising := 0
	prev := false
	for _, flag := range flags {
		if flag && !prev {
			rising++
		}
		prev = flag
	}
	if rising != 2 {
		t.Fatalf("validating rising edges = %d, want one per field (2); flags %v", rising, flags)
	}
	if len(flags) == 0 || flags[len(flags)-1] {
		t.Fatalf("validating must settle false, flags %v", flags)
	}
}

func TestValidateAllRunsInRegistrationOrder(t *testing.T) {
	f := form.New(form.WithCriteria(form.CriteriaAll))
	ctx := context.Background()

	var visited []string
	record := func(name string) rules.Predicate {
		return func(context.Context, any) (string, error) {
			visited = append(visited, name)
			return "", nil
		}
	}

	f.Register("third", form.WithRules(rules.Set{Validate: record("third")}))
	f.Register("first", form.WithRules(rules.Set{Validate: record("first")}))
	f.Register("second", form.WithRules(rules.Set{Validate: record("second")}))

	if err := f.Validate(ctx); err != nil {
		t.Fatalf("validate: %v", err)
	}

	want := []string{"third", "first", "second"}
	for i, name := range want {
		if i >= len(visited) || visited[i] != name {
			t.Fatalf("visit order = %v, want %v", visited, want)
		}
	}
}

func TestFocusOnErrorFocusesElement(t *testing.T) {
	recorder := &focusRecorder{}
	f := form.New(
		form.WithMode(form.ModeOnChange),
		form.WithShouldFocusError(true),
	)
	ctx := context.Background()

	b := f.Register("username", form.WithRules(rules.Set{
		Required: &rules.Flag{},
	}))
	b.Element.Attach(element.Raw{Element: recorder})

	if err := b.OnInput(ctx, ""); err != nil {
		t.Fatalf("input: %v", err)
	}
	if recorder.count != 1 {
		t.Fatalf("focus count = %d, want 1", recorder.count)
	}

	if err := b.OnInput(ctx, "ok"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if recorder.count != 1 {
		t.Fatal("passing validation must not focus")
	}
}

func TestShouldFocusErrorFuncSampledAtEvaluation(t *testing.T) {
	recorder := &focusRecorder{}
	enabled := false
	f := form.New(
		form.WithMode(form.ModeOnChange),
		form.WithShouldFocusErrorFunc(func() bool { return enabled }),
	)
	ctx := context.Background()

	b := f.Register("username", form.WithRules(rules.Set{
		Required: &rules.Flag{},
	}))
	b.Element.Attach(element.Raw{Element: recorder})

	if err := b.OnInput(ctx, ""); err != nil {
		t.Fatalf("input: %v", err)
	}
	if recorder.count != 0 {
		t.Fatal("disabled flag must suppress focusing")
	}

	enabled = true
	if err := b.OnInput(ctx, ""); err != nil {
		t.Fatalf("input: %v", err)
	}
	if recorder.count != 1 {
		t.Fatalf("focus count = %d, want 1 after enabling", recorder.count)
	}
}
