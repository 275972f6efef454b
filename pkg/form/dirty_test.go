package form_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-formstate/pkg/form"
)

func TestDirtyRoundtrip(t *testing.T) {
	f := form.New(form.WithDefaultValues(map[string]any{"username": "anon"}))
	ctx := context.Background()

	b := f.Register("username")
	if err := b.OnInput(ctx, "someone"); err != nil {
		t.Fatalf("input: %v", err)
	}

	state := f.State()
	if !state.IsDirty {
		t.Fatal("changed value should mark the form dirty")
	}
	if _, ok := state.DirtyFields["username"]; !ok {
		t.Fatalf("dirtyFields should contain username, got %v", state.DirtyFields)
	}

	// Returning to the default clears the field and, as the only dirty
	// field, the whole form.
	if err := b.OnInput(ctx, "anon"); err != nil {
		t.Fatalf("input: %v", err)
	}
	state = f.State()
	if state.IsDirty {
		t.Fatal("default value should clear the dirty flag")
	}
	if len(state.DirtyFields) != 0 {
		t.Fatalf("dirtyFields should be empty, got %v", state.DirtyFields)
	}
}

func TestDirtyFallsBackToEmptyString(t *testing.T) {
	f := form.New()
	ctx := context.Background()

	b := f.Register("note")
	if err := b.OnChange(ctx, "hello"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if !f.State().IsDirty {
		t.Fatal("non-empty value should be dirty against the implicit default")
	}

	if err := b.OnChange(ctx, ""); err != nil {
		t.Fatalf("change: %v", err)
	}
	if f.State().IsDirty {
		t.Fatal("empty string should match the implicit default")
	}
}

func TestDirtyTracksMultipleFields(t *testing.T) {
	f := form.New(form.WithDefaultValues(map[string]any{"a": "1", "b": "2"}))
	ctx := context.Background()

	ba := f.Register("a")
	bb := f.Register("b")

	if err := ba.OnInput(ctx, "x"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if err := bb.OnInput(ctx, "y"); err != nil {
		t.Fatalf("input: %v", err)
	}

	if err := ba.OnInput(ctx, "1"); err != nil {
		t.Fatalf("input: %v", err)
	}
	state := f.State()
	if !state.IsDirty {
		t.Fatal("form should stay dirty while another field differs")
	}
	if _, ok := state.DirtyFields["a"]; ok {
		t.Fatal("field a returned to its default and should not be dirty")
	}

	if err := bb.OnInput(ctx, "2"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if f.State().IsDirty {
		t.Fatal("form should be clean once every field matches its default")
	}
}

func TestDirtyComparesByValue(t *testing.T) {
	f := form.New(form.WithDefaultValues(map[string]any{"tags": []string{"go"}}))
	ctx := context.Background()

	b := f.Register("tags")
	if err := b.OnChange(ctx, []string{"go"}); err != nil {
		t.Fatalf("change: %v", err)
	}
	if f.State().IsDirty {
		t.Fatal("structurally equal slice should not be dirty")
	}

	if err := b.OnChange(ctx, []string{"go", "forms"}); err != nil {
		t.Fatalf("change: %v", err)
	}
	if !f.State().IsDirty {
		t.Fatal("different slice should be dirty")
	}
}
