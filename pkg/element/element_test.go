package element_test

import (
	"testing"

	"github.com/goliatone/go-formstate/pkg/element"
)

type fakeElement struct {
	focused int
}

func (f *fakeElement) Focus() { f.focused++ }

func TestResolveVariants(t *testing.T) {
	target := &fakeElement{}

	cases := []struct {
		name string
		node element.Node
		want bool
	}{
		{"raw", element.Raw{Element: target}, true},
		{"raw nil element", element.Raw{}, false},
		{"ref to raw", element.Ref{Target: element.Raw{Element: target}}, true},
		{"ref nil target", element.Ref{}, false},
		{
			"component first descendant",
			element.Component{
				Name: "field-group",
				Children: []element.Node{
					element.Component{Name: "label"},
					element.Ref{Target: element.Raw{Element: target}},
				},
			},
			true,
		},
		{"component no focusable", element.Component{Name: "static"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			el, ok := element.Resolve(tc.node)
			if ok != tc.want {
				t.Fatalf("Resolve ok = %v, want %v", ok, tc.want)
			}
			if ok && el != element.Focusable(target) {
				t.Fatalf("Resolve returned unexpected element %v", el)
			}
		})
	}
}

func TestSlotFocus(t *testing.T) {
	target := &fakeElement{}
	slot := &element.Slot{}

	if slot.Focus() {
		t.Fatal("detached slot should not focus")
	}

	slot.Attach(element.Component{
		Name:     "input-wrapper",
		Children: []element.Node{element.Raw{Element: target}},
	})
	if !slot.Focus() {
		t.Fatal("attached slot should focus")
	}
	if target.focused != 1 {
		t.Fatalf("focus count = %d, want 1", target.focused)
	}

	slot.Attach(nil)
	if slot.Focus() {
		t.Fatal("slot detached again should not focus")
	}
}
