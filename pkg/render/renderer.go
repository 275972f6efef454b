// Package render produces read-only HTML fragments from form state
// snapshots, for server-driven UIs that surface validation results without a
// client-side framework. Messages and values pass through a strict
// sanitization policy before interpolation.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formstate/pkg/form"
)

// defaultTemplate renders the submission flags and an error list. Override
// with WithTemplate for custom markup.
const defaultTemplate = `<div class="form-state{% if state.isValid %} is-valid{% endif %}{% if state.isDirty %} is-dirty{% endif %}">
{% if messages %}<ul class="form-errors">
{% for item in messages %}  <li data-field="{{ item.field }}" data-rule="{{ item.rule }}">{{ item.message }}</li>
{% endfor %}</ul>
{% endif %}<span class="submit-count">{{ state.submitCount }}</span>
</div>
`

// Option configures a Renderer before construction.
type Option func(*config)

type config struct {
	template string
}

// WithTemplate overrides the built-in snapshot template. The template
// receives "state" (flags and counters) and "messages" (the flattened,
// sanitized error list).
func WithTemplate(tpl string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(tpl) != "" {
			cfg.template = tpl
		}
	}
}

// Renderer turns form state snapshots into HTML fragments.
type Renderer struct {
	tpl *pongo2.Template
}

// New constructs a Renderer, compiling the snapshot template up front so
// rendering cannot fail on syntax later.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{template: defaultTemplate}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	set := pongo2.NewSet("formstate", pongo2.DefaultLoader)
	tpl, err := set.FromString(cfg.template)
	if err != nil {
		return nil, fmt.Errorf("render: parse template: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Snapshot renders the state snapshot. Error messages are flattened with
// Messages, so ordering is deterministic and content is sanitized.
func (r *Renderer) Snapshot(state form.State) (string, error) {
	if r == nil || r.tpl == nil {
		return "", fmt.Errorf("render: renderer is not initialised")
	}

	out, err := r.tpl.Execute(pongo2.Context{
		"state": map[string]any{
			"isDirty":            state.IsDirty,
			"isValid":            state.IsValid,
			"isValidating":       state.IsValidating,
			"isSubmitting":       state.IsSubmitting,
			"isSubmitted":        state.IsSubmitted,
			"isSubmitSuccessful": state.IsSubmitSuccessful,
			"submitCount":        state.SubmitCount,
			"dirtyFields":        sortedFieldNames(state.DirtyFields),
		},
		"messages": messageContext(Messages(state.Errors)),
	})
	if err != nil {
		return "", fmt.Errorf("render: execute template: %w", err)
	}
	return out, nil
}

func messageContext(messages []FieldMessage) []map[string]any {
	out := make([]map[string]any, 0, len(messages))
	for _, msg := range messages {
		out = append(out, map[string]any{
			"field":   msg.Field,
			"rule":    msg.Rule,
			"message": msg.Message,
		})
	}
	return out
}

func sortedFieldNames(set map[string]struct{}) []string {
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
