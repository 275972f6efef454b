// Package schemarules derives field rule sets and default values from
// declarative form definitions: YAML documents authored by hand, or OpenAPI
// operation request bodies.
package schemarules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/rules"
)

// Definition is a declarative form description loaded from YAML.
type Definition struct {
	Form   string     `yaml:"form"`
	Fields []FieldDef `yaml:"fields"`
}

// FieldDef describes one field: its constraints, default value, and optional
// per-rule message overrides.
type FieldDef struct {
	Name      string            `yaml:"name"`
	Label     string            `yaml:"label"`
	Help      string            `yaml:"help"`
	Secret    bool              `yaml:"secret"`
	Default   any               `yaml:"default"`
	Required  bool              `yaml:"required"`
	MinLength *int              `yaml:"minLength"`
	MaxLength *int              `yaml:"maxLength"`
	Pattern   string            `yaml:"pattern"`
	Messages  map[string]string `yaml:"messages"`
}

// ParseYAML decodes a form definition document.
func ParseYAML(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("schemarules: parse yaml: %w", err)
	}
	if len(def.Fields) == 0 {
		return Definition{}, errors.New("schemarules: definition declares no fields")
	}
	seen := make(map[string]struct{}, len(def.Fields))
	for idx, field := range def.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return Definition{}, fmt.Errorf("schemarules: field %d has no name", idx)
		}
		if _, dup := seen[name]; dup {
			return Definition{}, fmt.Errorf("schemarules: duplicate field %q", name)
		}
		seen[name] = struct{}{}
		def.Fields[idx].Name = name
	}
	return def, nil
}

// RuleSets converts the definition's constraints into evaluator rule sets,
// keyed by field name. Pattern expressions are compiled here so invalid
// definitions fail at load time rather than mid-validation.
func (d Definition) RuleSets() (map[string]rules.Set, error) {
	out := make(map[string]rules.Set, len(d.Fields))
	for _, field := range d.Fields {
		set, err := field.ruleSet()
		if err != nil {
			return nil, err
		}
		out[field.Name] = set
	}
	return out, nil
}

// Defaults collects the declared default values, keyed by field name. Fields
// without a default are omitted.
func (d Definition) Defaults() map[string]any {
	out := make(map[string]any)
	for _, field := range d.Fields {
		if field.Default != nil {
			out[field.Name] = field.Default
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (f FieldDef) ruleSet() (rules.Set, error) {
	var set rules.Set
	if f.Required {
		set.Required = &rules.Flag{Message: f.Messages[rules.KindRequired]}
	}
	if f.MinLength != nil {
		set.MinLength = &rules.Length{
			Value:   *f.MinLength,
			Message: f.Messages[rules.KindMinLength],
		}
	}
	if f.MaxLength != nil {
		set.MaxLength = &rules.Length{
			Value:   *f.MaxLength,
			Message: f.Messages[rules.KindMaxLength],
		}
	}
	if f.Pattern != "" {
		compiled, err := regexp.Compile(f.Pattern)
		if err != nil {
			return rules.Set{}, fmt.Errorf("schemarules: field %q pattern: %w", f.Name, err)
		}
		set.Pattern = &rules.Pattern{
			Value:   compiled,
			Message: f.Messages[rules.KindPattern],
		}
	}
	return set, nil
}
