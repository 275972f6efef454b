package schemarules

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/rules"
)

// FromOpenAPI derives per-field rule sets from the JSON request body of the
// operation identified by operationID. String constraints map directly:
// required membership, minLength, maxLength, and pattern. Constraints the
// evaluator does not model (numeric bounds, enums) are ignored.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) (map[string]rules.Set, error) {
	if len(raw) == 0 {
		return nil, errors.New("schemarules: openapi document is empty")
	}
	if operationID == "" {
		return nil, errors.New("schemarules: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schemarules: load openapi document: %w", err)
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return nil, fmt.Errorf("schemarules: operation %q not found", operationID)
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return nil, fmt.Errorf("schemarules: operation %q has no request schema", operationID)
	}

	return ruleSetsFromSchema(schema)
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete,
			item.Patch, item.Head, item.Options, item.Trace,
		} {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func ruleSetsFromSchema(schema *openapi3.Schema) (map[string]rules.Set, error) {
	if len(schema.Properties) == 0 {
		return nil, errors.New("schemarules: request schema has no properties")
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	out := make(map[string]rules.Set, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		set, err := propertyRuleSet(name, ref.Value, required)
		if err != nil {
			return nil, err
		}
		out[name] = set
	}
	return out, nil
}

func propertyRuleSet(name string, prop *openapi3.Schema, required map[string]struct{}) (rules.Set, error) {
	var set rules.Set
	if _, ok := required[name]; ok {
		set.Required = &rules.Flag{}
	}
	if prop.MinLength != 0 {
		set.MinLength = &rules.Length{Value: int(prop.MinLength)}
	}
	if prop.MaxLength != nil {
		set.MaxLength = &rules.Length{Value: int(*prop.MaxLength)}
	}
	if prop.Pattern != "" {
		compiled, err := regexp.Compile(prop.Pattern)
		if err != nil {
			return rules.Set{}, fmt.Errorf("schemarules: property %q pattern: %w", name, err)
		}
		set.Pattern = &rules.Pattern{Value: compiled}
	}
	return set, nil
}
