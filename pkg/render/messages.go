package render

import (
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/rules"
)

// FieldMessage is one sanitized validation failure ready for display.
type FieldMessage struct {
	Field   string
	Rule    string
	Message string
}

// Messages flattens an errors mapping into a deterministic, sanitized list:
// sorted by field name, then rule name. Empty messages fall back to a generic
// line so failures are never silently dropped.
func Messages(errs map[string]rules.FieldErrors) []FieldMessage {
	if len(errs) == 0 {
		return nil
	}

	fieldNames := make([]string, 0, len(errs))
	for name := range errs {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)

	var out []FieldMessage
	for _, field := range fieldNames {
		fieldErrs := errs[field]
		ruleNames := make([]string, 0, len(fieldErrs))
		for rule := range fieldErrs {
			ruleNames = append(ruleNames, rule)
		}
		sort.Strings(ruleNames)

		for _, rule := range ruleNames {
			message := sanitizeMessage(fieldErrs[rule])
			if message == "" {
				message = "invalid value"
			}
			out = append(out, FieldMessage{
				Field:   field,
				Rule:    rule,
				Message: message,
			})
		}
	}
	return out
}

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// sanitizeMessage strips markup from user-supplied rule messages before they
// reach HTML output. Custom messages may originate from schema documents or
// remote definitions, so they are treated as untrusted.
func sanitizeMessage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	policy := messageSanitizer()
	return strings.TrimSpace(policy.Sanitize(trimmed))
}

func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return messagePolicy
}
