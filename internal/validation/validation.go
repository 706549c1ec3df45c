// Package validation checks decoded JSON request bodies against per-field
// rule chains and reports every failing rule as a field-level error.
package validation

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var formats = validator.New()

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered list of failed rules across all fields.
type Errors []FieldError

type rule struct {
	message string
	ok      func(value interface{}) bool
}

// FieldRules is the ordered rule chain for a single field.
type FieldRules struct {
	name     string
	optional bool
	rules    []rule
}

// RuleSet holds the rule chains for a resource, in declaration order.
type RuleSet struct {
	fields []*FieldRules
}

// Rules builds a RuleSet from per-field chains.
func Rules(fields ...*FieldRules) RuleSet {
	return RuleSet{fields: fields}
}

// Field starts a rule chain for the named body field.
func Field(name string) *FieldRules {
	return &FieldRules{name: name}
}

// Optional marks the field so all rules are skipped when the value is
// absent, null, or an empty string.
func (f *FieldRules) Optional() *FieldRules {
	f.optional = true
	return f
}

// Required fails when the value is absent, null, or an empty string.
func (f *FieldRules) Required(message string) *FieldRules {
	f.rules = append(f.rules, rule{message: message, ok: func(v interface{}) bool {
		return !isEmpty(v)
	}})
	return f
}

// String fails when the value is not a JSON string.
func (f *FieldRules) String(message string) *FieldRules {
	f.rules = append(f.rules, rule{message: message, ok: func(v interface{}) bool {
		_, ok := v.(string)
		return ok
	}})
	return f
}

// Array fails when the value is not a JSON array.
func (f *FieldRules) Array(message string) *FieldRules {
	f.rules = append(f.rules, rule{message: message, ok: func(v interface{}) bool {
		_, ok := v.([]interface{})
		return ok
	}})
	return f
}

// MinLength fails when the value is not a string of at least n characters.
func (f *FieldRules) MinLength(n int, message string) *FieldRules {
	f.rules = append(f.rules, rule{message: message, ok: func(v interface{}) bool {
		s, ok := v.(string)
		return ok && len([]rune(s)) >= n
	}})
	return f
}

// OneOf fails when the value is not one of the allowed strings.
func (f *FieldRules) OneOf(allowed []string, message string) *FieldRules {
	f.rules = append(f.rules, rule{message: message, ok: func(v interface{}) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}})
	return f
}

// ISO8601 fails when the value is not a string parseable as an ISO-8601 date.
func (f *FieldRules) ISO8601(message string) *FieldRules {
	f.rules = append(f.rules, rule{message: message, ok: func(v interface{}) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := ParseDate(s)
		return err == nil
	}})
	return f
}

// Email fails when the value is not a valid email address.
func (f *FieldRules) Email(message string) *FieldRules {
	f.rules = append(f.rules, rule{message: message, ok: func(v interface{}) bool {
		s, ok := v.(string)
		return ok && formats.Var(s, "email") == nil
	}})
	return f
}

// URL fails when the value is not a valid URL.
func (f *FieldRules) URL(message string) *FieldRules {
	f.rules = append(f.rules, rule{message: message, ok: func(v interface{}) bool {
		s, ok := v.(string)
		return ok && formats.Var(s, "url") == nil
	}})
	return f
}

// Apply evaluates every rule of every field against the body and returns the
// failures in declaration order. Rules on a field are evaluated independently,
// so one field can report several messages. Returns nil when everything passes.
func (rs RuleSet) Apply(body map[string]interface{}) Errors {
	var errs Errors
	for _, f := range rs.fields {
		value := body[f.name]
		if f.optional && isEmpty(value) {
			continue
		}
		for _, r := range f.rules {
			if !r.ok(value) {
				errs = append(errs, FieldError{Field: f.name, Message: r.message})
			}
		}
	}
	return errs
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// dateLayouts are the ISO-8601 shapes accepted for date fields.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate parses an ISO-8601 date string.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}
