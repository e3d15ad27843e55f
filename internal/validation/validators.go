package validation

import (
	"maps"
	"strings"
)

// Validator checks one form value and returns its message, or "" when the
// value is acceptable.
type Validator func(v string) string

// Required rejects blank values.
func Required(field string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return field + " is required."
		}
		return ""
	}
}

// RequiredIf applies Required only when cond holds.
func RequiredIf(cond bool, field string) Validator {
	if !cond {
		return func(string) string { return "" }
	}
	return Required(field)
}

// NotFuture rejects a YYYY-MM-DD date after today. Blank values pass.
func NotFuture(field, today string) Validator {
	return func(v string) string {
		if v != "" && v > today {
			return field + " cannot be in the future."
		}
		return ""
	}
}

// NotPast rejects a YYYY-MM-DD date before today. Blank values pass.
func NotPast(field, today string) Validator {
	return func(v string) string {
		if v != "" && v < today {
			return field + " cannot be in the past."
		}
		return ""
	}
}

// Fields collects one message per form field.
type Fields struct {
	msgs map[string]string
}

// NewFields starts a collection from the messages of an earlier pass, such
// as Struct.
func NewFields(initial map[string]string) *Fields {
	f := &Fields{msgs: make(map[string]string, len(initial))}
	maps.Copy(f.msgs, initial)
	return f
}

// Check runs validators on value until one fails and records its message.
// A field that already carries a message is left alone.
func (f *Fields) Check(field, value string, validators ...Validator) *Fields {
	if f.Has(field) {
		return f
	}
	for _, v := range validators {
		if msg := v(value); msg != "" {
			f.msgs[field] = msg
			break
		}
	}
	return f
}

// Set records msg for field, or clears it when msg is empty.
func (f *Fields) Set(field, msg string) *Fields {
	if msg == "" {
		delete(f.msgs, field)
	} else {
		f.msgs[field] = msg
	}
	return f
}

// Clear drops the message of a corrected field.
func (f *Fields) Clear(field string) { delete(f.msgs, field) }

// Has reports whether field carries a message.
func (f *Fields) Has(field string) bool {
	_, ok := f.msgs[field]
	return ok
}

// Valid reports whether no field carries a message.
func (f *Fields) Valid() bool { return len(f.msgs) == 0 }

// Errors returns a copy of the messages keyed by field.
func (f *Fields) Errors() map[string]string { return maps.Clone(f.msgs) }
