// Package validation decides whether a submitted book or user record is
// well-formed before it is allowed to enter the catalog. Field checks run
// first over the whole draft, normalizing it in place; cross-field rules then
// run against the fully normalized field set. Every violation found in one
// pass is aggregated so callers can report all problems in a single response.
package validation

import "strings"

// Violation codes.
const (
	CodeFormat     = "format_error"
	CodeValidation = "validation_error"
	CodeConstraint = "constraint_error"
	CodeDuplicate  = "duplicate_key"
)

// Violation is a single broken rule. Fields names every offending field; most
// violations name one, cross-field constraints name all of them.
type Violation struct {
	Fields  []string `json:"fields"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
}

// List is an ordered collection of violations. Ordering is deterministic:
// field checks in declaration order, then cross-field rules.
type List []Violation

func (l *List) add(code, field, message string) {
	*l = append(*l, Violation{Fields: []string{field}, Code: code, Message: message})
}

func (l *List) addMulti(code string, fields []string, message string) {
	*l = append(*l, Violation{Fields: fields, Code: code, Message: message})
}

// Has reports whether any violation names the given field.
func (l List) Has(field string) bool {
	for _, v := range l {
		for _, f := range v.Fields {
			if f == field {
				return true
			}
		}
	}
	return false
}

// Error renders the list as a single message; List satisfies the error
// interface so services can hand it straight up the stack.
func (l List) Error() string {
	msgs := make([]string, 0, len(l))
	for _, v := range l {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}
