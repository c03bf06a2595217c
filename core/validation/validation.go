package validation

import "strings"

// FieldError is one failed rule on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects field errors for a request. The zero value is valid.
type Result struct {
	Errors []FieldError `json:"errors"`
}

func NewResult() *Result {
	return &Result{Errors: []FieldError{}}
}

func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

func (r *Result) HasError() bool {
	return len(r.Errors) > 0
}

// Fields lists the failing field names in order.
func (r *Result) Fields() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Field)
	}
	return out
}

// Required adds an error when value is blank.
func (r *Result) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		r.Add(field, field+" is required")
	}
}
