package errors

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError lists what is wrong with one request field.
type ValidationError struct {
	Code     int      `json:"code"`
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

func NewValidationError(code int, field string, messages ...string) *ValidationError {
	return &ValidationError{
		Code:     code,
		Field:    field,
		Messages: messages,
	}
}

// Error reads like "roomId is required".
func (e *ValidationError) Error() string {
	return e.Field + " " + strings.Join(e.Messages, ", ")
}

// ValidationErrorCollector gathers field errors for a single response.
type ValidationErrorCollector struct {
	errors []*ValidationError
}

func NewValidationErrorCollector() *ValidationErrorCollector {
	return &ValidationErrorCollector{errors: []*ValidationError{}}
}

func (c *ValidationErrorCollector) Add(err *ValidationError) *ValidationErrorCollector {
	c.errors = append(c.errors, err)
	return c
}

func (c *ValidationErrorCollector) HasError() bool {
	return len(c.errors) > 0
}

func (c *ValidationErrorCollector) Errors() []*ValidationError {
	return c.errors
}

func (c *ValidationErrorCollector) Error() string {
	msgs := make([]string, len(c.errors))
	for i, err := range c.errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, ", ")
}

// FromValidator converts validator field errors into a collector keyed by the
// validator's field names. ok is false when err holds no field errors.
func FromValidator(code int, err error) (c *ValidationErrorCollector, ok bool) {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return nil, false
	}
	c = NewValidationErrorCollector()
	for _, fe := range verrs {
		c.Add(NewValidationError(code, fe.Field(), tagMessage(fe.Tag())))
	}
	return c, true
}

func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "max":
		return "is too long"
	case "oneof":
		return "is not an allowed value"
	default:
		return "is invalid"
	}
}
