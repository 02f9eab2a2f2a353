package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field problem found in one subject (a config
// file or a content file) so they can be reported together.
type ValidationError struct {
	Subject string
	Items   []FieldError
}

func (e ValidationError) Error() string {
	head := "validation failed"
	if e.Subject != "" {
		head = e.Subject + ": " + head
	}
	if len(e.Items) == 0 {
		return head
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteString(":")
	for i, item := range e.Items {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(" ")
		b.WriteString(item.Error())
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// Fields lists the offending field names in the order they were added.
func (e ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		out = append(out, item.Field)
	}
	return out
}

// Err returns e when it carries at least one item and nil otherwise.
func (e ValidationError) Err() error {
	if e.HasAny() {
		return e
	}
	return nil
}
