package domain

import "strings"

// ValidationError lists every problem found in user input, in the order the
// form fields are checked.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, " ")
}
