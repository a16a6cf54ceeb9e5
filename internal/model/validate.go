package model

import "strings"

// ValidationError carries the full list of field problems for a request,
// surfaced to the client as one message.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}
