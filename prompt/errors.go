package prompt

import "errors"

// Sentinel errors for template and composition operations.
var (
	// ErrEmpty is returned when the template string is empty.
	ErrEmpty = errors.New("template is empty")

	// ErrParse is returned when the template fails to parse.
	ErrParse = errors.New("template parse error")

	// ErrExecute is returned when template execution fails.
	ErrExecute = errors.New("template execution error")

	// ErrVariable is returned when a required variable is missing.
	ErrVariable = errors.New("required variable missing")

	// ErrNoSelection is returned by Refactor when nothing is selected.
	ErrNoSelection = errors.New("no text selected")

	// ErrNoDocument is returned by Complete when there is no document text.
	ErrNoDocument = errors.New("no active document")
)
