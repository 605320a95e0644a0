package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// renderError prints an error chain one level per line, trimming each
// level down to its own increment so messages do not repeat:
//
//	error: <top>
//	  Caused by: <next>
func renderError(w io.Writer, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	fmt.Fprintf(w, "error: %s\n", increment(msg, errors.Unwrap(err)))

	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(w, "  Caused by: %s\n", increment(cause.Error(), errors.Unwrap(cause)))
	}
}

// increment strips the wrapped error's message off the tail of msg, so
// each line of the rendering carries only what its level added.
func increment(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	trimmed := strings.TrimSuffix(msg, cause.Error())
	trimmed = strings.TrimRight(trimmed, ": ")
	if trimmed == "" {
		return msg
	}
	return trimmed
}
