package commands

import (
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
)

// HelpFormatter renders a command's help text in one consistent shape.
type HelpFormatter struct {
	Command     string
	Description string
	Examples    []Example
	Notes       []string
}

// Example is one usage line shown under Examples.
type Example struct {
	Command     string
	Description string
}

// FormatHelp renders the description, examples and notes followed by the
// parser's flag table.
func (h *HelpFormatter) FormatHelp(parser *flags.Parser) string {
	var result strings.Builder

	if h.Description != "" {
		result.WriteString(h.Description + "\n\n")
	}

	if len(h.Examples) > 0 {
		result.WriteString("Examples:\n")
		for _, example := range h.Examples {
			if example.Description != "" {
				fmt.Fprintf(&result, "  %s  # %s\n", example.Command, example.Description)
			} else {
				fmt.Fprintf(&result, "  %s\n", example.Command)
			}
		}
		result.WriteString("\n")
	}

	if len(h.Notes) > 0 {
		result.WriteString("Notes:\n")
		for _, note := range h.Notes {
			fmt.Fprintf(&result, "  %s\n", note)
		}
		result.WriteString("\n")
	}

	parser.WriteHelp(&result)

	return result.String()
}
