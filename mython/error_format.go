package mython

import (
	"fmt"
	"strconv"
	"strings"
)

// formatCodeFrame renders the offending source line with a caret under the
// reported column. Returns "" when the source or position is unknown.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}
	text := lines[pos.Line-1]

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(text)+1 {
		column = len(text) + 1
	}

	label := strconv.Itoa(pos.Line)
	return fmt.Sprintf(
		" %s | %s\n %s | %s^",
		label,
		text,
		strings.Repeat(" ", len(label)),
		strings.Repeat(" ", column-1),
	)
}
