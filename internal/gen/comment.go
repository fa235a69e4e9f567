package gen

import (
	"strings"

	"github.com/kr/text"
)

const docPrefix = " * "

// docLines wraps text into gtk-doc comment lines no wider than width,
// including the " * " prefix. Lines are filled greedily; a word longer than
// the line gets a line of its own.
func docLines(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{" *"}
	}

	limit := width - len(docPrefix)

	var (
		lines []string
		line  string
	)

	for _, w := range words {
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) <= limit:
			line += " " + w
		default:
			lines = append(lines, line)
			line = w
		}
	}

	lines = append(lines, line)

	return strings.Split(text.Indent(strings.Join(lines, "\n"), docPrefix), "\n")
}
