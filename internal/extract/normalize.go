package extract

import (
	"regexp"
	"strings"
)

var (
	reControl = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	reSpaces  = regexp.MustCompile(`[ \t\x{00A0}]+`)
)

// Normalize strips control characters, collapses runs of blanks within a line
// and drops empty lines.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = reControl.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, ln := range lines {
		ln = strings.TrimSpace(reSpaces.ReplaceAllString(ln, " "))
		if ln != "" {
			out = append(out, ln)
		}
	}
	return strings.Join(out, "\n")
}
