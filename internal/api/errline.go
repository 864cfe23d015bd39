package api

import "strings"

// Backend error bodies embed raw engine stderr: ANSI-colored, multi-line,
// with the actionable message buried under progress noise and backtrace
// offers. These helpers pull out the first line worth showing an operator.

// StripANSI removes CSI escape sequences from s.
func StripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\x1b' && i+1 < len(runes) && runes[i+1] == '[' {
			i += 2
			for i < len(runes) && !isASCIILetter(runes[i]) {
				i++
			}
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// FirstUsefulErrorLine extracts the first actionable line from an engine
// stderr dump: the line following a bare "Message:" marker, the remainder of
// an inline "Message: ..." line, or failing both, the first line that is not
// info chatter. Returns "" when nothing useful remains.
func FirstUsefulErrorLine(stderr string) string {
	var lines []string
	for _, raw := range strings.Split(stderr, "\n") {
		line := strings.TrimSpace(StripANSI(raw))
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	for i, line := range lines {
		if strings.EqualFold(line, "message:") {
			for _, next := range lines[i+1:] {
				lower := strings.ToLower(next)
				if strings.HasPrefix(lower, "some additional details") || strings.HasPrefix(lower, "backtrace") {
					continue
				}
				return next
			}
		}
	}

	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "message:") && len(line) > len("message:") {
			if msg := strings.TrimSpace(line[len("message:"):]); msg != "" {
				return msg
			}
		}
	}

	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "[info]") || strings.HasPrefix(lower, "info:") {
			continue
		}
		return line
	}
	return ""
}
