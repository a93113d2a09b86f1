package util

import "strings"

// TruncateString truncates a string to maxRunes characters (rune-based, not byte-based)
// If truncated, appends "..." to the result
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// SanitizeFilename removes characters that are unsafe in file names on
// common filesystems.
func SanitizeFilename(name string) string {
	var builder strings.Builder
	for _, r := range name {
		switch r {
		case '\\', '/', '*', '?', ':', '"', '<', '>', '|':
			continue
		default:
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// CollapseLines trims a cell value and folds internal newlines into single
// spaces so multi-line table cells serialize as one line.
func CollapseLines(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, "\n", " ")
}

// TrimTrailingColon removes exactly one trailing colon, if present.
func TrimTrailingColon(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), ":")
}
