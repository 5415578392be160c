// Package errfmt provides shared formatting for diagnostic traces
// attached to trial errors.
package errfmt

import "unicode/utf8"

// MaxLen caps trace content to prevent unbounded propagation into logs
// and game records.
const MaxLen = 4096

// Truncate caps s at MaxLen bytes with UTF-8-safe truncation.
func Truncate(s string) string {
	return truncateUTF8(s, MaxLen)
}

// truncateUTF8 caps s at max bytes, backtracking to a valid UTF-8 boundary.
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	end := limit
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end]
}
