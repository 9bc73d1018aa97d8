// Package sanitize redacts personally identifiable content from log
// text before it is persisted.
package sanitize

import "regexp"

// Redaction rules, applied in order. The placeholders contain no
// slashes, digits, or '@', so no rule can match inside the output of
// an earlier one; that makes Sanitize idempotent.
var (
	// Filesystem paths with at least two components.
	pathPattern = regexp.MustCompile(`(?:/[\w.~%+-]+){2,}/?`)

	// Email-like tokens.
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// user_<token> identifiers.
	userIDPattern = regexp.MustCompile(`user_[A-Za-z0-9-]+`)

	// Long digit runs (account numbers, device serials).
	numberPattern = regexp.MustCompile(`\d{10,}`)
)

// Sanitize redacts paths, emails, user identifiers, and long numbers
// from s. It is a pure function, idempotent, and preserves everything
// outside the matched spans.
func Sanitize(s string) string {
	s = pathPattern.ReplaceAllString(s, "[PATH]")
	s = emailPattern.ReplaceAllString(s, "[EMAIL]")
	s = userIDPattern.ReplaceAllString(s, "[USER_ID]")
	s = numberPattern.ReplaceAllString(s, "[LARGE_NUMBER]")
	return s
}
