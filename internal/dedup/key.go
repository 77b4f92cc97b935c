package dedup

import "strings"

// ComparisonKey derives the value two rows are compared on. Leading
// and trailing whitespace is trimmed; interior whitespace and letter
// case are preserved, so " A1 " and "A1" collide but "a1" does not.
// The empty string is a valid key: blank cells group together.
func ComparisonKey(raw string) string {
	return strings.TrimSpace(raw)
}
