// Package dedup selects rows that share a comparison key in a chosen
// column. Every member of a duplicate group is reported, not just the
// second and later occurrences, and the input row order is preserved.
package dedup
