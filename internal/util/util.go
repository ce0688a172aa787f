// Package util contains small helpers for producing text shown to users.
package util

import (
	"strings"
)

// MakeTextList gives a nice list of things, joined with commas and "and" as
// appropriate. Lists of three or more items use an oxford comma.
func MakeTextList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		withAnd := make([]string, len(items))
		copy(withAnd, items)
		withAnd[len(withAnd)-1] = "and " + withAnd[len(withAnd)-1]
		return strings.Join(withAnd, ", ")
	}
}

// Plural returns singular if count is 1 and plural otherwise.
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
