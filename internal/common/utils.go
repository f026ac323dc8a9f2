package common

import (
	"strings"

	"golang.org/x/text/cases"
)

// HasAny returns true if s contains any of the substrings, ignoring case.
func HasAny(s string, subs ...string) bool {
	fold := cases.Fold()
	folded := fold.String(s)
	for _, sub := range subs {
		if strings.Contains(folded, fold.String(sub)) {
			return true
		}
	}
	return false
}

// AnyHasAny reports whether any element of items contains one of the substrings, ignoring case.
func AnyHasAny(items []string, subs ...string) bool {
	for _, it := range items {
		if HasAny(it, subs...) {
			return true
		}
	}
	return false
}
