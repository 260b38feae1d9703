package common

import "strings"

// Subjects is the fixed subject list in display order.
var Subjects = []string{
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"English",
	"History",
	"Geography",
	"Computer Science",
	"Economics",
	"Other",
}

// CanonicalSubject returns the list spelling of s, ignoring case and
// surrounding whitespace.
func CanonicalSubject(s string) (string, bool) {
	key := strings.TrimSpace(s)
	for _, subj := range Subjects {
		if strings.EqualFold(subj, key) {
			return subj, true
		}
	}
	return "", false
}
