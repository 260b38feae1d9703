package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Subject is one of the fixed academic subjects a question can be filed under.
type Subject string

const (
	SubjectMathematics     Subject = "Mathematics"
	SubjectPhysics         Subject = "Physics"
	SubjectChemistry       Subject = "Chemistry"
	SubjectBiology         Subject = "Biology"
	SubjectEnglish         Subject = "English"
	SubjectHistory         Subject = "History"
	SubjectGeography       Subject = "Geography"
	SubjectComputerScience Subject = "Computer Science"
	SubjectEconomics       Subject = "Economics"
	SubjectOther           Subject = "Other"
)

// Subjects lists every subject in display order.
var Subjects = []Subject{
	SubjectMathematics,
	SubjectPhysics,
	SubjectChemistry,
	SubjectBiology,
	SubjectEnglish,
	SubjectHistory,
	SubjectGeography,
	SubjectComputerScience,
	SubjectEconomics,
	SubjectOther,
}

var subjectAliases = map[string]Subject{
	"math":  SubjectMathematics,
	"maths": SubjectMathematics,
	"cs":    SubjectComputerScience,
}

// ParseSubject matches s against the subject list, ignoring case and
// surrounding whitespace.
func ParseSubject(s string) (Subject, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", fmt.Errorf("%w: subject is required", ErrValidation)
	}
	for _, subj := range Subjects {
		if strings.ToLower(string(subj)) == key {
			return subj, nil
		}
	}
	if subj, ok := subjectAliases[key]; ok {
		return subj, nil
	}
	return "", fmt.Errorf("%w: unknown subject %q", ErrValidation, s)
}

func (s *Subject) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseSubject(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	*s = parsed
	return nil
}
