package validator

import (
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Competence validation. Month is 1-12; the year is bounded so a typo cannot
// silently fall back to the closest statutory table.
func IsValidCompetence(year, month int) bool {
	return month >= 1 && month <= 12 && year >= 2000 && year <= 2100
}

// Company code validation: 2-20 chars, A-Z, 0-9, -, _
var companyCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{2,20}$`)

func IsValidCompanyCode(code string) bool {
	return companyCodeRegex.MatchString(code)
}
