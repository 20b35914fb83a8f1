package taxaudit

import "errors"

var (
	ErrRunNotFound = errors.New("tax audit run not found")
	ErrNoEvents    = errors.New("no payroll events for the competence month")
)
