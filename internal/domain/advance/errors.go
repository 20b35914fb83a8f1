package advance

import "errors"

var (
	ErrRunNotFound        = errors.New("audit run not found")
	ErrEmployeeKeyMissing = errors.New("employee identifier column missing from source data")
	ErrNoEmployees        = errors.New("no active employees for the competence month")
)
