package catalog

import "errors"

var (
	ErrCompanyNotConfigured = errors.New("company code has no rule catalog entry")
	ErrMissingExternalID    = errors.New("company rule has no external system identifier")
	ErrInvalidEventCode     = errors.New("event code is not numeric")
	ErrNoStatutoryTable     = errors.New("no statutory table configured for year")
)
