package reporting

import "errors"

var (
	ErrInvalidSection      = errors.New("invalid report section")
	ErrMissingOrganization = errors.New("organization id is required")
)
