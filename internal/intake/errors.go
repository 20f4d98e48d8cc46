package intake

import "errors"

var (
	ErrMissingNationalNumber = errors.New("identity has no national number")
	ErrExportTimeout         = errors.New("identity card export not found")
)
