package property

import "errors"

// Domain errors cho property
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrPropertyInactive = errors.New("property is no longer active")
	ErrForbidden        = errors.New("not allowed to modify this property")
	ErrInvalidType      = errors.New("invalid property type")
	ErrInvalidStatus    = errors.New("invalid property status")
	ErrInvalidSort      = errors.New("invalid sort field")
)
