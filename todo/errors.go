package todo

import "errors"

var (
	// ErrMissingTimestamp is returned when a stored record lacks a required
	// timestamp field.
	ErrMissingTimestamp = errors.New("record is missing required timestamp")

	// ErrBadTimestamp is returned when a stored timestamp cannot be parsed.
	ErrBadTimestamp = errors.New("record has unparsable timestamp")

	// ErrMissingID is returned when a stored record has no id.
	ErrMissingID = errors.New("record is missing id")

	// ErrInvalidRecord is returned when a stored record fails schema
	// validation.
	ErrInvalidRecord = errors.New("record failed schema validation")

	// ErrUnsupportedVersion is returned when the stored envelope declares a
	// version newer than this build understands.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)
