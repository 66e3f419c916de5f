package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrInvalidRecordID    = errors.New("invalid record id")
	ErrInvalidZoneName    = errors.New("invalid zone name")
	ErrInvalidRecordType  = errors.New("invalid record type")
	ErrEmptyFields        = errors.New("record fields are required")
	ErrInvalidFieldKind   = errors.New("invalid field kind")
	ErrInvalidReference   = errors.New("invalid record reference")
	ErrEmptyBatch         = errors.New("commit batch cannot be empty")
	ErrDuplicateRecordID  = errors.New("duplicate record id in batch")
	ErrNegativePageLimit  = errors.New("page limit cannot be negative")
	ErrEmptyLogin         = errors.New("login is required")
	ErrEmptyPassword      = errors.New("password is required")
	ErrZoneNameTooLong    = errors.New("zone name is too long")
	ErrZoneMismatch       = errors.New("record zone does not match batch zone")
	ErrMissingSavePayload = errors.New("save entry is missing its record")
)
