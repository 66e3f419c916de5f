package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/zonesync/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldRecordID targets the client-generated unique identifier of a record.
	FieldRecordID = "record_id"

	// FieldUserID targets the owner identifier of a record or request.
	FieldUserID = "user_id"

	// FieldZone targets the zone name of a record or request.
	FieldZone = "zone"

	// FieldType targets the free-form record type label.
	FieldType = "type"

	// FieldFields targets the typed field map of a record.
	FieldFields = "fields"

	// FieldSaves targets the save entries of a commit batch.
	FieldSaves = "saves"

	// FieldDeletes targets the delete entries of a commit batch.
	FieldDeletes = "deletes"

	// FieldPageLimit targets the page size of a change-feed request.
	FieldPageLimit = "page_limit"

	// FieldLogin targets the login of a credentials pair.
	FieldLogin = "login"

	// FieldPassword targets the password of a credentials pair.
	FieldPassword = "password"
)

// maxZoneNameLength bounds zone names so they stay usable as composite key
// components and URL path segments.
const maxZoneNameLength = 250

// allowedFieldKinds is the exhaustive set of FieldKind values accepted by the
// validator. Any FieldKind not present in this slice is considered invalid.
var allowedFieldKinds = []models.FieldKind{
	models.KindString,
	models.KindInt64,
	models.KindDouble,
	models.KindBool,
	models.KindBytes,
	models.KindTime,
	models.KindReference,
}

// RecordValidator implements the Validator interface for the sync domain
// models: Record, CommitRequest, ChangesRequest, Zone, and User.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type RecordValidator struct {
}

// NewRecordValidator constructs a new RecordValidator
// and returns it as the Validator interface.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.Record / *models.Record
//   - models.CommitRequest / *models.CommitRequest
//   - models.ChangesRequest / *models.ChangesRequest
//   - models.Zone / *models.Zone
//   - models.User / *models.User
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Record:
		return v.validateRecord(ctx, value, fields...)
	case *models.Record:
		return v.validateRecord(ctx, *value, fields...)

	case models.CommitRequest:
		return v.validateCommitRequest(ctx, value, fields...)
	case *models.CommitRequest:
		return v.validateCommitRequest(ctx, *value, fields...)

	case models.ChangesRequest:
		return v.validateChangesRequest(ctx, value, fields...)
	case *models.ChangesRequest:
		return v.validateChangesRequest(ctx, *value, fields...)

	case models.Zone:
		return v.validateZone(ctx, value, fields...)
	case *models.Zone:
		return v.validateZone(ctx, *value, fields...)

	case models.User:
		return v.validateCredentials(ctx, value, fields...)
	case *models.User:
		return v.validateCredentials(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// isValidFieldKind reports whether k is one of the recognized FieldKind
// values defined in allowedFieldKinds.
func isValidFieldKind(k models.FieldKind) bool {
	for _, kind := range allowedFieldKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// validateRecord validates a single Record model.
//
// Default validated fields (when none specified): RecordID, Zone, Fields.
//
// Field map entries are checked structurally: every value must carry a
// recognized kind, and reference values must name a target record with a
// known deletion action.
func (v *RecordValidator) validateRecord(ctx context.Context, record models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordID, FieldZone, FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldRecordID:
			if record.RecordID == "" {
				return ErrInvalidRecordID
			}
		case FieldUserID:
			if record.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldZone:
			if err := validZoneName(record.Zone); err != nil {
				return err
			}
		case FieldType:
			if record.Type == "" {
				return ErrInvalidRecordType
			}
		case FieldFields:
			if len(record.Fields) == 0 {
				return ErrEmptyFields
			}
			for name, value := range record.Fields {
				if !isValidFieldKind(value.Kind) {
					return fmt.Errorf("%w: field %q", ErrInvalidFieldKind, name)
				}
				if value.Kind == models.KindReference {
					if value.Ref == nil || value.Ref.RecordID == "" {
						return fmt.Errorf("%w: field %q", ErrInvalidReference, name)
					}
					if value.Ref.Action != models.ReferenceActionNone && value.Ref.Action != models.ReferenceActionCascade {
						return fmt.Errorf("%w: field %q", ErrInvalidReference, name)
					}
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCommitRequest validates a CommitRequest, which carries a batch of
// record mutations.
//
// Default validated fields: Zone, Saves, Deletes.
//
// The batch must not be empty and every record identity may appear at most
// once across saves and deletes, otherwise non-atomic per-item resolution
// would be order-dependent. Each save payload is individually checked with
// validateRecord; its zone, when set, must match the batch zone.
//
// Returns a wrapped error indicating the index of the first invalid item.
func (v *RecordValidator) validateCommitRequest(ctx context.Context, request models.CommitRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldZone, FieldSaves, FieldDeletes}
	}

	if request.Items() == 0 {
		return ErrEmptyBatch
	}

	seen := make(map[string]bool, request.Items())

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldZone:
			if err := validZoneName(request.Zone); err != nil {
				return err
			}
		case FieldSaves:
			for i, save := range request.Saves {
				if save.Record.RecordID == "" {
					return fmt.Errorf("%w: save at index %d", ErrMissingSavePayload, i)
				}
				if save.Record.Zone != "" && save.Record.Zone != request.Zone {
					return fmt.Errorf("%w: save at index %d", ErrZoneMismatch, i)
				}
				if err := v.validateRecord(ctx, save.Record, FieldRecordID, FieldFields); err != nil {
					return fmt.Errorf("validation error at save index %d: %w", i, err)
				}
				if seen[save.Record.RecordID] {
					return fmt.Errorf("%w: %s", ErrDuplicateRecordID, save.Record.RecordID)
				}
				seen[save.Record.RecordID] = true
			}
		case FieldDeletes:
			for i, del := range request.Deletes {
				if del.RecordID == "" {
					return fmt.Errorf("%w: delete at index %d", ErrInvalidRecordID, i)
				}
				if seen[del.RecordID] {
					return fmt.Errorf("%w: %s", ErrDuplicateRecordID, del.RecordID)
				}
				seen[del.RecordID] = true
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateChangesRequest validates a ChangesRequest.
//
// Default validated fields: Zone, PageLimit.
func (v *RecordValidator) validateChangesRequest(ctx context.Context, request models.ChangesRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldZone, FieldPageLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldZone:
			if err := validZoneName(request.Zone); err != nil {
				return err
			}
		case FieldPageLimit:
			if request.Limit < 0 {
				return ErrNegativePageLimit
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateZone validates a Zone model. Default validated fields: Zone.
func (v *RecordValidator) validateZone(ctx context.Context, zone models.Zone, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldZone}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if zone.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldZone:
			if err := validZoneName(zone.Name); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCredentials validates a register/login credentials pair.
// Default validated fields: Login, Password.
func (v *RecordValidator) validateCredentials(ctx context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if user.Login == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validZoneName checks the shared zone-name rules applied everywhere a zone
// is named.
func validZoneName(name string) error {
	if name == "" {
		return ErrInvalidZoneName
	}
	if len(name) > maxZoneNameLength {
		return ErrZoneNameTooLong
	}
	return nil
}
