package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-pass-guard/models"
)

// CredentialValidator checks the required fields of entries and identity
// inputs. Whitespace-only values count as empty.
type CredentialValidator struct {
}

func NewCredentialValidator() Validator {
	return &CredentialValidator{}
}

func (v *CredentialValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.EntryInput:
		return v.validateEntryInput(value, fields...)
	case *models.EntryInput:
		return v.validateEntryInput(*value, fields...)

	case models.CredentialEntry:
		return v.validateEntry(value, fields...)
	case *models.CredentialEntry:
		return v.validateEntry(*value, fields...)

	case models.SignUpRequest:
		return v.validateSignUp(value, fields...)
	case *models.SignUpRequest:
		return v.validateSignUp(*value, fields...)

	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (v *CredentialValidator) validateEntryInput(in models.EntryInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldWebsite, FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldWebsite:
			if blank(in.Website) {
				return ErrEmptyWebsite
			}
		case FieldUsername:
			if blank(in.Username) {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if in.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialValidator) validateEntry(e models.CredentialEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwnerID, FieldWebsite, FieldUsername, FieldPassword}
	}

	input := models.EntryInput{Website: e.Website, Username: e.Username, Password: e.Password}
	for _, f := range fields {
		switch f {
		case FieldOwnerID:
			if blank(e.OwnerID) {
				return ErrEmptyOwnerID
			}
		case FieldEntryID:
			if blank(e.EntryID) {
				return ErrEmptyEntryID
			}
		default:
			if err := v.validateEntryInput(input, f); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *CredentialValidator) validateSignUp(req models.SignUpRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLoginKey}
	}

	for _, f := range fields {
		switch f {
		case FieldLoginKey:
			if blank(req.LoginKey) {
				return ErrEmptyLoginKey
			}
		case FieldSecret:
			if req.Secret == "" {
				return ErrEmptySecret
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialValidator) validateCredentials(c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLoginKey, FieldSecret}
	}

	for _, f := range fields {
		switch f {
		case FieldLoginKey:
			if blank(c.LoginKey) {
				return ErrEmptyLoginKey
			}
		case FieldSecret:
			if c.Secret == "" {
				return ErrEmptySecret
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
