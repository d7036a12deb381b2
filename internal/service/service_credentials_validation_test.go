package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-pass-guard/internal/validators"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockInnerService records whether the wrapped service was reached.
type mockInnerService struct {
	CredentialService
	called bool
}

func (m *mockInnerService) Add(ctx context.Context, ownerID string, in models.EntryInput) (models.CredentialEntry, error) {
	m.called = true
	return models.CredentialEntry{OwnerID: ownerID}, nil
}

func (m *mockInnerService) Update(ctx context.Context, ownerID, entryID string, in models.EntryInput) (models.CredentialEntry, error) {
	m.called = true
	return models.CredentialEntry{OwnerID: ownerID, EntryID: entryID}, nil
}

func (m *mockInnerService) Get(ctx context.Context, ownerID, entryID string) (models.CredentialEntry, error) {
	m.called = true
	return models.CredentialEntry{}, nil
}

func (m *mockInnerService) Delete(ctx context.Context, ownerID, entryID string) error {
	m.called = true
	return nil
}

func TestCredentialValidationService(t *testing.T) {
	valid := models.EntryInput{Website: "a.com", Username: "u", Password: "p"}

	tests := []struct {
		name      string
		call      func(s CredentialService) error
		wantErr   error
		wantCause error
	}{
		{
			name: "add valid",
			call: func(s CredentialService) error {
				_, err := s.Add(context.Background(), "o1", valid)
				return err
			},
		},
		{
			name: "add empty website",
			call: func(s CredentialService) error {
				_, err := s.Add(context.Background(), "o1", models.EntryInput{Username: "u", Password: "p"})
				return err
			},
			wantErr:   ErrValidation,
			wantCause: validators.ErrEmptyWebsite,
		},
		{
			name: "add empty password",
			call: func(s CredentialService) error {
				_, err := s.Add(context.Background(), "o1", models.EntryInput{Website: "a.com", Username: "u"})
				return err
			},
			wantErr:   ErrValidation,
			wantCause: validators.ErrEmptyPassword,
		},
		{
			name: "add without owner",
			call: func(s CredentialService) error {
				_, err := s.Add(context.Background(), "", valid)
				return err
			},
			wantErr:   ErrValidation,
			wantCause: validators.ErrEmptyOwnerID,
		},
		{
			name: "update blank username",
			call: func(s CredentialService) error {
				_, err := s.Update(context.Background(), "o1", "e1", models.EntryInput{Website: "a.com", Username: "  ", Password: "p"})
				return err
			},
			wantErr:   ErrValidation,
			wantCause: validators.ErrEmptyUsername,
		},
		{
			name: "get without entry id",
			call: func(s CredentialService) error {
				_, err := s.Get(context.Background(), "o1", "")
				return err
			},
			wantErr:   ErrValidation,
			wantCause: validators.ErrEmptyEntryID,
		},
		{
			name: "delete valid",
			call: func(s CredentialService) error {
				return s.Delete(context.Background(), "o1", "e1")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &mockInnerService{}
			svc := NewCredentialValidationService().Wrap(inner)

			err := tt.call(svc)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, inner.called)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, tt.wantCause)
			assert.False(t, inner.called, "inner service must not be reached")
		})
	}
}
