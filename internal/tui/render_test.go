package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/session"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderSession(t *testing.T) {
	tests := []struct {
		name    string
		session session.Session
		want    []string
	}{
		{
			name:    "signed out",
			session: session.Session{Phase: session.Unauthenticated},
			want:    []string{"unauthenticated", "run login"},
		},
		{
			name: "linked",
			session: session.Session{
				Phase:     session.Linked,
				Principal: &models.Principal{UID: "g-1", Email: "alice@example.com", Provider: models.ProviderGoogle},
				Owner:     &models.Owner{OwnerID: "owner-1"},
			},
			want: []string{"linked", "alice@example.com (google)", "owner-1"},
		},
		{
			name: "unlinked without email",
			session: session.Session{
				Phase:     session.Unlinked,
				Principal: &models.Principal{UID: "gh-2", Provider: models.ProviderGitHub},
			},
			want: []string{"unlinked", "gh-2 (github)", "run signup"},
		},
		{
			name:    "pending redirect",
			session: session.Session{Phase: session.AuthPending, PendingRedirect: true},
			want:    []string{"auth-pending", "browser"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderSession(tt.session)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRenderEntries(t *testing.T) {
	assert.Contains(t, RenderEntries(nil), "no entries")

	out := RenderEntries([]models.CredentialEntry{
		{EntryID: "e-1", Website: "example.com", Username: "alice", Password: "secret", UpdatedAt: time.Now()},
		{EntryID: "e-2", Website: "a-very-long-website-name-that-goes-on-and-on.example.org", Username: "bob", Password: "pw"},
	})

	assert.Contains(t, out, "WEBSITE")
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "******")
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "...")
}

func TestRenderEntry(t *testing.T) {
	e := models.CredentialEntry{EntryID: "e-1", Website: "example.com", Username: "alice", Password: "secret"}

	assert.NotContains(t, RenderEntry(e, false), "secret")
	assert.Contains(t, RenderEntry(e, true), "secret")
}

func TestRenderError(t *testing.T) {
	assert.Contains(t, RenderError(errors.New("dial tcp 127.0.0.1:8080: connection refused")), "server unreachable")
	assert.Contains(t, RenderError(errors.New("entry not found")), "entry not found")
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "abc", fitText("abc", 5))
	assert.Equal(t, "ab...", fitText("abcdefgh", 5))
	assert.Equal(t, "ab", fitText("abcdefgh", 2))
}
