package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-guard/models"
)

// MemoryStore keeps owners and entries in process memory. It backs the
// "memory" driver and the service tests.
type MemoryStore struct {
	mu      sync.RWMutex
	owners  map[string]models.Owner // by owner id
	byLogin map[string]string       // login key -> owner id
	entries map[string]map[string]models.CredentialEntry
	ids     IDGenerator
	now     func() time.Time
}

func NewMemoryStore(ids IDGenerator) *MemoryStore {
	return &MemoryStore{
		owners:  make(map[string]models.Owner),
		byLogin: make(map[string]string),
		entries: make(map[string]map[string]models.CredentialEntry),
		ids:     ids,
		now:     utcNow,
	}
}

func (m *MemoryStore) CreateOwner(_ context.Context, owner models.Owner) (models.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byLogin[owner.LoginKey]; taken {
		return models.Owner{}, ErrLoginKeyTaken
	}

	owner.OwnerID = m.ids.Generate()
	owner.CreatedAt = m.now()
	m.owners[owner.OwnerID] = owner
	m.byLogin[owner.LoginKey] = owner.OwnerID

	return owner, nil
}

func (m *MemoryStore) FindOwnerByLoginKey(_ context.Context, loginKey string) (models.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byLogin[loginKey]
	if !ok {
		return models.Owner{}, ErrOwnerNotFound
	}
	return m.owners[id], nil
}

func (m *MemoryStore) FindOwnerByPrincipalID(_ context.Context, principalID string) (models.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, owner := range m.owners {
		if owner.PrincipalID != "" && owner.PrincipalID == principalID {
			return owner, nil
		}
	}
	return models.Owner{}, ErrOwnerNotFound
}

func (m *MemoryStore) GetOwner(_ context.Context, ownerID string) (models.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owner, ok := m.owners[ownerID]
	if !ok {
		return models.Owner{}, ErrOwnerNotFound
	}
	return owner, nil
}

func (m *MemoryStore) CreateEntry(_ context.Context, entry models.CredentialEntry) (models.CredentialEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry.EntryID = m.ids.Generate()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	scope, ok := m.entries[entry.OwnerID]
	if !ok {
		scope = make(map[string]models.CredentialEntry)
		m.entries[entry.OwnerID] = scope
	}
	scope[entry.EntryID] = entry

	return entry, nil
}

func (m *MemoryStore) ListEntries(_ context.Context, ownerID string) ([]models.CredentialEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]models.CredentialEntry, 0, len(m.entries[ownerID]))
	for _, e := range m.entries[ownerID] {
		entries = append(entries, e)
	}
	sortEntries(entries)

	return entries, nil
}

func (m *MemoryStore) GetEntry(_ context.Context, ownerID, entryID string) (models.CredentialEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[ownerID][entryID]
	if !ok {
		return models.CredentialEntry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (m *MemoryStore) UpdateEntry(_ context.Context, entry models.CredentialEntry) (models.CredentialEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.entries[entry.OwnerID][entry.EntryID]
	if !ok {
		return models.CredentialEntry{}, ErrEntryNotFound
	}

	stored.Website = entry.Website
	stored.Username = entry.Username
	stored.Password = entry.Password
	stored.UpdatedAt = m.now()
	m.entries[entry.OwnerID][entry.EntryID] = stored

	return stored, nil
}

func (m *MemoryStore) DeleteEntry(_ context.Context, ownerID, entryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[ownerID][entryID]; !ok {
		return ErrEntryNotFound
	}
	delete(m.entries[ownerID], entryID)

	return nil
}

// sortEntries orders entries by creation time, oldest first, with the entry
// id breaking ties.
func sortEntries(entries []models.CredentialEntry) {
	slices.SortFunc(entries, func(a, b models.CredentialEntry) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.EntryID, b.EntryID)
	})
}
