package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntryRepo(t *testing.T) (*entryRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	repo := &entryRepository{
		db:     db,
		logger: logger.Nop(),
		ids:    fixedIDs{id: "entry-1"},
		now:    func() time.Time { return testNow },
	}
	return repo, mock
}

func entryRows() *sqlmock.Rows {
	return sqlmock.NewRows(entryColumns)
}

// ----------------------------------------------------------------------------
// CreateEntry
// ----------------------------------------------------------------------------

func TestCreateEntry_Success(t *testing.T) {
	repo, mock := newTestEntryRepo(t)

	mock.ExpectExec("INSERT INTO entries").
		WithArgs("entry-1", "owner-1", "example.com", "ann", "pw", testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry, err := repo.CreateEntry(context.Background(), models.CredentialEntry{
		OwnerID:  "owner-1",
		Website:  "example.com",
		Username: "ann",
		Password: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "entry-1", entry.EntryID)
	assert.Equal(t, testNow, entry.CreatedAt)
	assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntry_ExecError(t *testing.T) {
	repo, mock := newTestEntryRepo(t)

	mock.ExpectExec("INSERT INTO entries").WillReturnError(errors.New("disk full"))

	_, err := repo.CreateEntry(context.Background(), models.CredentialEntry{OwnerID: "owner-1"})
	require.ErrorIs(t, err, ErrExecutingStatement)
}

// ----------------------------------------------------------------------------
// ListEntries
// ----------------------------------------------------------------------------

func TestListEntries(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    int
		wantErr error
	}{
		{
			name: "two entries",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM entries WHERE owner_id = \\$1 ORDER BY created_at ASC").
					WithArgs("owner-1").
					WillReturnRows(entryRows().
						AddRow("e1", "owner-1", "a.com", "ann", "1", testNow, testNow).
						AddRow("e2", "owner-1", "b.com", "bob", "2", testNow, testNow))
			},
			want: 2,
		},
		{
			name: "no entries yields empty slice",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM entries").WithArgs("owner-1").WillReturnRows(entryRows())
			},
			want: 0,
		},
		{
			name: "query error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM entries").WillReturnError(errors.New("boom"))
			},
			wantErr: ErrExecutingQuery,
		},
		{
			name: "row error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM entries").WithArgs("owner-1").WillReturnRows(entryRows().
					AddRow("e1", "owner-1", "a.com", "ann", "1", testNow, testNow).
					RowError(0, errors.New("broken row")))
			},
			wantErr: ErrScanningRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestEntryRepo(t)
			tt.setup(mock)

			entries, err := repo.ListEntries(context.Background(), "owner-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, entries)
			assert.Len(t, entries, tt.want)
		})
	}
}

// ----------------------------------------------------------------------------
// GetEntry
// ----------------------------------------------------------------------------

func TestGetEntry_ScopedToOwner(t *testing.T) {
	repo, mock := newTestEntryRepo(t)

	mock.ExpectQuery("FROM entries WHERE .*entry_id = \\$1 AND owner_id = \\$2").
		WithArgs("e1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetEntry(context.Background(), "intruder", "e1")
	require.ErrorIs(t, err, ErrEntryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ----------------------------------------------------------------------------
// UpdateEntry
// ----------------------------------------------------------------------------

func TestUpdateEntry_Success(t *testing.T) {
	repo, mock := newTestEntryRepo(t)
	created := testNow.Add(-time.Hour)

	mock.ExpectExec("UPDATE entries SET website = \\$1, username = \\$2, password = \\$3, updated_at = \\$4").
		WithArgs("new.com", "ann", "pw2", testNow, "e1", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM entries").
		WithArgs("e1", "owner-1").
		WillReturnRows(entryRows().AddRow("e1", "owner-1", "new.com", "ann", "pw2", created, testNow))

	entry, err := repo.UpdateEntry(context.Background(), models.CredentialEntry{
		EntryID:  "e1",
		OwnerID:  "owner-1",
		Website:  "new.com",
		Username: "ann",
		Password: "pw2",
	})
	require.NoError(t, err)
	assert.Equal(t, created, entry.CreatedAt)
	assert.Equal(t, testNow, entry.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEntry_NotFound(t *testing.T) {
	repo, mock := newTestEntryRepo(t)

	mock.ExpectExec("UPDATE entries").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateEntry(context.Background(), models.CredentialEntry{EntryID: "e1", OwnerID: "owner-2"})
	require.ErrorIs(t, err, ErrEntryNotFound)
}

// ----------------------------------------------------------------------------
// DeleteEntry
// ----------------------------------------------------------------------------

func TestDeleteEntry(t *testing.T) {
	tests := []struct {
		name    string
		result  sql.Result
		execErr error
		wantErr error
	}{
		{name: "deleted", result: sqlmock.NewResult(0, 1)},
		{name: "missing", result: sqlmock.NewResult(0, 0), wantErr: ErrEntryNotFound},
		{name: "exec failure", execErr: errors.New("boom"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestEntryRepo(t)

			exp := mock.ExpectExec("DELETE FROM entries WHERE .*entry_id = \\$1 AND owner_id = \\$2").
				WithArgs("e1", "owner-1")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.DeleteEntry(context.Background(), "owner-1", "e1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
