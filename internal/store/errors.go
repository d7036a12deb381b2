package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginKeyTaken is returned when an owner with the same login key
	// already exists. Nothing is written in that case.
	ErrLoginKeyTaken = errors.New("login key already exists")

	// ErrOwnerNotFound is returned when no owner matches the lookup.
	ErrOwnerNotFound = errors.New("owner was not found")

	// ErrEntryNotFound is returned when no entry with the given id exists
	// under the given owner.
	ErrEntryNotFound = errors.New("entry was not found")

	// ErrLocalSessionNotFound is returned by [SessionStore.Load] when the
	// client has never saved a session.
	ErrLocalSessionNotFound = errors.New("local session not found")

	// ErrUnsupportedDriver is returned by [NewStorages] for an unknown
	// storage driver.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)

// Low-level operation errors. These are wrapped by repository methods when a
// backend call fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrRunningTransaction is returned when a Datastore transaction fails
	// for a reason other than a domain conflict.
	ErrRunningTransaction = errors.New("failed to run transaction")
)
