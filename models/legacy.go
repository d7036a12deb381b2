package models

// LegacyEntry is the wire shape of the unauthenticated flat credential API.
// Field names follow the historical protocol.
type LegacyEntry struct {
	ID       string `json:"_id,omitempty"`
	Website  string `json:"website"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LegacyDeleteRequest is the body of DELETE /delete. Index is accepted as an
// alias of ID for older clients.
type LegacyDeleteRequest struct {
	ID    string `json:"id"`
	Index string `json:"index"`
}

// EntryID returns whichever identifier the client supplied.
func (r LegacyDeleteRequest) EntryID() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Index
}

// MessageResponse is the {message, data} envelope used by the legacy API.
type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewLegacyEntry converts a stored entry into its wire shape.
func NewLegacyEntry(e CredentialEntry) LegacyEntry {
	return LegacyEntry{
		ID:       e.EntryID,
		Website:  e.Website,
		Username: e.Username,
		Password: e.Password,
	}
}

// Input returns the mutable fields carried by the legacy entry.
func (l LegacyEntry) Input() EntryInput {
	return EntryInput{Website: l.Website, Username: l.Username, Password: l.Password}
}
