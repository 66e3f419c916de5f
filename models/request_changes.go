package models

// ChangesRequest asks the server for every change in a zone after the given
// token. The client sends the token exactly as it last received it.
type ChangesRequest struct {
	// UserID is populated server-side from the authenticated identity.
	UserID int64 `json:"user_id,omitempty"`

	// Zone is the partition whose feed is being read.
	Zone string `json:"zone"`

	// Token is the cursor from the previous fetch, or empty for the first
	// fetch of a zone.
	Token ChangeToken `json:"token"`

	// Limit caps the number of changes per page. Zero lets the server
	// pick its default page size.
	Limit int `json:"limit,omitempty"`
}
