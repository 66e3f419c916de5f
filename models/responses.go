package models

// ItemStatus is the per-item disposition of a commit batch entry.
type ItemStatus string

const (
	// ItemOK: the mutation was applied; ChangeTag carries the new tag.
	ItemOK ItemStatus = "ok"

	// ItemConflict: the supplied base tag does not match the server's
	// current tag. ServerRecord carries the current server copy so the
	// client can resolve without another round trip.
	ItemConflict ItemStatus = "conflict"

	// ItemUnknown: the target record does not exist server-side. For
	// deletes this means the intent is already satisfied and the client
	// treats it as success.
	ItemUnknown ItemStatus = "unknown"

	// ItemAlreadyApplied: the save carried content identical to what the
	// server already stores; nothing was written. ChangeTag carries the
	// current tag.
	ItemAlreadyApplied ItemStatus = "already_applied"

	// ItemRejected: the item was not applied because the atomic batch it
	// belongs to was aborted by another item's failure.
	ItemRejected ItemStatus = "rejected"

	// ItemQuotaExceeded: applying the item would exceed the owner's
	// storage quota.
	ItemQuotaExceeded ItemStatus = "quota_exceeded"

	// ItemInvalid: the item failed validation; Message explains why.
	ItemInvalid ItemStatus = "invalid"
)

// ItemResult is the server's verdict on one commit batch entry. Items in a
// non-atomic batch succeed and fail independently of each other.
type ItemResult struct {
	RecordID string     `json:"record_id"`
	Status   ItemStatus `json:"status"`

	// ChangeTag is the record's tag after a successful apply, or its
	// current tag for already-applied saves.
	ChangeTag string `json:"change_tag,omitempty"`

	// ServerRecord is the server's current copy, populated on conflict.
	ServerRecord *Record `json:"server_record,omitempty"`

	// Message carries validation detail for invalid items.
	Message string `json:"message,omitempty"`
}

// Applied reports whether the item needs no further client action.
func (r ItemResult) Applied() bool {
	return r.Status == ItemOK || r.Status == ItemAlreadyApplied
}

// CommitResponse carries one ItemResult per batch entry, in request order
// (saves first, then deletes).
type CommitResponse struct {
	Results []ItemResult `json:"results"`
	Length  int          `json:"length"`
}

// ChangesResponse is one page of a zone's change feed.
type ChangesResponse struct {
	// Changes lists modifications and deletions after the request token,
	// in feed order.
	Changes []RecordChange `json:"changes"`

	// Token is the cursor to persist after this page has been durably
	// applied. It supersedes the request token.
	Token ChangeToken `json:"token"`

	// More indicates another page is available immediately.
	More bool `json:"more"`

	// ZoneDeleted reports that the zone itself is gone; the client must
	// purge its local copy. Changes is empty in that case.
	ZoneDeleted bool `json:"zone_deleted,omitempty"`

	// Length is the number of entries in Changes.
	Length int `json:"length"`
}

// ZonesResponse lists the zones owned by the authenticated user.
type ZonesResponse struct {
	Zones  []Zone `json:"zones"`
	Length int    `json:"length"`
}
