package http

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/zonesync/internal/app"
	"github.com/MKhiriev/zonesync/internal/utils"
	"github.com/MKhiriev/zonesync/models"
)

// commitHashing verifies the transport integrity hash of a commit batch.
// The hash is an HMAC-SHA256 over the serialized batch items, keyed with the
// shared hash key. Clients without a configured key send an empty hash and
// skip the check entirely.
func (h *Handler) commitHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Saves   []models.RecordSave   `json:"saves"`
			Deletes []models.RecordDelete `json:"deletes"`
			Hash    string                `json:"hash"`
		}

		// read bytes from body
		body, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Err(err).Str("func", "*Handler.commitHashing").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		// Decode JSON from []byte
		if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
			h.logger.Err(err).Str("func", "*Handler.commitHashing").Msg("failed to decode JSON")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}

		if req.Hash == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Serialize the batch items back to JSON for hashing
		payloadBytes, err := json.Marshal(struct {
			Saves   []models.RecordSave   `json:"saves"`
			Deletes []models.RecordDelete `json:"deletes"`
		}{req.Saves, req.Deletes})
		if err != nil {
			h.logger.Err(err).Str("func", "*Handler.commitHashing").Msg("failed to marshal batch items")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		hashedBody := hex.EncodeToString(utils.Hash(payloadBytes))
		if hashedBody != req.Hash {
			h.logger.Error().Str("func", "*Handler.commitHashing").
				Str("hash from request", req.Hash).
				Str("hashed body", hashedBody).
				Msg("hashes are not equal")
			http.Error(w, app.MsgHashMismatch, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
