// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/zonesync/internal/app"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/utils"
	"github.com/MKhiriev/zonesync/models"
)

// commit applies one batch of record mutations for the authenticated user.
// The per-item verdicts come back in request order (saves first, then
// deletes); only whole-batch failures surface as an HTTP error status.
func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.commit").Msg("no user ID in request context")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var req models.CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.commit").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	// The authenticated identity always wins over the body value.
	req.UserID = userID

	response, err := h.services.RecordService.Commit(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.commit").Str("zone", req.Zone).Msg("commit batch failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
