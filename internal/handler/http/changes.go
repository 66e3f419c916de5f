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

// fetchChanges serves one page of a zone's change feed. A token pointing
// below the pruned horizon answers 410 Gone, which tells the client to drop
// its cursor and resynchronize from the beginning.
func (h *Handler) fetchChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.fetchChanges").Msg("no user ID in request context")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var req models.ChangesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.fetchChanges").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	req.UserID = userID

	page, err := h.services.ChangeService.FetchChanges(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.fetchChanges").Str("zone", req.Zone).Msg("change feed read failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}
