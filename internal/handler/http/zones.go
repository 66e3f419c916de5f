// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/zonesync/internal/app"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/utils"
	"github.com/MKhiriev/zonesync/models"
)

// createZone registers a new named partition for the authenticated user.
func (h *Handler) createZone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createZone").Msg("no user ID in request context")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var zone models.Zone
	if err := json.NewDecoder(r.Body).Decode(&zone); err != nil {
		log.Err(err).Str("func", "*Handler.createZone").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	zone.UserID = userID

	created, err := h.services.ZoneService.CreateZone(ctx, zone)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createZone").Str("zone", zone.Name).Msg("zone creation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// listZones returns every zone owned by the authenticated user.
func (h *Handler) listZones(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listZones").Msg("no user ID in request context")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	zones, err := h.services.ZoneService.ListZones(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listZones").Msg("zone listing failed")
		writeError(w, err)
		return
	}

	response := models.ZonesResponse{
		Zones:  zones,
		Length: len(zones),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// deleteZone removes a zone together with every record inside it. The
// deletion lands in the change feed as a zone tombstone, so other clients
// purge their local copies on the next fetch.
func (h *Handler) deleteZone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deleteZone").Msg("no user ID in request context")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	name := chi.URLParam(r, "zone")

	if err := h.services.ZoneService.DeleteZone(ctx, userID, name); err != nil {
		log.Err(err).Str("func", "*Handler.deleteZone").Str("zone", name).Msg("zone deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
