package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/radiusdc/portal-core/internal/power"
	"github.com/radiusdc/portal-core/internal/tenant"
)

// handleListPower returns power readings for one of the caller's racks.
//
// Query parameters: assetId (required, must be assigned to the caller),
// granularity (hourly or weekly), since (RFC 3339).
func (s *Server) handleListPower(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	q := r.URL.Query()

	assetID := q.Get("assetId")
	if assetID == "" {
		writeBadRequest(w, r, "assetId query parameter is required")
		return
	}
	if !user.HasAssignedAsset(assetID) {
		writeForbidden(w, r, "asset is not assigned to you")
		return
	}

	asset, err := s.stores.Tenants.GetAsset(r.Context(), assetID)
	if err != nil {
		if errors.Is(err, tenant.ErrAssetNotFound) {
			writeNotFound(w, r, "asset not found")
			return
		}
		s.logger.Error("loading asset", "error", err)
		writeInternalError(w, r)
		return
	}
	if asset.TenantID != user.TenantID {
		writeForbidden(w, r, "asset is not assigned to you")
		return
	}

	granularity := power.Granularity(q.Get("granularity"))
	if granularity != "" && granularity != power.GranularityHourly && granularity != power.GranularityWeekly {
		writeValidationError(w, r, map[string]string{"granularity": "must be hourly or weekly"})
		return
	}

	params := power.QueryParams{
		AssetID:     assetID,
		Granularity: granularity,
	}
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeValidationError(w, r, map[string]string{"since": "must be RFC 3339"})
			return
		}
		params.Start = t
	}

	readings, err := s.stores.Power.Query(r.Context(), params)
	if err != nil {
		s.logger.Error("querying power readings", "error", err)
		writeInternalError(w, r)
		return
	}

	writeData(w, r, http.StatusOK, map[string]any{
		"readings": readings,
		"total":    len(readings),
	})
}
