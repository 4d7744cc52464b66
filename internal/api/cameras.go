package api

import (
	"net/http"

	"github.com/radiusdc/portal-core/internal/camera"
)

// handleListCameras returns the cameras visible to the caller's tenant.
//
// Query parameters: assetId narrows visibility to one assigned asset,
// status filters by operational state.
func (s *Server) handleListCameras(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	q := r.URL.Query()

	assetIDs := user.AssignedAssets
	if assetID := q.Get("assetId"); assetID != "" {
		if !user.HasAssignedAsset(assetID) {
			writeForbidden(w, r, "asset is not assigned to you")
			return
		}
		assetIDs = []string{assetID}
	}

	cameras, err := s.stores.Cameras.ListForTenant(
		r.Context(),
		user.TenantID,
		assetIDs,
		camera.Status(q.Get("status")),
	)
	if err != nil {
		s.logger.Error("listing cameras", "error", err)
		writeInternalError(w, r)
		return
	}

	writeData(w, r, http.StatusOK, map[string]any{
		"cameras": cameras,
		"total":   len(cameras),
	})
}
