package api

import (
	"net/http"
	"time"

	"github.com/radiusdc/portal-core/internal/accesslog"
	"github.com/radiusdc/portal-core/internal/announcement"
	"github.com/radiusdc/portal-core/internal/environmental"
)

// dashboardWindow is the trailing window for access totals.
const dashboardWindow = 24 * time.Hour

// recentAccessLimit is how many recent events the summary carries.
const recentAccessLimit = 10

// handleDashboardSummary aggregates the landing-page rollup for the
// caller's tenant: 24h access activity, camera availability, active
// announcements by severity, and the facility environmental status.
func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	ctx := r.Context()
	now := time.Now().UTC()

	// Access activity is scoped to the caller's assigned assets, matching
	// the list endpoint.
	accessTotal, err := s.stores.AccessLogs.CountSince(ctx, user.TenantID, user.AssignedAssets, now.Add(-dashboardWindow))
	if err != nil {
		s.logger.Error("counting access logs", "error", err)
		writeInternalError(w, r)
		return
	}
	recent, err := s.stores.AccessLogs.Query(ctx, accesslog.QueryParams{
		TenantID: user.TenantID,
		AssetIDs: user.AssignedAssets,
		Limit:    recentAccessLimit,
	})
	if err != nil {
		s.logger.Error("querying recent access logs", "error", err)
		writeInternalError(w, r)
		return
	}

	cameras, err := s.stores.Cameras.ListForTenant(ctx, user.TenantID, user.AssignedAssets, "")
	if err != nil {
		s.logger.Error("listing cameras", "error", err)
		writeInternalError(w, r)
		return
	}
	cameraStatus := map[string]int{}
	for _, c := range cameras {
		cameraStatus[string(c.Status)]++
	}

	announcements, err := s.stores.Announcements.List(ctx, announcement.ListParams{
		TenantID:   user.TenantID,
		ActiveOnly: true,
	})
	if err != nil {
		s.logger.Error("listing announcements", "error", err)
		writeInternalError(w, r)
		return
	}
	announcementCounts := map[string]int{}
	for _, a := range announcements {
		announcementCounts[string(a.Severity)]++
	}

	envStatus := map[string]int{}
	for _, status := range []environmental.Status{
		environmental.StatusNormal,
		environmental.StatusWarning,
		environmental.StatusCritical,
	} {
		n, err := s.stores.Environmental.CountByStatus(ctx, s.defaultLocation, status, now.Add(-dashboardWindow))
		if err != nil {
			s.logger.Error("counting environmental readings", "error", err)
			writeInternalError(w, r)
			return
		}
		envStatus[string(status)] = n
	}

	writeData(w, r, http.StatusOK, map[string]any{
		"accessActivity": map[string]any{
			"last24h": accessTotal,
			"recent":  recent.Logs,
		},
		"cameras": map[string]any{
			"total":    len(cameras),
			"byStatus": cameraStatus,
		},
		"announcements": map[string]any{
			"active":     len(announcements),
			"bySeverity": announcementCounts,
		},
		"environmental": map[string]any{
			"location": s.defaultLocation,
			"byStatus": envStatus,
		},
	})
}
