package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/radiusdc/portal-core/internal/accesslog"
)

// handleListAccessLogs returns the access history for the caller's
// assigned assets.
//
// Query parameters: limit (≤500, clamped), offset, assetId, action,
// startDate, endDate (RFC 3339).
func (s *Server) handleListAccessLogs(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	q := r.URL.Query()

	params := accesslog.QueryParams{
		TenantID: user.TenantID,
		// Visible logs are the intersection of the tenant's records and
		// the caller's assigned assets, never the whole tenant.
		AssetIDs: user.AssignedAssets,
		Action:   accesslog.Action(q.Get("action")),
		Limit:    intParam(q.Get("limit"), accesslog.DefaultListLimit),
		Offset:   intParam(q.Get("offset"), 0),
	}

	if assetID := q.Get("assetId"); assetID != "" {
		if !user.HasAssignedAsset(assetID) {
			writeForbidden(w, r, "asset is not assigned to you")
			return
		}
		params.AssetIDs = []string{assetID}
	}

	if v := q.Get("startDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeValidationError(w, r, map[string]string{"startDate": "must be RFC 3339"})
			return
		}
		params.Start = t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeValidationError(w, r, map[string]string{"endDate": "must be RFC 3339"})
			return
		}
		params.End = t
	}

	page, err := s.stores.AccessLogs.Query(r.Context(), params)
	if err != nil {
		s.logger.Error("querying access logs", "error", err)
		writeInternalError(w, r)
		return
	}

	limit := clampLimit(params.Limit, accesslog.DefaultListLimit, accesslog.MaxListLimit)
	writePage(w, r, page.Logs, Pagination{
		Total:   page.Total,
		Limit:   limit,
		Offset:  params.Offset,
		HasMore: params.Offset+len(page.Logs) < page.Total,
	})
}

// intParam parses a non-negative integer query value, falling back to def
// when absent or malformed.
func intParam(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// clampLimit mirrors the repository's limit clamping so the pagination
// block reports the effective window.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
