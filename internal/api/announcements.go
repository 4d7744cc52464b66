package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/radiusdc/portal-core/internal/announcement"
)

// handleListAnnouncements returns announcements visible to the caller's
// tenant, critical first.
//
// Query parameters: severity, activeOnly (default true), limit.
func (s *Server) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	q := r.URL.Query()

	severity := announcement.Severity(q.Get("severity"))
	if severity != "" && !announcement.IsValidSeverity(severity) {
		writeValidationError(w, r, map[string]string{"severity": "must be critical, warning, or info"})
		return
	}

	activeOnly := q.Get("activeOnly") != "false"

	items, err := s.stores.Announcements.List(r.Context(), announcement.ListParams{
		TenantID:   user.TenantID,
		Severity:   severity,
		ActiveOnly: activeOnly,
		Limit:      intParam(q.Get("limit"), 0),
	})
	if err != nil {
		s.logger.Error("listing announcements", "error", err)
		writeInternalError(w, r)
		return
	}

	writeData(w, r, http.StatusOK, map[string]any{
		"announcements": items,
		"total":         len(items),
	})
}

// createAnnouncementRequest is the request body for POST /announcements.
type createAnnouncementRequest struct {
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Severity      string     `json:"severity"`
	Visibility    string     `json:"visibility"`
	TargetTenants []string   `json:"targetTenants"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	Pinned        bool       `json:"pinned"`
}

// handleCreateAnnouncement creates a facility notice and pushes it to
// WebSocket subscribers.
func (s *Server) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req createAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid JSON body")
		return
	}

	details := map[string]string{}
	if req.Title == "" {
		details["title"] = "must not be empty"
	}
	if req.Message == "" {
		details["message"] = "must not be empty"
	}
	if !announcement.IsValidSeverity(announcement.Severity(req.Severity)) {
		details["severity"] = "must be critical, warning, or info"
	}
	visibility := announcement.Visibility(req.Visibility)
	if visibility == "" {
		visibility = announcement.VisibilityPublic
	}
	if !announcement.IsValidVisibility(visibility) {
		details["visibility"] = "must be public or tenant-specific"
	}
	if visibility == announcement.VisibilityTenant && len(req.TargetTenants) == 0 {
		details["targetTenants"] = "required for tenant-specific announcements"
	}
	if len(details) > 0 {
		writeValidationError(w, r, details)
		return
	}

	item := &announcement.Announcement{
		Title:         req.Title,
		Message:       req.Message,
		Severity:      announcement.Severity(req.Severity),
		Visibility:    visibility,
		TargetTenants: req.TargetTenants,
		CreatedBy:     currentUser(r).ID,
		CreatedAt:     time.Now().UTC(),
		ExpiresAt:     req.ExpiresAt,
		Pinned:        req.Pinned,
	}
	if err := s.stores.Announcements.Create(r.Context(), item); err != nil {
		s.logger.Error("creating announcement", "error", err)
		writeInternalError(w, r)
		return
	}

	if s.hub != nil {
		s.hub.Broadcast(ChannelAnnouncementCreated, item)
	}

	writeData(w, r, http.StatusCreated, map[string]any{"announcement": item})
}
