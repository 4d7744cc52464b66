package api

import (
	"net/http"

	"github.com/radiusdc/portal-core/internal/environmental"
)

// handleListEnvironmental returns environmental readings for a location.
//
// Environmental data is facility-shared, so there is no tenant check.
// Query parameters: location (required), zone, type, hours (≤168, clamped).
func (s *Server) handleListEnvironmental(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	locationID := q.Get("location")
	if locationID == "" {
		writeBadRequest(w, r, "location query parameter is required")
		return
	}

	readingType := environmental.ReadingType(q.Get("type"))
	if readingType != "" && !environmental.IsValidType(readingType) {
		writeValidationError(w, r, map[string]string{"type": "must be temperature or humidity"})
		return
	}

	params := environmental.QueryParams{
		LocationID: locationID,
		ZoneID:     q.Get("zone"),
		Type:       readingType,
		Hours:      intParam(q.Get("hours"), environmental.DefaultQueryHours),
	}

	readings, err := s.stores.Environmental.Query(r.Context(), params)
	if err != nil {
		s.logger.Error("querying environmental readings", "error", err)
		writeInternalError(w, r)
		return
	}

	writeData(w, r, http.StatusOK, map[string]any{
		"readings": readings,
		"total":    len(readings),
	})
}
