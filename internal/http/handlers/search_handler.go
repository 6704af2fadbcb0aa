// README: Discovery search handler — the one externally facing route this
// service exposes. Grounded on ai_handler.go's Chat handler shape (trim
// input, call the one collaborator service, map its result to JSON),
// generalized from a POST JSON chat body to a GET query-string search
// request since discovery search is a read, not a write.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ark/internal/searchapi"
	"ark/internal/searchintent"
)

// SearchHandler exposes searchapi.Service.Search over HTTP.
type SearchHandler struct {
	svc *searchapi.Service
}

// NewSearchHandler returns a handler delegating to svc.
func NewSearchHandler(svc *searchapi.Service) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search handles GET /api/search?q=...&lat=...&lng=...&tz=...&offset=...&limit=...
func (h *SearchHandler) Search(c *gin.Context) {
	q := c.Query("q")

	userCtx := searchintent.UserContext{
		Timezone: firstNonEmpty(c.Query("tz"), "UTC"),
		Now:      time.Now(),
	}
	if lat, lng, ok := parseLatLng(c.Query("lat"), c.Query("lng")); ok {
		userCtx.HasLocation = true
		userCtx.Lat = lat
		userCtx.Lng = lng
	}

	req := searchapi.Request{
		RawQuery: q,
		UserCtx:  userCtx,
		Offset:   parseIntOrDefault(c.Query("offset"), 0),
		Limit:    parseIntOrDefault(c.Query("limit"), 0),
	}

	resp := h.svc.Search(c.Request.Context(), req)
	writeJSON(c, http.StatusOK, resp)
}

func parseLatLng(latStr, lngStr string) (lat, lng float64, ok bool) {
	if latStr == "" || lngStr == "" {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

func parseIntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
