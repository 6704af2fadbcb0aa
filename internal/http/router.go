// README: HTTP router registration (Gin). Grounded on the teacher's own
// router.go shape (gin.Default() + one handler struct per concern), with
// the auth middleware dropped: discovery search is a public read-only
// endpoint with no passenger/driver identity to authenticate (see
// DESIGN.md for the full justification).
package http

import (
	"github.com/gin-gonic/gin"

	"ark/internal/http/handlers"
	"ark/internal/http/middleware"
	"ark/internal/observability"
	"ark/internal/searchapi"
)

// NewRouter wires the discovery search route alongside the operator
// health/metrics/diagnostics endpoints.
func NewRouter(svc *searchapi.Service, obs *observability.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logging())

	searchHandler := handlers.NewSearchHandler(svc)
	r.GET("/api/search", searchHandler.Search)

	r.GET("/health", obs.Health)
	r.GET("/diagnostics", obs.Diagnostics)
	r.GET("/metrics", observability.Metrics())

	return r
}
