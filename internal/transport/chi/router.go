package chi

import (
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tagrec/internal/metrics"
	gen "github.com/kailas-cloud/tagrec/internal/transport/generated"
)

// NewRouter mounts the API on a chi router with the standard middleware stack:
// recovery, request id, request log, auth, metrics.
func NewRouter(s *Server, apiKeys []string, logger *zap.Logger) http.Handler {
	r := gochi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(RequestID)
	r.Use(WideEventMiddleware(logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, gen.ErrorResponseCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, gen.ErrorResponseCodeBadRequest, "method not allowed")
	})
	return gen.HandlerWithOptions(s, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: ParamErrorHandler,
	})
}
