package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const unmatchedRoute = "unmatched"

// ChiRoutePattern labels a request by its chi route pattern. Requests that hit
// no route share one label so arbitrary paths cannot grow metric cardinality.
func ChiRoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if rp := rctx.RoutePattern(); rp != "" && rp != "/*" {
		return rp
	}
	return unmatchedRoute
}
