package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apilytics "github.com/apilytics/apilytics-go"
)

// Chi wraps handlers mounted on a chi router. It behaves like Middleware
// but reports the matched route pattern ("/users/{id}") instead of the
// raw request path, keeping per-path cardinality at the collector low.
//
//	r := chi.NewRouter()
//	r.Use(middleware.Chi(os.Getenv("APILYTICS_API_KEY")))
func Chi(apiKey string, opts ...apilytics.Option) func(http.Handler) http.Handler {
	library := libraryVersion("chi", "github.com/go-chi/chi/v5")
	return adapter(apiKey, "apilytics-go-chi", library, setRoutePattern, opts)
}

// setRoutePattern runs after the handler, when chi has finished routing
// and the full pattern (including any subrouter prefixes) is known.
func setRoutePattern(sender *apilytics.Sender, r *http.Request) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return
	}
	sender.SetRoute(rctx.RoutePattern())
}
