// Package middleware provides framework adapters that feed request and
// response data into the apilytics core. Adapters are thin glue: they
// extract fields the framework knows about, create a Sender at request
// entry and guarantee it is finalized on every exit path, including a
// panicking handler.
package middleware

import (
	"net"
	"net/http"
	"runtime/debug"
	"strings"

	apilytics "github.com/apilytics/apilytics-go"
)

// Middleware wraps a net/http handler and reports one telemetry record
// per request. An empty apiKey returns next untouched, so a deployment
// without a key carries zero overhead.
//
//	mux := http.NewServeMux()
//	handler := middleware.Middleware(os.Getenv("APILYTICS_API_KEY"))(mux)
func Middleware(apiKey string, opts ...apilytics.Option) func(http.Handler) http.Handler {
	return adapter(apiKey, "apilytics-go-http", "", nil, opts)
}

// adapter builds the shared handler-wrapping logic. afterServe, when set,
// runs after the wrapped handler and may adjust the sender with
// framework-specific data such as the matched route pattern.
func adapter(apiKey, integration, library string, afterServe func(*apilytics.Sender, *http.Request), opts []apilytics.Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sender := apilytics.New(apiKey, r.URL.Path, r.Method, senderOptions(r, integration, library, opts)...)
			defer sender.Send()

			mw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(mw, r)

			if afterServe != nil {
				afterServe(sender, r)
			}
			sender.SetResponseInfo(apilytics.Int(mw.statusCode), apilytics.Int64(mw.size))
		})
	}
}

// senderOptions assembles the request-time fields the core consumes. The
// caller's own options come last so they can override anything.
func senderOptions(r *http.Request, integration, library string, extra []apilytics.Option) []apilytics.Option {
	opts := []apilytics.Option{
		apilytics.WithQuery(r.URL.RawQuery),
		apilytics.WithUserAgent(r.UserAgent()),
		apilytics.WithIP(clientIP(r)),
		apilytics.WithIntegration(integration, library),
	}
	// ContentLength is -1 when the request body size is unknown, e.g. a
	// chunked upload. Unknown sizes are omitted, not sent as zero.
	if r.ContentLength >= 0 {
		opts = append(opts, apilytics.WithRequestSize(r.ContentLength))
	}
	return append(opts, extra...)
}

// clientIP extracts the client address, preferring proxy headers over the
// socket peer: first X-Forwarded-For entry, then X-Real-IP, then the host
// part of RemoteAddr.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	return host
}

// libraryVersion reports the module version of a dependency from the
// build info, e.g. "chi/5.2.3". Empty when the binary carries no build
// info (plain go test does) or the module is not linked in.
func libraryVersion(name, modulePath string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			return name + "/" + strings.TrimPrefix(dep.Version, "v")
		}
	}
	return ""
}

// metricsResponseWriter wraps http.ResponseWriter to capture the status
// code and the number of body bytes written. Not safe for concurrent use;
// one instance serves one request.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int64
}

func (w *metricsResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *metricsResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}
