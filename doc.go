// Package apilytics reports API-usage telemetry from a web application to
// the Apilytics collector (https://apilytics.io).
//
// A Sender is created once per inbound request, told about the response
// when it is available, and finalized exactly once when the request scope
// ends. Finalizing hands the record to a shared background dispatcher, so
// the request path never waits on network I/O. Delivery is best-effort:
// failures are swallowed and logged at debug level, and a missing API key
// turns the whole library into a no-op.
//
// Most applications should not use this package directly but go through
// the middleware subpackage:
//
//	mux := chi.NewRouter()
//	mux.Use(middleware.Chi(os.Getenv("APILYTICS_API_KEY")))
//
// Direct use from custom integrations:
//
//	sender := apilytics.New(apiKey, r.URL.Path, r.Method,
//		apilytics.WithQuery(r.URL.RawQuery),
//		apilytics.WithUserAgent(r.UserAgent()),
//	)
//	defer sender.Send()
//
//	// ... handle the request ...
//
//	sender.SetResponseInfo(apilytics.Int(status), apilytics.Int64(written))
package apilytics
