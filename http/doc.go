// Package http provides the HTTP API of the showroom backend.
//
// # Routes
//
//	POST /gpt-search               completion proxy ({"input": "..."})
//	GET  /list-images              cars then motorcycles
//	GET  /list-images-cars
//	GET  /list-images-motorcycles
//	GET  /automobile/*             image files (local image backend only)
//	GET  /metrics                  Prometheus metrics (when enabled)
//	GET  /*                        static build with index.html fallback, or a
//	                               fixed JSON document in info mode
//
// Every OPTIONS request is answered by the CORS gate with 204 before routing.
//
// # CORS
//
// CORSMiddleware compares the Origin header against an exact allow-list. A
// match gets Access-Control-Allow-Origin (echoing the origin),
// Access-Control-Allow-Methods "GET, POST, OPTIONS",
// Access-Control-Allow-Headers "Content-Type" and X-Content-Type-Options
// "nosniff". Other origins get no CORS headers and are still served.
//
// # Errors
//
// API errors are JSON bodies of the form {"error": "..."}:
//
//	400 Input is required        missing or empty input
//	404 Not found                missing image directory
//	4xx/5xx <upstream message>   completion API failure, status relayed
//	500 Internal server error    anything else (cause logged, not exposed)
//
// # Usage
//
//	handlerCfg := http.HandlerConfig{
//	    AssetMode: showroom.ModeSPA,
//	    CORS:      http.CORSConfig{AllowedOrigins: []string{"http://localhost:4173"}},
//	    Assets:    filesystem.NewFileStorage(root, ""),
//	}
//	handler := http.NewHandler(&handlerCfg, showroom.NewGallery(store), completion.New(apiKey))
//	http.ListenAndServe(":3000", handler.Router())
package http
