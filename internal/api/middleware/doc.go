// Package middleware provides the gin middleware stack of the bridge.
//
// Middleware stack:
//   - Recovery: panic to JSON 500
//   - NoStore: Cache-Control: no-store on every response
//   - CORS: only the bridge's own loopback origin
//   - RateLimit: per-IP token bucket
//   - RequireToken: X-Installer-Token check on protected routes
//   - RequestLog: one debug line per request
//
// Example Usage:
//
//	router.Use(middleware.Recovery(logger), middleware.NoStore())
//	router.Use(middleware.CORS(middleware.BridgeCORSConfig(port)))
//	protected := router.Group("/", middleware.RequireToken(token))
package middleware
