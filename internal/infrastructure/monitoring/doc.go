/*
Package monitoring provides Prometheus metrics for the bridge.

# Overview

Metrics live in a private registry owned by each Metrics value and are
served by Handler on the token-protected /metrics route.

# Metrics

- HTTP requests by route template and status
- Bridge operations (status, list, install, update, run) by outcome
- Operator confirmations by provider and decision
- Software channel setup attempts
- Circuit breaker state
- Uptime, Go runtime and process collectors

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "install")
	// ... run the operation ...
	timer.Stop("ok")
*/
package monitoring
