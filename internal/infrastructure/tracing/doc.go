/*
Package tracing tags every bridge request with a trace and span ID.

# Overview

Each HTTP request gets a span whose IDs are echoed in the X-Trace-ID and
X-Span-ID response headers and attached to log lines written while the
request is served. A caller may pass its own X-Trace-ID to correlate
several requests; malformed values are replaced.

Finished spans are logged at debug level, so they stay silent under the
default info level.

# Usage

	tracer := tracing.New(logger.Logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	logger.Info("install finished", tracing.Fields(ctx)...)
*/
package tracing
