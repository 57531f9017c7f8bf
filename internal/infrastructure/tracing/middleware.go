package tracing

import (
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/flatbridge/internal/shared/id"
)

// HTTPMiddleware creates Gin middleware for HTTP tracing. An inbound
// X-Trace-ID is only honoured when it is a well-formed trace ID.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if inbound := c.GetHeader(TraceHeader); id.IsValidPrefixed(inbound, id.TracePrefix) {
			ctx = WithTraceID(ctx, id.TraceID(inbound))
		}

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}

		span, ctx := tracer.StartSpan(ctx, name)
		span.SetTag("http.method", c.Request.Method)
		span.SetTag("http.path", c.Request.URL.Path)

		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, span.TraceID.String())
		c.Header(SpanHeader, span.SpanID.String())

		c.Next()

		span.SetStatus(c.Writer.Status())
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}

		span.Finish()
		tracer.Submit(span)
	}
}
