package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// RequestID tags each request with an ID, reusing a caller-supplied one when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one zerolog line per request and stores a request-scoped
// logger in the gin context for handlers to reuse.
func AccessLog(base zerolog.Logger) gin.HandlerFunc {
	base = base.With().Str("module", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		l := base.With().Str("request_id", c.GetString(requestIDHeader)).Logger()
		c.Set(loggerKey, l)

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = l.Error()
		case status >= 400:
			event = l.Warn()
		default:
			event = l.Info()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request handled")
	}
}

// RequestLogger returns the request-scoped logger, or a no-op logger outside AccessLog.
func RequestLogger(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(zerolog.Logger); ok {
			return &l
		}
	}
	nop := zerolog.Nop()
	return &nop
}

// NewEngine builds a gin engine with recovery, request IDs and access logging.
func NewEngine(logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(logger), gin.Recovery())
	return r
}
