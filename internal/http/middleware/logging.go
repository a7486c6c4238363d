// Package middleware contains the shared Gin middleware of the HTTP
// layer: correlation IDs, redacting structured logging, panic recovery,
// session auth, Prometheus metrics, rate limiting, and security headers.
//
// Recommended order: RequestID → Logger → Recovery, so panics and access
// logs carry the correlation ID.
//
// The access log never contains request or response bodies, and scrubs
// the identifiers this domain handles routinely — phone numbers, Aadhaar
// numbers, email addresses — from query strings and header values before
// they reach a log sink.
package middleware

import (
	"net/http"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	ctxKeyRequestID = "requestID"
	ctxKeyLogger    = "logger"
	ctxKeySession   = "session"

	requestIDHeader = "X-Request-ID"

	maxQueryLogLength = 1024
)

// RequestID propagates the X-Request-ID header or generates a fresh UUID,
// storing the value in the Gin context and echoing it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// Redaction patterns. Emails before phones: the phone pattern is the
// loosest and would otherwise eat digit runs inside other matches.
var (
	emailRE   = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	aadhaarRE = regexp.MustCompile(`\b\d{4}[ -]?\d{4}[ -]?\d{4}\b`)
	phoneRE   = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?\d{10}\b`)
)

// maskedHeaders are fully replaced in access logs.
var maskedHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
}

func redact(s string) string {
	if s == "" {
		return s
	}
	s = emailRE.ReplaceAllString(s, "[redacted:email]")
	s = aadhaarRE.ReplaceAllString(s, "[redacted:aadhaar]")
	s = phoneRE.ReplaceAllString(s, "[redacted:phone]")
	return s
}

// Logger emits one structured access log line per request and attaches a
// request-scoped zerolog.Logger to the Gin context for handlers to
// enrich. Level tracks the outcome: error for 5xx or collected Gin
// errors, warn for 4xx, info otherwise.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetString(ctxKeyRequestID)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		l := log.With().
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("remote_ip", c.ClientIP()).
			Str("query", truncate(redact(c.Request.URL.RawQuery), maxQueryLogLength)).
			Logger()
		c.Set(ctxKeyLogger, &l)

		c.Next()

		status := c.Writer.Status()
		ev := l.With().
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("bytes_out", c.Writer.Size()).
			Logger()

		switch {
		case len(c.Errors) > 0:
			ev.Error().Str("errors", redact(c.Errors.String())).Msg("request")
		case status >= 500:
			ev.Error().Msg("request")
		case status >= 400:
			ev.Warn().Msg("request")
		default:
			ev.Info().Msg("request")
		}
	}
}

// Recovery converts panics into a JSON 500 with the correlation ID, after
// logging the panic value and stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				rid := c.GetString(ctxKeyRequestID)
				log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("request_id", rid).
					Msg("panic recovered")

				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"request_id": rid,
						"code":       "internal_error",
						"message":    "internal server error",
					})
					return
				}
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger attached by Logger, or the
// global logger when none is present. Never nil.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(ctxKeyLogger); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// HeadersForLog scrubs a header map the way the access logger would.
// Exported for reuse in debug endpoints and tests.
func HeadersForLog(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if _, masked := maskedHeaders[strings.ToLower(k)]; masked {
			out[k] = "[redacted]"
			continue
		}
		out[k] = redact(strings.Join(vv, ", "))
	}
	return out
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
