// Package middleware holds the shared Gin middleware for the HTTP layer.
//
// This file covers idempotency for unsafe methods: it validates the
// Idempotency-Key header, runs an optional lookup for a previously completed
// request, and annotates the request context so downstream code can read the
// key (GetIdempotencyKey), detect replays (IsReplay), and let replays bypass
// rate limiting. Persistence stays behind the IdempotencyLookup function
// type; the middleware never touches storage directly.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header clients send to deduplicate
// retried unsafe operations such as placing a pharmacy order. The value must
// be stable across retries of the same semantic operation.
const HeaderIdempotencyKey = "Idempotency-Key"

// Context keys for idempotency state; read them via the accessor helpers.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // bool: a stored replay exists
	ctxKeyRateBypass = "rate.bypass" // bool: skip rate limiting
)

// GetIdempotencyKey returns the validated key stashed by IdempotencyValidator.
// The second return value indicates presence. Handlers should prefer this over
// reading the header directly.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the middleware found a previously completed
// request for (user, route, key). Handlers may then serve the persisted
// response instead of repeating the operation.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures header validation. TTL enforcement belongs in
// the lookup, not here.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, a conservative
	// RFC7230-like token pattern is used: ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
}

// IdempotencyLookup answers whether a still-valid stored result exists for
// (userID, scope, key) at the given time. Scope is the registered route path
// of the request, e.g. "/pharmacy_order". Return exists=true when the prior
// response can be replayed; return an error only for lookup failures, which
// must not block normal processing.
type IdempotencyLookup func(ctx context.Context, userID, scope, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header when present,
// stashes it in the context, and optionally marks the request as a replay via
// the supplied lookup.
//
//   - No header: no-op.
//   - Invalid header: 400 with a compact error body.
//   - Lookup hit: sets the replay and rate-bypass flags.
//
// The middleware never serves a cached payload itself; handlers stay in
// control of how replays are answered.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_idempotency_key",
				"message": "invalid Idempotency-Key",
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			uid := userIDFromCtx(c)
			scope := c.FullPath()
			now := time.Now().UTC()

			if exists, _ := lookup(c.Request.Context(), uid, scope, key, now); exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}

// userIDFromCtx extracts the caller identity placed in the context by
// upstream middleware. The API carries no authentication of its own, so a
// demo fallback is returned when no identity is present.
func userIDFromCtx(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if h := c.GetHeader("X-User-ID"); h != "" {
		return h
	}
	return "demo-user"
}
