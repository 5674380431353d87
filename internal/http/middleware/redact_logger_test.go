package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRedactingLogger_ScrubsPatientIdentifiers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	buf := captureLogger(t)

	// Upstream RequestID-style middleware sets the response header.
	r.Use(func(c *gin.Context) {
		c.Header("X-Request-ID", "rid-resp")
		c.Next()
	})
	r.Use(RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Api-Key"}}))
	r.GET("/visit/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// Query carries the kind of identifiers intake forms leak.
	q := "email=a.b+tag@example.com&phone=+1-555-123-4567&visit=123e4567-e89b-12d3-a456-426614174000&dob=1990-04-12"
	req := httptest.NewRequest(http.MethodGet, "/visit/123?"+q, nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("Cookie", "sid=topsecret")
	req.Header.Set("X-Api-Key", "shhh")
	// Pattern redaction applies inside non-masked headers.
	req.Header.Set("X-Custom", "email a@b.com id=123e4567-e89b-12d3-a456-426614174000 phone 555-123-4567")
	// Response-side request id wins over the request header.
	req.Header.Set("X-Request-ID", "rid-req")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	logs := buf.String()
	if !strings.Contains(logs, `"level":"info"`) {
		t.Fatalf("missing info entry: %s", logs)
	}
	if !strings.Contains(logs, `"path":"/visit/:id"`) {
		t.Fatalf("path must be the route pattern: %s", logs)
	}
	if !strings.Contains(logs, `"request_id":"rid-resp"`) {
		t.Fatalf("request_id must come from the response header: %s", logs)
	}
	for _, marker := range []string{"[REDACTED:email]", "[REDACTED:phone]", "[REDACTED:id]", "[REDACTED:date]"} {
		if !strings.Contains(logs, marker) {
			t.Fatalf("missing %s in query redaction: %s", marker, logs)
		}
	}
	for _, hdr := range []string{`"Authorization":"[REDACTED]"`, `"Cookie":"[REDACTED]"`, `"X-Api-Key":"[REDACTED]"`} {
		if !strings.Contains(logs, hdr) {
			t.Fatalf("missing masked header %s: %s", hdr, logs)
		}
	}
	if !strings.Contains(logs, `"X-Custom":"email [REDACTED:email] id=[REDACTED:id] phone [REDACTED:phone]"`) {
		t.Fatalf("X-Custom not pattern-redacted: %s", logs)
	}
}

func TestRedactingLogger_LevelsAndRequestIDFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	buf := captureLogger(t)

	// No response-side X-Request-ID here; the logger falls back to the
	// request header.
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/warn", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/error", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	reqWarn := httptest.NewRequest(http.MethodGet, "/warn", nil)
	reqWarn.Header.Set("X-Request-ID", "rid-warn")
	r.ServeHTTP(httptest.NewRecorder(), reqWarn)

	reqErr := httptest.NewRequest(http.MethodGet, "/error", nil)
	reqErr.Header.Set("X-Request-ID", "rid-err")
	r.ServeHTTP(httptest.NewRecorder(), reqErr)

	logs := buf.String()
	if !strings.Contains(logs, `"level":"warn"`) || !strings.Contains(logs, `"request_id":"rid-warn"`) {
		t.Fatalf("warn entry incomplete: %s", logs)
	}
	if !strings.Contains(logs, `"level":"error"`) || !strings.Contains(logs, `"request_id":"rid-err"`) {
		t.Fatalf("error entry incomplete: %s", logs)
	}
}
