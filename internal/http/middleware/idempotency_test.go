package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIdempotencyAccessors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if k, ok := GetIdempotencyKey(c); k != "" || ok {
		t.Fatalf("key should be absent by default")
	}
	if IsReplay(c) {
		t.Fatalf("IsReplay should default to false")
	}

	// Wrong-typed context values must not panic.
	c.Set(ctxKeyIdemKey, 123)
	if _, ok := GetIdempotencyKey(c); ok {
		t.Fatalf("non-string key must read as absent")
	}
	c.Set(ctxKeyIdemReplay, true)
	if !IsReplay(c) {
		t.Fatalf("IsReplay = false after set")
	}
	c.Set(ctxKeyIdemReplay, "yes")
	if IsReplay(c) {
		t.Fatalf("non-bool replay flag must read as false")
	}

	if got := userIDFromCtx(c); got != "demo-user" {
		t.Fatalf("fallback user = %q", got)
	}
	c.Set("userID", "u1")
	if got := userIDFromCtx(c); got != "u1" {
		t.Fatalf("user = %q; want u1", got)
	}
	c.Set("userID", 42)
	if got := userIDFromCtx(c); got != "demo-user" {
		t.Fatalf("wrong-typed user must fall back, got %q", got)
	}
}

func TestUserIDFromCtx_HeaderFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/pharmacy_order", nil)
	c.Request.Header.Set("X-User-ID", "patient-7")

	if got := userIDFromCtx(c); got != "patient-7" {
		t.Fatalf("user = %q; want X-User-ID value", got)
	}
}

func TestIdempotencyValidator_NoHeaderIsNoop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	lookupCalled := false
	lookup := func(context.Context, string, string, string, time.Time) (bool, error) {
		lookupCalled = true
		return false, nil
	}
	r.Use(IdempotencyValidator(IdempotencyOptions{}, lookup))
	r.POST("/pharmacy_order", func(c *gin.Context) {
		if _, ok := GetIdempotencyKey(c); ok {
			t.Fatalf("key stashed without header")
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/pharmacy_order", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if lookupCalled {
		t.Fatalf("lookup must not run without a header")
	}
}

func TestIdempotencyValidator_RejectsOversizeKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{MaxLen: 5}, nil))
	r.POST("/pharmacy_order", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pharmacy_order", nil)
	req.Header.Set(HeaderIdempotencyKey, "abcdef")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["code"] != "bad_idempotency_key" {
		t.Fatalf("body = %v", body)
	}
}

func TestIdempotencyValidator_RejectsPatternMismatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{Pattern: regexp.MustCompile(`^[0-9]+$`)}, nil))
	r.POST("/pharmacy_order", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pharmacy_order", nil)
	req.Header.Set(HeaderIdempotencyKey, "abc123")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestIdempotencyValidator_ValidKeyWithoutLookup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{}, nil))
	r.POST("/pharmacy_order", func(c *gin.Context) {
		key, ok := GetIdempotencyKey(c)
		if !ok || key != "order-1" {
			t.Fatalf("stashed key = %q ok=%v", key, ok)
		}
		if IsReplay(c) || IsRateBypass(c) {
			t.Fatalf("no flags expected without a lookup")
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pharmacy_order", nil)
	req.Header.Set(HeaderIdempotencyKey, "order-1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestIdempotencyValidator_LookupScopeIsRoutePath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("miss leaves no flags", func(t *testing.T) {
		r := gin.New()
		lookup := func(_ context.Context, userID, scope, key string, now time.Time) (bool, error) {
			if userID != "demo-user" {
				t.Fatalf("user = %q; want demo-user fallback", userID)
			}
			if scope != "/pharmacy_order" {
				t.Fatalf("scope = %q; want route path", scope)
			}
			if key == "" || now.IsZero() {
				t.Fatalf("lookup args not populated: key=%q now=%v", key, now)
			}
			return false, nil
		}
		r.Use(IdempotencyValidator(IdempotencyOptions{}, lookup))
		r.POST("/pharmacy_order", func(c *gin.Context) {
			if IsReplay(c) || IsRateBypass(c) {
				t.Fatalf("flags set on a lookup miss")
			}
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/pharmacy_order", nil)
		req.Header.Set(HeaderIdempotencyKey, "key-1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("hit sets replay and rate bypass", func(t *testing.T) {
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set("userID", "u9"); c.Next() })
		lookup := func(_ context.Context, userID, scope, key string, _ time.Time) (bool, error) {
			if userID != "u9" || scope != "/pharmacy_order" || key != "k-9" {
				t.Fatalf("lookup args = %q %q %q", userID, scope, key)
			}
			return true, nil
		}
		r.Use(IdempotencyValidator(IdempotencyOptions{}, lookup))
		r.POST("/pharmacy_order", func(c *gin.Context) {
			if !IsReplay(c) || !IsRateBypass(c) {
				t.Fatalf("replay/bypass flags missing on a hit")
			}
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/pharmacy_order", nil)
		req.Header.Set(HeaderIdempotencyKey, "k-9")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	})
}
