package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestKeyByShopOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		target string
		header map[string]string
		want   string
	}{
		{"ip fallback", "/", nil, "ip:203.0.113.9"},
		{"query", "/?shop=Demo.myshopify.com", nil, "shop:demo.myshopify.com"},
		{"admin header", "/?shop=q", map[string]string{HeaderShopDomain: "h"}, "shop:h"},
		{"webhook header wins", "/?shop=q", map[string]string{HeaderShopDomain: "h", HeaderWebhookShop: "w"}, "shop:w"},
		{"blank header skipped", "/", map[string]string{HeaderWebhookShop: "  "}, "ip:203.0.113.9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			req.RemoteAddr = net.JoinHostPort("203.0.113.9", "12345")
			for k, v := range tc.header {
				req.Header.Set(k, v)
			}
			c.Request = req

			if got := KeyByShopOrIP()(c); got != tc.want {
				t.Fatalf("key = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewRateLimiter_BurstCoercion_AndReuse(t *testing.T) {
	rl := NewRateLimiter(2.0, 0, KeyByShopOrIP())
	if rl.burst != 1 {
		t.Fatalf("burst coercion failed, got %d", rl.burst)
	}
	lim := rl.getVisitor("k1")
	if lim == nil || rl.getVisitor("k1") != lim {
		t.Fatalf("expected limiter reuse")
	}
}

func TestRateLimiter_getVisitor_EvictsIdle(t *testing.T) {
	rl := NewRateLimiter(1.0, 1, KeyByShopOrIP())
	rl.ttl = time.Nanosecond

	rl.mu.Lock()
	rl.visitors["old"] = &visitor{limiter: rate.NewLimiter(1, 1), lastSeen: time.Now().Add(-time.Hour)}
	rl.cleanupN = 4999
	rl.mu.Unlock()

	_ = rl.getVisitor("new")

	rl.mu.Lock()
	_, old := rl.visitors["old"]
	_, fresh := rl.visitors["new"]
	rl.mu.Unlock()
	if old || !fresh {
		t.Fatalf("old=%v new=%v", old, fresh)
	}
}

func TestRateLimiter_Handler_PerShopBuckets_AndBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0.001, 1, KeyByShopOrIP())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Header(requestIDHeader, "rid-1")
		if c.Query("replay") == "1" {
			c.Set(ctxKeyRateBypass, true)
		}
		c.Next()
	})
	r.Use(rl.Handler())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	get := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	if w := get("/ok?shop=a"); w.Code != http.StatusOK {
		t.Fatalf("first request for a: %d", w.Code)
	}
	w := get("/ok?shop=a")
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") != "1" {
		t.Fatalf("second request for a: %d retry=%q", w.Code, w.Header().Get("Retry-After"))
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["code"] != "rate_limited" || body["request_id"] != "rid-1" {
		t.Fatalf("unexpected body: %v", body)
	}

	if w := get("/ok?shop=b"); w.Code != http.StatusOK {
		t.Fatalf("shop b has its own bucket, got %d", w.Code)
	}
	if w := get("/ok?shop=a&replay=1"); w.Code != http.StatusOK {
		t.Fatalf("replay must bypass limiting, got %d", w.Code)
	}
}

func TestIsRateBypass_WrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if IsRateBypass(c) {
		t.Fatalf("default must be false")
	}
	c.Set(ctxKeyRateBypass, "yes")
	if IsRateBypass(c) {
		t.Fatalf("non-bool must read as false")
	}
}
