package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slatehq/slate/pkg/middleware"
)

func TestApply(t *testing.T) {
	t.Run("empty stack passes through", func(t *testing.T) {
		m := middleware.New()
		handler := m.Apply(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		if rec.Code != http.StatusTeapot {
			t.Errorf("status = %d, want 418", rec.Code)
		}
	})

	t.Run("middleware applies in registration order", func(t *testing.T) {
		var order []string

		record := func(name string) func(http.Handler) http.Handler {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		m := middleware.New()
		m.Use(record("first"))
		m.Use(record("second"))

		handler := m.Apply(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			order = append(order, "handler")
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		want := []string{"first", "second", "handler"}
		if len(order) != len(want) {
			t.Fatalf("order = %v, want %v", order, want)
		}
		for i, name := range want {
			if order[i] != name {
				t.Errorf("order[%d] = %s, want %s", i, order[i], name)
			}
		}
	})
}

func corsConfig(origins ...string) *middleware.CORSConfig {
	return &middleware.CORSConfig{
		Enabled:        true,
		Origins:        origins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         3600,
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed origin gets headers", func(t *testing.T) {
		handler := middleware.CORS(corsConfig("https://app.example.com"))(next)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
			t.Errorf("allow-origin = %q, want https://app.example.com", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
			t.Errorf("allow-methods = %q, want GET, POST", got)
		}
		if got := rec.Header().Get("Access-Control-Max-Age"); got != "3600" {
			t.Errorf("max-age = %q, want 3600", got)
		}
	})

	t.Run("disallowed origin gets no headers", func(t *testing.T) {
		handler := middleware.CORS(corsConfig("https://app.example.com"))(next)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("allow-origin = %q, want empty", got)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		called := false
		inner := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			called = true
		})
		handler := middleware.CORS(corsConfig("https://app.example.com"))(inner)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("OPTIONS", "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if called {
			t.Error("preflight reached inner handler")
		}
	})

	t.Run("disabled config passes through", func(t *testing.T) {
		cfg := corsConfig("https://app.example.com")
		cfg.Enabled = false
		handler := middleware.CORS(cfg)(next)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("allow-origin = %q, want empty when disabled", got)
		}
	})

	t.Run("credentials header when configured", func(t *testing.T) {
		cfg := corsConfig("https://app.example.com")
		cfg.AllowCredentials = true
		handler := middleware.CORS(cfg)(next)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("allow-credentials = %q, want true", got)
		}
	})
}

func TestCORSConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg middleware.CORSConfig
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize: %v", err)
		}

		if len(cfg.AllowedMethods) == 0 {
			t.Error("allowed_methods empty, want defaults")
		}
		if cfg.MaxAge != 3600 {
			t.Errorf("max_age = %d, want 3600", cfg.MaxAge)
		}
	})

	t.Run("env override parses lists", func(t *testing.T) {
		t.Setenv("TEST_CORS_ENABLED", "true")
		t.Setenv("TEST_CORS_ORIGINS", "https://a.example.com,https://b.example.com, ")

		var cfg middleware.CORSConfig
		env := &middleware.CORSEnv{Enabled: "TEST_CORS_ENABLED", Origins: "TEST_CORS_ORIGINS"}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("finalize: %v", err)
		}

		if !cfg.Enabled {
			t.Error("enabled = false, want true")
		}
		if len(cfg.Origins) != 2 {
			t.Errorf("origins = %v, want 2 trimmed entries", cfg.Origins)
		}
	})
}
