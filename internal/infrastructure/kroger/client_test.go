package kroger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sica-kitchen/internal/infrastructure/config"
	"sica-kitchen/internal/pkg/common"
)

func testConfig() *config.KrogerConfig {
	return &config.KrogerConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		LocationID:   "01400722",
		Limit:        1,
		Timeout:      5 * time.Second,
	}
}

func newTestServer(t *testing.T, authCalls *int, searchCalls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/connect/oauth2/token":
			*authCalls++
			if r.Header.Get("Authorization") == "" {
				t.Error("missing basic auth header")
			}
			if err := r.ParseForm(); err != nil {
				t.Fatalf("parse form: %v", err)
			}
			if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
				t.Errorf("grant_type = %q", got)
			}
			if got := r.PostForm.Get("scope"); got != "product.compact" {
				t.Errorf("scope = %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(AuthResponse{
				AccessToken: "test-token",
				ExpiresIn:   1800,
			})
		case "/products":
			*searchCalls++
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("Authorization = %q", got)
			}
			if got := r.URL.Query().Get("filter.locationId"); got != "01400722" {
				t.Errorf("filter.locationId = %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(ProductSearchResponse{
				Data: []Product{
					{Description: "milk", Items: []Item{{Price: &Price{Regular: 3.49}}}},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestSearchProductAuthenticatesOnce(t *testing.T) {
	var authCalls, searchCalls int
	srv := newTestServer(t, &authCalls, &searchCalls)
	defer srv.Close()

	client := NewClientWithBaseURL(testConfig(), srv.URL)

	for i := 0; i < 2; i++ {
		result, err := client.SearchProduct(context.Background(), "milk")
		if err != nil {
			t.Fatalf("SearchProduct returned error: %v", err)
		}
		if len(result.Data) != 1 {
			t.Fatalf("expected 1 product, got %d", len(result.Data))
		}
	}

	// token 要快取在客戶端上，連續查詢只認證一次
	if authCalls != 1 {
		t.Errorf("expected 1 auth call, got %d", authCalls)
	}
	if searchCalls != 2 {
		t.Errorf("expected 2 search calls, got %d", searchCalls)
	}
}

func TestSearchProductReauthenticatesWhenExpired(t *testing.T) {
	var authCalls, searchCalls int
	srv := newTestServer(t, &authCalls, &searchCalls)
	defer srv.Close()

	client := NewClientWithBaseURL(testConfig(), srv.URL)

	if _, err := client.SearchProduct(context.Background(), "milk"); err != nil {
		t.Fatalf("SearchProduct returned error: %v", err)
	}

	// 把到期時間撥回過去，下一次查詢必須重新認證
	client.mu.Lock()
	client.expiresAt = time.Now().Add(-time.Minute)
	client.mu.Unlock()

	if _, err := client.SearchProduct(context.Background(), "milk"); err != nil {
		t.Fatalf("SearchProduct returned error: %v", err)
	}

	if authCalls != 2 {
		t.Errorf("expected 2 auth calls after expiry, got %d", authCalls)
	}
}

func TestAuthenticationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(testConfig(), srv.URL)

	_, err := client.SearchProduct(context.Background(), "milk")
	if !errors.Is(err, common.ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestSearchProductEmptyResultIsNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/connect/oauth2/token" {
			json.NewEncoder(w).Encode(AuthResponse{AccessToken: "test-token", ExpiresIn: 1800})
			return
		}
		json.NewEncoder(w).Encode(ProductSearchResponse{})
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(testConfig(), srv.URL)

	result, err := client.SearchProduct(context.Background(), "saffron")
	if err != nil {
		t.Fatalf("expected no error for empty result, got %v", err)
	}
	if len(result.Data) != 0 {
		t.Errorf("expected empty data, got %d products", len(result.Data))
	}
}
