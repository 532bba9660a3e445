package usda_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/usda"
)

func newTestServer(t *testing.T, searchBody, detailBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/foods/search":
			if r.URL.Query().Get("api_key") == "" {
				t.Error("search request missing api_key")
			}
			var req map[string]any
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decoding search request: %v", err)
			}
			if req["pageSize"] != float64(10) {
				t.Errorf("pageSize = %v, want 10", req["pageSize"])
			}
			w.Write([]byte(searchBody))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/food/171688":
			w.Write([]byte(detailBody))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_Lookup(t *testing.T) {
	t.Run("fetches and extracts per-100g macros", func(t *testing.T) {
		srv := newTestServer(t,
			`{"foods":[{"fdcId":171688,"description":"Apple, raw"}]}`,
			`{"fdcId":171688,"description":"Apple, raw","foodNutrients":[
				{"nutrientId":1008,"value":52},
				{"nutrientId":1003,"value":0.3},
				{"nutrientId":1005,"value":13.8},
				{"nutrientId":1004,"value":0.2}]}`)
		defer srv.Close()

		c := usda.NewClient("test-key", srv.URL, nil)
		got, err := c.Lookup(context.Background(), "алим")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if got == nil {
			t.Fatal("Lookup() = nil, want food")
		}
		if got.SourceID != "171688" {
			t.Errorf("SourceID = %q, want 171688", got.SourceID)
		}
		if got.NameEN != "Apple, raw" {
			t.Errorf("NameEN = %q", got.NameEN)
		}
		if got.Per100g.Calories != 52 || got.Per100g.CarbsG != 13.8 {
			t.Errorf("Per100g = %+v", got.Per100g)
		}
	})

	t.Run("rescales gram-denominated servings", func(t *testing.T) {
		// Nutrients per 40 g serving; per-100g is 2.5x.
		srv := newTestServer(t,
			`{"foods":[{"fdcId":171688,"description":"Granola bar"}]}`,
			`{"fdcId":171688,"description":"Granola bar","servingSize":40,"servingSizeUnit":"G",
				"foodNutrients":[
				{"nutrientId":1008,"value":180},
				{"nutrientId":1003,"value":4},
				{"nutrientId":1005,"value":24},
				{"nutrientId":1004,"value":8}]}`)
		defer srv.Close()

		c := usda.NewClient("test-key", srv.URL, nil)
		got, err := c.Lookup(context.Background(), "алим")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if got == nil {
			t.Fatal("Lookup() = nil, want food")
		}
		if got.Per100g.Calories != 450 {
			t.Errorf("Calories = %v, want 450", got.Per100g.Calories)
		}
		if got.Per100g.ProteinG != 10 {
			t.Errorf("ProteinG = %v, want 10", got.Per100g.ProteinG)
		}
	})

	t.Run("no API key disables lookup", func(t *testing.T) {
		c := usda.NewClient("", "http://unused", nil)
		got, err := c.Lookup(context.Background(), "алим")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if got != nil {
			t.Errorf("Lookup() = %+v, want nil", got)
		}
	})

	t.Run("unmapped query returns nothing", func(t *testing.T) {
		c := usda.NewClient("test-key", "http://unused", nil)
		got, err := c.Lookup(context.Background(), "пицца")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if got != nil {
			t.Errorf("Lookup() = %+v, want nil", got)
		}
	})

	t.Run("empty search result returns nothing", func(t *testing.T) {
		srv := newTestServer(t, `{"foods":[]}`, `{}`)
		defer srv.Close()

		c := usda.NewClient("test-key", srv.URL, nil)
		got, err := c.Lookup(context.Background(), "алим")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if got != nil {
			t.Errorf("Lookup() = %+v, want nil", got)
		}
	})

	t.Run("zero macros are not a usable food", func(t *testing.T) {
		srv := newTestServer(t,
			`{"foods":[{"fdcId":171688,"description":"Water"}]}`,
			`{"fdcId":171688,"description":"Water","foodNutrients":[]}`)
		defer srv.Close()

		c := usda.NewClient("test-key", srv.URL, nil)
		got, err := c.Lookup(context.Background(), "алим")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if got != nil {
			t.Errorf("Lookup() = %+v, want nil", got)
		}
	})

	t.Run("server error propagates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := usda.NewClient("test-key", srv.URL, nil)
		if _, err := c.Lookup(context.Background(), "алим"); err == nil {
			t.Error("Lookup() error = nil, want status error")
		}
	})
}
