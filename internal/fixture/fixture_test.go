package fixture

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/idilsaglam/fetchlist/internal/model"
)

func TestRouterServesItems(t *testing.T) {
	srv := httptest.NewServer(NewRouter(Sample()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + DefaultPath)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var got []model.ListableItem
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(Sample()) {
		t.Fatalf("len = %d, want %d", len(got), len(Sample()))
	}
}

func TestRouterOptions(t *testing.T) {
	srv := httptest.NewServer(NewRouter(nil, WithPath("/list"), WithStatus(http.StatusServiceUnavailable)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/list")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + DefaultPath)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("default path status = %d, want 404", resp.StatusCode)
	}
}

func TestRouterHealth(t *testing.T) {
	srv := httptest.NewServer(NewRouter(nil, WithStatus(http.StatusInternalServerError)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(b) != "OK\n" {
		t.Fatalf("health = %d %q, want 200 OK even when the list route fails", resp.StatusCode, b)
	}
}
