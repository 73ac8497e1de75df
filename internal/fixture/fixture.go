// Package fixture serves a local copy of the list endpoint, for development
// against a known data set and for tests.
package fixture

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/idilsaglam/fetchlist/internal/model"
)

// DefaultPath mirrors the remote object name.
const DefaultPath = "/hiring.json"

type config struct {
	path   string
	status int
}

type RouterOption func(*config)

// WithPath serves the list at p instead of DefaultPath.
func WithPath(p string) RouterOption {
	return func(c *config) { c.path = p }
}

// WithStatus makes the list route fail with code.
func WithStatus(code int) RouterOption {
	return func(c *config) { c.status = code }
}

// NewRouter returns a router serving items as a JSON array.
func NewRouter(items []model.ListableItem, opts ...RouterOption) *mux.Router {
	cfg := config{path: DefaultPath, status: http.StatusOK}
	for _, o := range opts {
		o(&cfg)
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK\n"))
	}).Methods("GET")
	r.HandleFunc(cfg.path, func(w http.ResponseWriter, r *http.Request) {
		if cfg.status < 200 || cfg.status > 299 {
			http.Error(w, http.StatusText(cfg.status), cfg.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(cfg.status)
		json.NewEncoder(w).Encode(items)
	}).Methods("GET")
	return r
}

// Sample is a small data set shaped like the real one: several groups,
// null and empty names, and multi-digit ids.
func Sample() []model.ListableItem {
	return []model.ListableItem{
		model.Named(755, 2, ""),
		{ID: 203, ListID: 2},
		model.Named(684, 1, "Item 684"),
		model.Named(276, 1, "Item 276"),
		{ID: 736, ListID: 3},
		model.Named(926, 4, ""),
		model.Named(808, 4, "Item 808"),
		model.Named(680, 3, "Item 680"),
		model.Named(2, 1, "Item 2"),
		model.Named(123, 1, "Item 123"),
		model.Named(68, 2, "Item 68"),
		model.Named(7, 5, "Item 7"),
	}
}
