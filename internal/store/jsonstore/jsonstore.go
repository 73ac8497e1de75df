package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/idilsaglam/fetchlist/internal/model"
)

// JSON-backed list files, in the same shape the remote endpoint serves.
// Used by the local fixture server; the client itself persists nothing.

func Load(path string) ([]model.ListableItem, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.ListableItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.ListableItem{}
	}
	return items, nil
}

func Save(path string, items []model.ListableItem) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
