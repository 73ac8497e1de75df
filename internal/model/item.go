package model

// ListableItem is one entry of the remote list.
// Name is optional on the wire: it may be null, absent or empty.
type ListableItem struct {
	ID     int     `json:"id"`
	ListID int     `json:"listId"`
	Name   *string `json:"name"`
}

// HasName reports whether the item carries a non-empty name.
func (i ListableItem) HasName() bool {
	return i.Name != nil && *i.Name != ""
}

// DisplayName is what a row shows; absent names render as "null".
func (i ListableItem) DisplayName() string {
	if i.Name == nil {
		return "null"
	}
	return *i.Name
}

// Named builds an item with a present name. Handy for fixtures and tests.
func Named(id, listID int, name string) ListableItem {
	return ListableItem{ID: id, ListID: listID, Name: &name}
}
