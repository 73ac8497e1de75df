package sanitize

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/idilsaglam/fetchlist/internal/model"
)

func ptr(s string) *string { return &s }

func TestSanitizeDropsEmptyNameAndSorts(t *testing.T) {
	in := []model.ListableItem{
		model.Named(3, 2, "C"),
		model.Named(1, 1, ""),
		model.Named(2, 1, "A"),
	}
	got := Sanitize(in)
	want := []model.ListableItem{
		model.Named(2, 1, "A"),
		model.Named(3, 2, "C"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sanitize() = %+v, want %+v", got, want)
	}
}

func TestSanitizeEmpty(t *testing.T) {
	for _, in := range [][]model.ListableItem{nil, {}} {
		got := Sanitize(in)
		if got == nil || len(got) != 0 {
			t.Fatalf("Sanitize(%v) = %#v, want empty non-nil", in, got)
		}
	}
}

func TestSortNumericNotLexical(t *testing.T) {
	in := []model.ListableItem{
		model.Named(123, 1, "Item 123"),
		model.Named(2, 1, "Item 2"),
	}
	got := Sanitize(in)
	if got[0].ID != 2 || got[1].ID != 123 {
		t.Fatalf("order = %d,%d, want 2,123", got[0].ID, got[1].ID)
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		in   []model.ListableItem
		ids  []int
	}{
		{"null name", []model.ListableItem{{ID: 1, ListID: 1}}, nil},
		{"empty name", []model.ListableItem{{ID: 1, ListID: 1, Name: ptr("")}}, nil},
		{"blank is kept", []model.ListableItem{{ID: 1, ListID: 1, Name: ptr(" ")}}, []int{1}},
		{"order kept", []model.ListableItem{
			model.Named(9, 4, "Item 9"),
			{ID: 5, ListID: 1},
			model.Named(1, 1, "Item 1"),
		}, []int{9, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.in)
			var ids []int
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			if !reflect.DeepEqual(ids, tt.ids) {
				t.Fatalf("ids = %v, want %v", ids, tt.ids)
			}
		})
	}
}

func TestSortStableOnFullTie(t *testing.T) {
	in := []model.ListableItem{
		model.Named(7, 1, "first"),
		model.Named(7, 1, "second"),
	}
	got := Sort(in)
	if *got[0].Name != "first" || *got[1].Name != "second" {
		t.Fatalf("tie order not preserved: %+v", got)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := []model.ListableItem{model.Named(2, 2, "b"), model.Named(1, 1, "a")}
	Sort(in)
	if in[0].ID != 2 {
		t.Fatalf("input was reordered: %+v", in)
	}
}

func randomItems(r *rand.Rand, n int) []model.ListableItem {
	out := make([]model.ListableItem, n)
	for i := range out {
		out[i] = model.ListableItem{ID: r.Intn(50), ListID: r.Intn(5)}
		switch r.Intn(3) {
		case 0:
		case 1:
			out[i].Name = ptr("")
		default:
			out[i].Name = ptr("Item")
		}
	}
	return out
}

func TestSanitizeProperties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for round := 0; round < 200; round++ {
		in := randomItems(r, r.Intn(40))
		out := Sanitize(in)

		for _, it := range out {
			if !it.HasName() {
				t.Fatalf("round %d: nameless item survived: %+v", round, it)
			}
		}
		for i := 0; i+1 < len(out); i++ {
			a, b := out[i], out[i+1]
			if a.ListID > b.ListID || (a.ListID == b.ListID && a.ID > b.ID) {
				t.Fatalf("round %d: unordered pair at %d: %+v %+v", round, i, a, b)
			}
		}
		if again := Sanitize(out); !reflect.DeepEqual(again, out) {
			t.Fatalf("round %d: not idempotent", round)
		}
		if want := len(Filter(in)); len(out) != want {
			t.Fatalf("round %d: len = %d, want %d", round, len(out), want)
		}
	}
}
