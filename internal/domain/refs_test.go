package domain

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestRefs_IDsFromBareIDs(t *testing.T) {
	refs := RefIDs[Plant](3, 1, 2)

	if refs.Resolved() {
		t.Error("expected bare-ID refs to be unresolved")
	}
	if refs.Len() != 3 {
		t.Errorf("expected 3 refs, got %d", refs.Len())
	}
	if got := refs.IDs(); !slices.Equal(got, []int64{3, 1, 2}) {
		t.Errorf("unexpected IDs: %v", got)
	}
	if _, ok := refs.Items(); ok {
		t.Error("expected Items to report not ok for bare IDs")
	}
}

func TestRefs_IDsFromAggregates(t *testing.T) {
	refs := RefsOf(Plant{ID: 7, Name: "Rose"}, Plant{ID: 9, Name: "Tulip"})

	if !refs.Resolved() {
		t.Error("expected aggregate refs to be resolved")
	}
	if got := refs.IDs(); !slices.Equal(got, []int64{7, 9}) {
		t.Errorf("unexpected IDs: %v", got)
	}
	items, ok := refs.Items()
	if !ok || len(items) != 2 || items[0].Name != "Rose" {
		t.Errorf("unexpected items: %v %v", items, ok)
	}
}

func TestRefs_EmptySets(t *testing.T) {
	var zero Refs[Maintenance]
	if zero.Len() != 0 || len(zero.IDs()) != 0 {
		t.Error("expected zero refs to be empty")
	}

	empty := RefsOf[Maintenance]()
	if !empty.Resolved() {
		t.Error("expected empty aggregate refs to stay resolved")
	}
	if len(empty.IDs()) != 0 {
		t.Error("expected no IDs")
	}
}

func TestRefs_IDsAreCopies(t *testing.T) {
	ids := []int64{1, 2}
	refs := RefIDs[Plant](ids...)
	ids[0] = 99

	got := refs.IDs()
	got[1] = 42

	if want := []int64{1, 2}; !slices.Equal(refs.IDs(), want) {
		t.Errorf("refs mutated through caller slices: %v", refs.IDs())
	}
}

func TestRefs_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		refs Refs[Plant]
		want string
	}{
		{name: "zero", refs: Refs[Plant]{}, want: `[]`},
		{name: "ids", refs: RefIDs[Plant](4, 5), want: `[4,5]`},
		{name: "empty aggregates", refs: RefsOf[Plant](), want: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.refs)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s, want %s", data, tt.want)
			}
		})
	}
}
