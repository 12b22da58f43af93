package model

import "testing"

func TestFilterElements_NoFilters(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "btn", Bounds: [4]int{0, 0, 100, 30}},
		{ID: 2, Role: "txt", Bounds: [4]int{0, 30, 100, 20}},
	}
	result := FilterElements(elements, DefaultTaxonomy, nil, nil)
	if len(result) != 2 {
		t.Errorf("expected 2 elements, got %d", len(result))
	}
}

func TestFilterElements_RoleFilter(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "btn", Bounds: [4]int{0, 0, 100, 30}},
		{ID: 2, Role: "txt", Bounds: [4]int{0, 30, 100, 20}},
		{ID: 3, Role: "lnk", Bounds: [4]int{0, 50, 100, 20}},
	}
	result := FilterElements(elements, DefaultTaxonomy, []string{"btn", "txt"}, nil)
	// lnk is a sub-role of btn, so all three pass.
	if len(result) != 3 {
		t.Errorf("expected 3 elements, got %d", len(result))
	}
}

func TestFilterElements_BBoxFilter(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "btn", Bounds: [4]int{10, 10, 50, 30}},   // inside
		{ID: 2, Role: "btn", Bounds: [4]int{200, 200, 50, 30}},  // outside
		{ID: 3, Role: "btn", Bounds: [4]int{90, 90, 50, 30}},    // overlaps
	}
	bbox := [4]int{0, 0, 100, 100}
	result := FilterElements(elements, DefaultTaxonomy, nil, &bbox)
	if len(result) != 2 {
		t.Errorf("expected 2 elements (inside + overlapping), got %d", len(result))
	}
}

func TestFilterElements_RecursiveChildren(t *testing.T) {
	elements := []Element{
		{
			ID: 1, Role: "group", Bounds: [4]int{0, 0, 200, 200},
			Children: []Element{
				{ID: 2, Role: "btn", Bounds: [4]int{10, 10, 50, 30}},
				{ID: 3, Role: "txt", Bounds: [4]int{10, 50, 100, 20}},
			},
		},
	}
	result := FilterElements(elements, DefaultTaxonomy, []string{"group", "btn"}, nil)
	if len(result) != 1 {
		t.Fatalf("expected 1 top-level element, got %d", len(result))
	}
	if len(result[0].Children) != 1 {
		t.Errorf("expected 1 child after filtering, got %d", len(result[0].Children))
	}
	if result[0].Children[0].Role != "btn" {
		t.Errorf("expected child role btn, got %s", result[0].Children[0].Role)
	}
}

func TestFilterElements_SubRolePromotion(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "txt", Children: []Element{
			{ID: 2, Role: "chk"},
			{ID: 3, Role: "img"},
		}},
	}
	result := FilterElements(elements, DefaultTaxonomy, []string{"toggle"}, nil)
	if len(result) != 1 || result[0].ID != 2 {
		t.Fatalf("expected promoted checkbox, got %+v", result)
	}
}

func TestFilterByText(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "window", Children: []Element{
			{ID: 2, Role: "btn", Title: "Add Note"},
			{ID: 3, Role: "btn", Title: "Delete"},
		}},
	}
	result := FilterByText(elements, "note")
	if len(result) != 1 || len(result[0].Children) != 1 || result[0].Children[0].ID != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := FilterByText(elements, ""); len(got) != 1 || len(got[0].Children) != 2 {
		t.Error("empty text should return input unchanged")
	}
}

func TestPruneEmptyGroups(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "group", Children: []Element{
			{ID: 2, Role: "group", Title: "Named"},
			{ID: 3, Role: "other", Children: []Element{{ID: 4, Role: "btn"}}},
		}},
	}
	result := PruneEmptyGroups(elements)
	if len(result) != 2 || result[0].ID != 2 || result[1].ID != 4 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestTruncateDepth(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "window", Children: []Element{
			{ID: 2, Role: "group", Children: []Element{{ID: 3, Role: "btn"}}},
		}},
	}
	one := TruncateDepth(elements, 1)
	if len(one[0].Children) != 0 {
		t.Error("depth 1 should drop children")
	}
	two := TruncateDepth(elements, 2)
	if len(two[0].Children) != 1 || len(two[0].Children[0].Children) != 0 {
		t.Errorf("depth 2 kept wrong shape: %+v", two)
	}
	if len(elements[0].Children[0].Children) != 1 {
		t.Error("input must not be modified")
	}
	if got := TruncateDepth(elements, 0); len(got[0].Children[0].Children) != 1 {
		t.Error("depth 0 should be unlimited")
	}
}

func TestBoundsIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b [4]int
		want bool
	}{
		{"overlapping", [4]int{0, 0, 100, 100}, [4]int{50, 50, 100, 100}, true},
		{"adjacent_no_overlap", [4]int{0, 0, 100, 100}, [4]int{100, 0, 100, 100}, false},
		{"contained", [4]int{0, 0, 200, 200}, [4]int{50, 50, 10, 10}, true},
		{"no_overlap", [4]int{0, 0, 10, 10}, [4]int{20, 20, 10, 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := boundsIntersect(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("boundsIntersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
