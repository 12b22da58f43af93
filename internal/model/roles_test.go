package model

import (
	"reflect"
	"testing"
)

func TestMapRole(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Accessibility roles from live captures.
		{"AXButton", "btn"},
		{"AXStaticText", "txt"},
		{"AXCheckBox", "chk"},
		{"AXSwitch", "toggle"},
		{"AXRadioButton", "radio"},
		{"AXMenuBar", "menu"},
		{"AXTable", "list"},
		{"AXSplitGroup", "group"},
		{"AXToolbar", "toolbar"},
		{"AXWindow", "window"},
		// Hand-written fixtures may already use compact codes.
		{"btn", "btn"},
		{"chk", "chk"},
		{"toolbar", "toolbar"},
		{"other", "other"},
		// Abstract taxonomy roots are valid codes too.
		{"control", "control"},
		{"container", "container"},
		// Anything else collapses to "other".
		{"AXPopUpButton", "other"},
		{"AXSlider", "other"},
		{"Button", "other"},
		{"", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MapRole(tt.input); got != tt.want {
				t.Errorf("MapRole(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMapRole_EveryMappedCodeIsInTaxonomy(t *testing.T) {
	for ax, code := range RoleMap {
		if _, ok := DefaultTaxonomy[code]; !ok {
			t.Errorf("%s maps to %q, which DefaultTaxonomy does not know", ax, code)
		}
		if MapRole(code) != code {
			t.Errorf("compact code %q should map to itself", code)
		}
	}
}

func TestExpandRoles(t *testing.T) {
	got := ExpandRoles([]string{"btn", "interactive", "chk", "btn"})
	want := []string{"btn", "input", "other", "chk", "toggle", "radio", "list"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandRoles = %v, want %v", got, want)
	}
	if got := ExpandRoles(nil); got != nil {
		t.Errorf("ExpandRoles(nil) = %v, want nil", got)
	}
}
