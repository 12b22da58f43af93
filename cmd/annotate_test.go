package cmd

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLabelMode(t *testing.T) {
	tests := []struct {
		in   string
		want LabelMode
	}{
		{"", LabelIDs},
		{"id", LabelIDs},
		{"role", LabelRoles},
		{"coords", LabelCoords},
	}
	for _, tt := range tests {
		got, err := ParseLabelMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLabelMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseLabelMode("bogus"); err == nil {
		t.Error("expected error for unknown label mode")
	}
}

func TestTreeBounds(t *testing.T) {
	root := buildNotesForest()
	// The fixture has no bounds, so everything is skipped.
	if got := treeBounds(root); got != [4]int{} {
		t.Errorf("expected zero bounds, got %v", got)
	}

	root.ByID(3).Element.Bounds = [4]int{10, 20, 30, 40}
	root.ByID(7).Element.Bounds = [4]int{100, 5, 10, 10}
	if got := treeBounds(root); got != [4]int{10, 5, 100, 55} {
		t.Errorf("unexpected union %v", got)
	}
	if got := treeBounds(root.ByID(3)); got != [4]int{10, 20, 30, 40} {
		t.Errorf("a subtree includes its own bounds, got %v", got)
	}
}

func TestDrawRectangle_Clamped(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	drawRectangle(img, -5, -5, 5, 5, boxColor)
	if img.RGBAAt(4, 0) != boxColor || img.RGBAAt(0, 4) != boxColor {
		t.Error("expected clamped edges to be drawn")
	}
	if img.RGBAAt(2, 2) == boxColor {
		t.Error("rectangle interior should stay untouched")
	}
	// Entirely outside: no panic, no pixels.
	drawRectangle(img, 20, 20, 30, 30, boxColor)
}

func TestAnnotateCommand_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.yaml", notesSnapshot)
	out := filepath.Join(dir, "buttons.png")

	if _, err := execute(t, "annotate", path, "--type", "btn", "--label", "role", "--out", out); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	if size := img.Bounds().Size(); size.X != 800 || size.Y != 600 {
		t.Errorf("expected an 800x600 canvas, got %v", size)
	}
	// Top-left corner of the Bold button box.
	if got := color.RGBAModel.Convert(img.At(10, 5)); got != boxColor {
		t.Errorf("expected box color at (10,5), got %v", got)
	}
	// The window itself is not a button, so its corner stays blank.
	if got := color.RGBAModel.Convert(img.At(799, 599)); got != canvasColor {
		t.Errorf("expected canvas color at (799,599), got %v", got)
	}
}
