package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/tree"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabelMode controls what text is drawn on each annotated element.
type LabelMode int

const (
	// LabelIDs draws "[id]" element IDs.
	LabelIDs LabelMode = iota
	// LabelRoles draws "[id] role" so sub-role matches are visible.
	LabelRoles
	// LabelCoords draws "(x,y)" center coordinates.
	LabelCoords
)

// ParseLabelMode parses a --label value.
func ParseLabelMode(s string) (LabelMode, error) {
	switch s {
	case "id", "":
		return LabelIDs, nil
	case "role":
		return LabelRoles, nil
	case "coords":
		return LabelCoords, nil
	}
	return 0, fmt.Errorf("unsupported label %q (use id, role, or coords)", s)
}

var (
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	canvasColor  = color.RGBA{R: 245, G: 245, B: 245, A: 255}
)

// treeBounds returns the union of the bounds of root and its descendants as
// [x, y, w, h]. Elements without a size are ignored.
func treeBounds(root *model.Node) [4]int {
	nodes := tree.FindDescendants[*model.Node](root)
	if !root.IsRoot() {
		nodes = append(nodes, root)
	}

	var minX, minY, maxX, maxY int
	first := true
	for _, n := range nodes {
		b := n.Element.Bounds
		if b[2] <= 0 || b[3] <= 0 {
			continue
		}
		if first {
			minX, minY, maxX, maxY = b[0], b[1], b[0]+b[2], b[1]+b[3]
			first = false
			continue
		}
		minX = min(minX, b[0])
		minY = min(minY, b[1])
		maxX = max(maxX, b[0]+b[2])
		maxY = max(maxY, b[1]+b[3])
	}
	return [4]int{minX, minY, maxX - minX, maxY - minY}
}

// newCanvas returns a blank image covering area [x, y, w, h].
func newCanvas(area [4]int) *image.RGBA {
	w, h := max(area[2], 1), max(area[3], 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(canvasColor), image.Point{}, draw.Src)
	return img
}

// Annotate draws a bounding box and label for each node onto img. area is
// the [x, y, w, h] region of tree coordinates that img covers; bounds are
// scaled from area to image pixels.
func Annotate(img image.Image, nodes []*model.Node, area [4]int, mode LabelMode) *image.RGBA {
	rgba := ImageToRGBA(img)

	imgBounds := img.Bounds()
	scaleX, scaleY := 1.0, 1.0
	if area[2] > 0 {
		scaleX = float64(imgBounds.Dx()) / float64(area[2])
	}
	if area[3] > 0 {
		scaleY = float64(imgBounds.Dy()) / float64(area[3])
	}

	for _, n := range nodes {
		drawElementBox(rgba, *n.Element, area[0], area[1], scaleX, scaleY, mode)
	}
	return rgba
}

// ImageToRGBA converts any image to RGBA
func ImageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawElementBox draws a bounding box and label for a single element.
// originX, originY are the area origin in tree coordinates.
func drawElementBox(img *image.RGBA, el model.Element, originX, originY int, scaleX, scaleY float64, mode LabelMode) {
	bounds := el.Bounds
	x := int(float64(bounds[0]-originX) * scaleX)
	y := int(float64(bounds[1]-originY) * scaleY)
	w := int(float64(bounds[2]) * scaleX)
	h := int(float64(bounds[3]) * scaleY)

	drawRectangle(img, x, y, x+w, y+h, boxColor)

	var label string
	switch mode {
	case LabelRoles:
		label = fmt.Sprintf("[%d] %s", el.ID, el.Role)
	case LabelCoords:
		label = fmt.Sprintf("(%d,%d)", bounds[0]+bounds[2]/2, bounds[1]+bounds[3]/2)
	default:
		label = fmt.Sprintf("[%d]", el.ID)
	}
	drawTextWithOutline(img, label, x+w/2, y+h/2)
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	r := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawTextWithOutline draws text centered at (x, y) with a one-pixel outline.
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Round()
	// Dot is the baseline; shift down by half the ascent to center vertically.
	offsetX := x - textWidth/2
	offsetY := y + face.Ascent/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, offsetX+dx, offsetY+dy, outlineColor)
		}
	}
	drawString(img, text, offsetX, offsetY, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
