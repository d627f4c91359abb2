package engrave

import (
	"fmt"
	"strings"
)

type drawingEntityKind int

const (
	drawRect drawingEntityKind = iota
	drawFilledRect
	drawCircle
	drawLine
	drawPath
	drawText
)

type drawingEntity struct {
	kind             drawingEntityKind
	x, y, w, h       float64
	x2, y2           float64
	r                float64
	filled           bool
	pathData         string
	text             string
}

// Drawing is a growing SVG surface: callers add primitives and the
// bounding box grows to accommodate them, so the final render always
// has a width/height tight to its content.
type Drawing struct {
	width, height float64
	entities      []drawingEntity
}

// NewDrawing returns an empty drawing. It starts at zero size and
// grows as primitives are added.
func NewDrawing() *Drawing {
	return &Drawing{}
}

func (d *Drawing) ensure(x, y float64) {
	if x > d.width {
		d.width = x
	}
	if y > d.height {
		d.height = y
	}
}

// Rect draws an unfilled rectangle outline.
func (d *Drawing) Rect(x, y, w, h float64) {
	d.ensure(x, y)
	d.ensure(x+w, y+h)
	d.entities = append(d.entities, drawingEntity{kind: drawRect, x: x, y: y, w: w, h: h})
}

// FilledRect draws a solid rectangle.
func (d *Drawing) FilledRect(x, y, w, h float64) {
	d.ensure(x, y)
	d.ensure(x+w, y+h)
	d.entities = append(d.entities, drawingEntity{kind: drawFilledRect, x: x, y: y, w: w, h: h})
}

// Circle draws a circle, filled or outline, centred at (x,y) with
// radius r.
func (d *Drawing) Circle(x, y, r float64, filled bool) {
	d.ensure(x+r, y+r)
	d.entities = append(d.entities, drawingEntity{kind: drawCircle, x: x, y: y, r: r, filled: filled})
}

// Line draws a straight line segment.
func (d *Drawing) Line(x1, y1, x2, y2 float64) {
	d.ensure(x1, y1)
	d.ensure(x2, y2)
	d.entities = append(d.entities, drawingEntity{kind: drawLine, x: x1, y: y1, x2: x2, y2: y2})
}

// Path draws a raw SVG path ("d" attribute content); the caller is
// responsible for any bounding coordinates it wants reflected, passed
// via maxX/maxY.
func (d *Drawing) Path(data string, maxX, maxY float64) {
	d.ensure(maxX, maxY)
	d.entities = append(d.entities, drawingEntity{kind: drawPath, pathData: data})
}

// Text draws a text label anchored at (x,y).
func (d *Drawing) Text(x, y float64, text string) {
	d.ensure(x, y)
	d.entities = append(d.entities, drawingEntity{kind: drawText, x: x, y: y, text: text})
}

// Render produces the final SVG document, sized to the accumulated
// bounding box.
func (d *Drawing) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<svg version='1.1' baseProfile='full' width='%g' height='%g' xmlns='http://www.w3.org/2000/svg'>", d.width, d.height)

	for _, e := range d.entities {
		switch e.kind {
		case drawRect:
			fmt.Fprintf(&b, "<rect x='%g' y='%g' width='%g' height='%g' style='fill:none;stroke:black;stroke-width:1' />", e.x, e.y, e.w, e.h)
		case drawFilledRect:
			fmt.Fprintf(&b, "<rect x='%g' y='%g' width='%g' height='%g' style='fill:black;stroke:none' />", e.x, e.y, e.w, e.h)
		case drawCircle:
			style := "fill:none;stroke:black;stroke-width:1"
			if e.filled {
				style = "fill:black;stroke:none"
			}
			fmt.Fprintf(&b, "<circle cx='%g' cy='%g' r='%g' style='%s' />", e.x, e.y, e.r, style)
		case drawLine:
			fmt.Fprintf(&b, "<line x1='%g' y1='%g' x2='%g' y2='%g' style='stroke:black;stroke-width:1' />", e.x, e.y, e.x2, e.y2)
		case drawPath:
			fmt.Fprintf(&b, "<path d='%s' style='fill:none;stroke:black;stroke-width:1' />", e.pathData)
		case drawText:
			fmt.Fprintf(&b, "<text x='%g' y='%g'>%s</text>", e.x, e.y, escapeText(e.text))
		}
	}

	b.WriteString("</svg>")
	return b.String()
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
