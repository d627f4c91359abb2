package engrave

import "github.com/afandian/folktunefinder-go/internal/music"

// Vertical layout constants. PositionSpacing is the distance between
// adjacent staff positions (a position is a line or a space, so a
// standard 5-line staff spans 9 positions); StaveGap separates
// consecutive staves vertically.
const (
	PositionSpacing = 5.0
	StaveGap        = 120.0
	StaveLineCount  = 9
	NoteHeadRadius  = HeadWidth / 2.0
	StemHeight      = 35.0
	DotRadius       = 1.5
	TailLength      = 8.0
)

// RenderPage renders a laid-out Page to an SVG document.
func RenderPage(page Page) string {
	d := NewDrawing()
	y := 0.0
	for _, stave := range page.Staves {
		renderStave(d, stave, y)
		y += StaveGap
	}
	return d.Render()
}

// staveBaselineY returns the y-coordinate of staff position 0 (the
// bottom line) for a stave whose top edge is at staveTop.
func staveBaselineY(staveTop float64) float64 {
	return staveTop + float64(StaveLineCount-1)*PositionSpacing
}

func positionY(staveTop float64, position int) float64 {
	return staveBaselineY(staveTop) - float64(position)*PositionSpacing
}

func renderStave(d *Drawing, stave Stave, staveTop float64) {
	// Stave lines: of the 9 equally spaced positions, render a line on
	// alternate positions (the 5 line positions of a standard staff).
	for pos := 0; pos < StaveLineCount; pos += 2 {
		y := positionY(staveTop, pos)
		d.Line(0, y, stave.Width, y)
	}

	for _, e := range stave.Entities {
		renderEntity(d, e, staveTop)
	}

	renderBeams(d, stave, staveTop)
}

func renderEntity(d *Drawing, e Entity, staveTop float64) {
	switch e.Glyph.Kind {
	case GlyphClef:
		y := positionY(staveTop, e.Glyph.Clef.Centre)
		d.Text(e.X, y, "𝄞")
	case GlyphSingleBar:
		d.FilledRect(e.X, staveBaselineY(staveTop)-8*PositionSpacing, WidthSingleBar, 8*PositionSpacing)
	case GlyphDoubleBar:
		d.FilledRect(e.X, staveBaselineY(staveTop)-8*PositionSpacing, 1, 8*PositionSpacing)
		d.FilledRect(e.X+WidthDoubleBar-1, staveBaselineY(staveTop)-8*PositionSpacing, 1, 8*PositionSpacing)
	case GlyphEndBar:
		d.FilledRect(e.X, staveBaselineY(staveTop)-8*PositionSpacing, 1, 8*PositionSpacing)
		d.FilledRect(e.X+WidthEndBar-3, staveBaselineY(staveTop)-8*PositionSpacing, 3, 8*PositionSpacing)
	case GlyphOpenRepeat:
		d.FilledRect(e.X, staveBaselineY(staveTop)-8*PositionSpacing, 3, 8*PositionSpacing)
		d.Circle(e.X+8, staveBaselineY(staveTop)-5*PositionSpacing, 2, true)
		d.Circle(e.X+8, staveBaselineY(staveTop)-3*PositionSpacing, 2, true)
	case GlyphCloseRepeat:
		d.Circle(e.X+2, staveBaselineY(staveTop)-5*PositionSpacing, 2, true)
		d.Circle(e.X+2, staveBaselineY(staveTop)-3*PositionSpacing, 2, true)
		d.FilledRect(e.X+7, staveBaselineY(staveTop)-8*PositionSpacing, 3, 8*PositionSpacing)
	case GlyphBeamBreak:
		// Zero-width marker consumed only by beam grouping; nothing to
		// render.
	case GlyphNoteHead:
		renderNoteHead(d, e, staveTop)
	}
}

func renderNoteHead(d *Drawing, e Entity, staveTop float64) {
	y := positionY(staveTop, e.Glyph.Position)
	x := e.X + NoteHeadRadius

	if e.Glyph.Duration == nil {
		d.Text(x, y, "?")
		return
	}

	shape := e.Glyph.Duration.Shape
	filled := shape != music.Semibreve
	d.Circle(x, y, NoteHeadRadius, filled)

	if shape != music.Semibreve {
		d.Line(x+NoteHeadRadius, y, x+NoteHeadRadius, y-StemHeight)
	}

	for i := 0; i < e.Glyph.Duration.Dots; i++ {
		dotX := x + NoteHeadRadius + 4 + float64(i)*5
		d.Circle(dotX, y, DotRadius, true)
	}
}

func tailAnchorX(e Entity) float64 {
	return e.X + NoteHeadRadius
}

// renderBeams draws a beam rectangle across each run of consecutive
// beamable noteheads bounded by a BeamBreak or the end of the stave.
func renderBeams(d *Drawing, stave Stave, staveTop float64) {
	var start, end *int
	finalize := func() {
		if start != nil && end != nil && *start != *end {
			startEntity := stave.Entities[*start]
			endEntity := stave.Entities[*end]
			y := positionY(staveTop, startEntity.Glyph.Position) - StemHeight
			d.FilledRect(tailAnchorX(startEntity), y-2, tailAnchorX(endEntity)-tailAnchorX(startEntity), 4)
		}
		start, end = nil, nil
	}

	for i, e := range stave.Entities {
		if e.Glyph.Kind == GlyphNoteHead && e.Glyph.Duration != nil && e.Glyph.Duration.Shape.Beams() > 0 {
			idx := i
			if start == nil {
				start = &idx
			}
			end = &idx
			continue
		}
		if e.Glyph.Kind == GlyphBeamBreak {
			finalize()
		}
	}
	finalize()
}
