// Package engrave turns an AST tune into a page of laid-out staves and
// renders that page as an SVG document. It is a strict three-stage
// pipeline: tokens to entities, entities to positioned entities
// (layout), positioned entities to an SVG drawing.
package engrave

import "github.com/afandian/folktunefinder-go/internal/music"

// GlyphKind tags which Glyph variant an Entity carries.
type GlyphKind int

const (
	GlyphSingleBar GlyphKind = iota
	GlyphDoubleBar
	GlyphEndBar
	GlyphOpenRepeat
	GlyphCloseRepeat
	GlyphNoteHead
	GlyphClef
	GlyphBeamBreak
)

// Glyph is a tagged union over every engraved mark. Only the fields
// relevant to Kind are populated.
type Glyph struct {
	Kind GlyphKind

	// GlyphNoteHead
	Position int
	Duration *music.DurationGlyph // nil means an unresolvable duration; rendered as "?"

	// GlyphClef
	Clef music.Clef
}

// Entity is a glyph plus its computed horizontal position on its
// stave. X is the only field ever written after construction, by the
// layout pass.
type Entity struct {
	Glyph Glyph
	X     float64
}

// Stave is a single horizontal line of laid-out entities.
type Stave struct {
	Entities []Entity
	// Width is the stave's actual rendered width: front + scaled
	// middle + end, not necessarily the STAVE_WIDTH target.
	Width float64
}

// Page is the engraver's final structural output, consumed only by
// the rendering stage.
type Page struct {
	Staves []Stave
}

// Intrinsic widths, in stave units, used by the layout pass.
const (
	WidthClef        = 50
	WidthSingleBar   = 1
	WidthDoubleBar   = 3
	WidthEndBar      = 8
	WidthOpenRepeat  = 20
	WidthCloseRepeat = 10
	WidthBeamBreak   = 0
	HeadWidth        = 10
)

// IntrinsicWidth returns a glyph's unscaled width in stave units.
func IntrinsicWidth(g Glyph) float64 {
	switch g.Kind {
	case GlyphSingleBar:
		return WidthSingleBar
	case GlyphDoubleBar:
		return WidthDoubleBar
	case GlyphEndBar:
		return WidthEndBar
	case GlyphOpenRepeat:
		return WidthOpenRepeat
	case GlyphCloseRepeat:
		return WidthCloseRepeat
	case GlyphBeamBreak:
		return WidthBeamBreak
	case GlyphClef:
		return WidthClef
	case GlyphNoteHead:
		dots := 0
		if g.Duration != nil {
			dots = g.Duration.Dots
		}
		return 2*HeadWidth + float64(dots)*HeadWidth
	default:
		return 0
	}
}

// isFrontOrEndMatter reports whether a glyph kind participates in the
// fixed-scale leading or trailing run of a stave (clef, any bar-like
// glyph).
func isFrontOrEndMatter(kind GlyphKind) bool {
	switch kind {
	case GlyphClef, GlyphSingleBar, GlyphDoubleBar, GlyphEndBar, GlyphOpenRepeat, GlyphCloseRepeat:
		return true
	default:
		return false
	}
}
