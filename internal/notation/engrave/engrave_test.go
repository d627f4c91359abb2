package engrave

import (
	"strings"
	"testing"

	"github.com/afandian/folktunefinder-go/internal/notation/ast"
)

func TestBuildEntitiesOpensWithClef(t *testing.T) {
	tune := ast.BuildFromText("K:C\nCDE|")
	raw := BuildEntities(tune)
	if len(raw) != 1 {
		t.Fatalf("got %d staves, want 1", len(raw))
	}
	if len(raw[0].entities) == 0 || raw[0].entities[0].Glyph.Kind != GlyphClef {
		t.Fatalf("first entity = %+v, want Clef", raw[0].entities[0])
	}
}

func TestBuildEntitiesNewlineOpensNewStave(t *testing.T) {
	tune := ast.BuildFromText("K:C\nCD\nEF")
	raw := BuildEntities(tune)
	if len(raw) != 2 {
		t.Fatalf("got %d staves, want 2: %+v", len(raw), raw)
	}
	for _, stave := range raw {
		if stave.entities[0].Glyph.Kind != GlyphClef {
			t.Errorf("stave does not open with a clef: %+v", stave.entities[0])
		}
	}
}

func TestBuildEntitiesFinalDoubleBarPromotedToEndBar(t *testing.T) {
	// No trailing newline: the last stave's last entity is the bar.
	tune := ast.BuildFromText("K:C\nCDE||")
	raw := BuildEntities(tune)
	last := raw[len(raw)-1]
	finalEntity := last.entities[len(last.entities)-1]
	if finalEntity.Glyph.Kind != GlyphEndBar {
		t.Errorf("final entity = %+v, want EndBar", finalEntity)
	}
}

func TestLayoutFrontMatterAtScaleOne(t *testing.T) {
	tune := ast.BuildFromText("K:C\nCDE|\n")
	page := Engrave(tune)
	stave := page.Staves[0]

	if stave.Entities[0].X != 0 {
		t.Errorf("clef X = %v, want 0", stave.Entities[0].X)
	}
	if stave.Entities[1].X != WidthClef {
		t.Errorf("first note X = %v, want %v", stave.Entities[1].X, WidthClef)
	}
}

func TestLayoutEndMatterFlushRight(t *testing.T) {
	tune := ast.BuildFromText("K:C\nC|\n")
	page := Engrave(tune)
	stave := page.Staves[0]
	last := stave.Entities[len(stave.Entities)-1]
	if last.X+IntrinsicWidth(last.Glyph) != stave.Width {
		t.Errorf("end matter not flush: last.X=%v width=%v stave.Width=%v", last.X, IntrinsicWidth(last.Glyph), stave.Width)
	}
}

func TestRenderPageProducesWellFormedSVG(t *testing.T) {
	tune := ast.BuildFromText("K:C\nCDEF|GABc|\n")
	svg := SVG(tune)
	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("svg does not start with <svg: %q", svg[:min(40, len(svg))])
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("svg does not end with </svg>")
	}
}

func TestRenderPageIsDeterministic(t *testing.T) {
	tune := ast.BuildFromText("K:C\nCDEF GABc|\n")
	a := SVG(tune)
	b := SVG(tune)
	if a != b {
		t.Errorf("same AST produced different SVG")
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
