package engrave

import "github.com/afandian/folktunefinder-go/internal/notation/ast"

// Engrave runs all three stages of the engraver over a Tune and
// returns the finished, positioned Page.
func Engrave(tune ast.Tune) Page {
	raw := BuildEntities(tune)
	return Layout(raw)
}

// SVG runs Engrave followed by rendering, returning a complete SVG
// document for the tune.
func SVG(tune ast.Tune) string {
	return RenderPage(Engrave(tune))
}
