// Package pipeline exposes the core notation pipeline's external
// contract: pure functions over ABC source text that downstream
// collaborators (an HTTP server, a CLI, a tune cache) can call without
// depending on the lexer, AST, or engraver packages directly.
package pipeline

import (
	"github.com/afandian/folktunefinder-go/internal/notation/ast"
	"github.com/afandian/folktunefinder-go/internal/notation/engrave"
	"github.com/afandian/folktunefinder-go/internal/notation/lexer"
)

// AbcToAst lexes and builds text into a Tune. Lexical errors are
// silently discarded by the AST builder; callers that need them
// should call FormatErrors separately over the same text.
func AbcToAst(text string) ast.Tune {
	return ast.BuildFromText(text)
}

// AstToSvg runs the engraver over a Tune and returns its SVG document.
func AstToSvg(tune ast.Tune) string {
	return engrave.SVG(tune)
}

// ErrorReport is the result of rendering a text's lexical errors: how
// many were found, how many were folded into an "unshown" counter
// because they collided on the same line and column as an
// already-rendered one, and the rendered report text itself.
type ErrorReport struct {
	Count   int
	Unshown int
	Report  string
}

// FormatErrors lexes chars to completion, collecting every LexError,
// and renders them via the diagnostics package.
func FormatErrors(chars []rune) ErrorReport {
	l := lexer.New(chars)
	var diags []lexer.Diagnostic
	for {
		res := l.Next()
		if res.Kind == lexer.ResultTerminal {
			break
		}
		if res.Kind == lexer.ResultError {
			diags = append(diags, lexer.Diagnostic{Offset: res.ErrorOffset, Err: *res.Err})
		}
	}

	unshown := countCollisions(chars, diags)
	return ErrorReport{
		Count:   len(diags),
		Unshown: unshown,
		Report:  lexer.FormatReport(chars, diags),
	}
}

// FormatErrorsFromText is a convenience wrapper over FormatErrors for
// callers holding a string rather than a rune slice.
func FormatErrorsFromText(text string) ErrorReport {
	return FormatErrors([]rune(text))
}

// countCollisions mirrors the diagnostics renderer's own folding rule:
// when two or more errors land on the same (line, column), only the
// first is rendered and the rest increment the unshown counter.
func countCollisions(source []rune, diags []lexer.Diagnostic) int {
	type pos struct{ line, col int }
	seen := map[pos]bool{}
	unshown := 0
	for _, d := range diags {
		line, col := 0, 0
		for i := 0; i < d.Offset && i < len(source); i++ {
			if source[i] == '\n' {
				line++
				col = 0
			} else {
				col++
			}
		}
		p := pos{line, col}
		if seen[p] {
			unshown++
			continue
		}
		seen[p] = true
	}
	return unshown
}
