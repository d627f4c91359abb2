package lexer

import (
	"strconv"
	"strings"
)

// Diagnostic pairs a LexError with the rune offset into the original
// source it was produced at.
type Diagnostic struct {
	Offset int
	Err    LexError
}

// columnGroup is one erroring column's worth of diagnostics on a
// single source line: the message for the first diagnostic at that
// column, plus a count of any further diagnostics folded into it
// because they landed on the exact same column.
type columnGroup struct {
	col        int
	message    string
	collisions int
}

// FormatReport renders diagnostics against source as a sequence of
// pretty-printed blocks: the offending source line prefixed with a
// three-space gutter, followed by a pyramid of pointer rows — one per
// erroring column on that line — linked to the source by '▲', '┗' and
// '┃' connectors. When two diagnostics land on the exact same line and
// column, the later one is folded into a trailing "(+N more here)" counter
// on the first rather than repeated in full.
func FormatReport(source []rune, diagnostics []Diagnostic) string {
	if len(diagnostics) == 0 {
		return ""
	}

	lines := splitLines(source)

	var b strings.Builder
	i := 0
	for i < len(diagnostics) {
		lineNo, _ := locate(source, diagnostics[i].Offset)

		var groups []columnGroup
		j := i
		for j < len(diagnostics) {
			ln, col := locate(source, diagnostics[j].Offset)
			if ln != lineNo {
				break
			}
			if len(groups) > 0 && groups[len(groups)-1].col == col {
				groups[len(groups)-1].collisions++
			} else {
				groups = append(groups, columnGroup{col: col, message: diagnostics[j].Err.Message()})
			}
			j++
		}

		writeLineBlock(&b, lines, lineNo, groups)
		i = j
	}

	return b.String()
}

// writeLineBlock echoes one source line, prefixed with the three-space
// gutter, then a row of '▲' carets (one per erroring column) followed
// by one connector row per column. Rows are explained right-to-left so
// that a column's still-pending neighbours to its left can keep
// showing a '┃' without colliding with an already-written message.
func writeLineBlock(b *strings.Builder, lines [][]rune, lineNo int, groups []columnGroup) {
	b.WriteString("   ")
	if lineNo < len(lines) {
		b.WriteString(string(lines[lineNo]))
	}
	b.WriteString("\n")

	b.WriteString("!  ")
	b.WriteString(caretRow(groups))
	b.WriteString("\n")

	for m := len(groups) - 1; m >= 0; m-- {
		b.WriteString("!  ")
		row := []rune(strings.Repeat(" ", groups[m].col))
		for idx := 0; idx < m; idx++ {
			row[groups[idx].col] = '┃'
		}
		b.WriteString(string(row))
		b.WriteString("┗━ ")
		b.WriteString(groups[m].message)
		if groups[m].collisions > 0 {
			b.WriteString(" (+")
			b.WriteString(strconv.Itoa(groups[m].collisions))
			b.WriteString(" more here)")
		}
		b.WriteString("\n")
	}
}

// caretRow renders a single '▲' at every erroring column on the line.
func caretRow(groups []columnGroup) string {
	maxCol := 0
	for _, g := range groups {
		if g.col > maxCol {
			maxCol = g.col
		}
	}
	row := []rune(strings.Repeat(" ", maxCol+1))
	for _, g := range groups {
		row[g.col] = '▲'
	}
	return string(row)
}

func splitLines(source []rune) [][]rune {
	var lines [][]rune
	start := 0
	for i, r := range source {
		if r == '\n' {
			lines = append(lines, source[start:i])
			start = i + 1
		}
	}
	lines = append(lines, source[start:])
	return lines
}

// locate converts a rune offset into a zero-based (line, column) pair.
func locate(source []rune, offset int) (line, col int) {
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

// FormatErrors runs a Lexer to completion over chars and renders every
// error it produces via FormatReport. It never returns tokens; callers
// that also need the token stream should drive a Lexer directly.
func FormatErrors(chars []rune) string {
	l := New(chars)
	var diags []Diagnostic
	for {
		res := l.Next()
		if res.Kind == ResultTerminal {
			break
		}
		if res.Kind == ResultError {
			diags = append(diags, Diagnostic{Offset: res.ErrorOffset, Err: *res.Err})
		}
	}
	return FormatReport(chars, diags)
}

// FormatErrorsFromText is a convenience wrapper over FormatErrors for
// callers holding a string rather than a rune slice.
func FormatErrorsFromText(text string) string {
	return FormatErrors([]rune(text))
}
