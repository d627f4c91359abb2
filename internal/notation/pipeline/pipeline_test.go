package pipeline

import (
	"strings"
	"testing"
)

func TestAbcToAstToSvgRoundTrip(t *testing.T) {
	tune := AbcToAst("T:Example\nK:C\nCDEFGABc|\n")
	svg := AstToSvg(tune)
	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("svg = %q, want it to start with <svg", svg[:20])
	}
}

func TestFormatErrorsFromTextReportsExpectedNumber(t *testing.T) {
	report := FormatErrorsFromText("M:6/\n")
	if report.Count != 1 {
		t.Fatalf("count = %d, want 1", report.Count)
	}
	if report.Unshown != 0 {
		t.Fatalf("unshown = %d, want 0", report.Unshown)
	}
	if !strings.Contains(report.Report, "I expected to find a number here") {
		t.Errorf("report = %q", report.Report)
	}

	lines := strings.Split(report.Report, "\n")
	var sawGutter, sawCaret, sawCorner bool
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "   M:6/"):
			sawGutter = true
		case strings.HasPrefix(line, "!  ") && strings.Contains(line, "▲"):
			sawCaret = true
		case strings.HasPrefix(line, "!  ") && strings.Contains(line, "┗━"):
			sawCorner = true
		}
	}
	if !sawGutter {
		t.Errorf("report = %q, want the source line prefixed with three spaces", report.Report)
	}
	if !sawCaret {
		t.Errorf("report = %q, want a '!  '-prefixed row with a '▲' caret", report.Report)
	}
	if !sawCorner {
		t.Errorf("report = %q, want a '!  '-prefixed row with a '┗━' connector to the message", report.Report)
	}
}

func TestFormatErrorsNoErrors(t *testing.T) {
	report := FormatErrorsFromText("K:C\nCDE\n")
	if report.Count != 0 || report.Report != "" {
		t.Errorf("report = %+v, want empty", report)
	}
}
