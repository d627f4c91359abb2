package lexer

import (
	"strings"
	"testing"

	"github.com/afandian/folktunefinder-go/internal/music"
)

func collect(t *testing.T, text string) ([]Token, []LexError) {
	t.Helper()
	l := New([]rune(text))
	var toks []Token
	var errs []LexError
	for {
		res := l.Next()
		switch res.Kind {
		case ResultTerminal:
			return toks, errs
		case ResultError:
			errs = append(errs, *res.Err)
		case ResultTokens:
			toks = append(toks, res.Tokens...)
		}
	}
}

func TestHeaderSmokeTest(t *testing.T) {
	text := "X:1\nT:The Example\nC:A. Composer\nM:4/4\nL:1/8\nK:C\n"
	toks, errs := collect(t, text)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}

	wantKinds := []Kind{HeaderX, HeaderTitle, HeaderComposer, MetreToken, DefaultNoteLengthToken, KeySignatureToken}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[1].Text != "The Example" {
		t.Errorf("title text = %q", toks[1].Text)
	}
	if toks[3].Metre.Num != 4 || toks[3].Metre.Den != 4 {
		t.Errorf("metre = %+v", toks[3].Metre)
	}
	if toks[5].Key.Tonic.Diatonic != music.C {
		t.Errorf("key tonic = %+v", toks[5].Key.Tonic)
	}
}

func TestMetreShorthands(t *testing.T) {
	cases := []struct {
		text   string
		numDen [2]int
	}{
		{"M:C\nK:C\n", [2]int{4, 4}},
		{"M:C|\nK:C\n", [2]int{2, 4}},
		{"M:2/4\nK:C\n", [2]int{2, 4}},
		{"M:200/400\nK:C\n", [2]int{200, 400}},
	}
	for _, c := range cases {
		toks, errs := collect(t, c.text)
		if len(errs) != 0 {
			t.Fatalf("text %q: unexpected errors: %+v", c.text, errs)
		}
		var found bool
		for _, tok := range toks {
			if tok.Kind == MetreToken {
				found = true
				if tok.Metre.Num != c.numDen[0] || tok.Metre.Den != c.numDen[1] {
					t.Errorf("text %q: metre = %+v, want %v", c.text, tok.Metre, c.numDen)
				}
			}
		}
		if !found {
			t.Errorf("text %q: no metre token produced", c.text)
		}
	}
}

func TestMetreNumberTooLong(t *testing.T) {
	_, errs := collect(t, "M:20000000000/1\nK:C\n")
	if len(errs) != 1 || errs[0].Kind != NumberTooLong {
		t.Fatalf("errs = %+v, want one NumberTooLong", errs)
	}
	if errs[0].Role != UpperTimeSignature {
		t.Errorf("role = %v, want UpperTimeSignature", errs[0].Role)
	}
}

func TestEmptyInputProducesNothing(t *testing.T) {
	toks, errs := collect(t, "")
	if len(toks) != 0 || len(errs) != 0 {
		t.Fatalf("empty input should produce nothing, got toks=%+v errs=%+v", toks, errs)
	}
}

func TestMetreErrorRecovery(t *testing.T) {
	// A malformed M: field (missing denominator) should not stop the
	// lexer seeing the following header line.
	text := "T:Title\nM:6/\nC:Composer\n"
	toks, errs := collect(t, text)
	if len(errs) != 1 {
		t.Fatalf("errs = %+v, want exactly one", errs)
	}
	if errs[0].Kind != ExpectedNumber || errs[0].Role != LowerTimeSignature {
		t.Errorf("err = %+v, want ExpectedNumber/LowerTimeSignature", errs[0])
	}

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	wantKinds := []Kind{HeaderTitle, HeaderComposer}
	if len(kinds) != len(wantKinds) {
		t.Fatalf("kinds = %+v, want %+v", kinds, wantKinds)
	}
	for i, k := range wantKinds {
		if kinds[i] != k {
			t.Errorf("kind %d = %v, want %v", i, kinds[i], k)
		}
	}
}

func TestBarlines(t *testing.T) {
	cases := []struct {
		text                         string
		single, repBefore, repAfter bool
	}{
		{"|", true, false, false},
		{"|:", false, false, true},
		{":|", false, true, false},
		{":|:", false, true, true},
		{"::", false, true, true},
		{"||", false, false, false},
	}
	for _, c := range cases {
		text := "K:C\n" + c.text
		toks, errs := collect(t, text)
		if len(errs) != 0 {
			t.Fatalf("text %q: unexpected errors %+v", text, errs)
		}
		var bar Token
		var found bool
		for _, tok := range toks {
			if tok.Kind == BarlineToken {
				bar = tok
				found = true
			}
		}
		if !found {
			t.Fatalf("text %q: no barline token", text)
		}
		if bar.Bar.Single != c.single || bar.Bar.RepeatBefore != c.repBefore || bar.Bar.RepeatAfter != c.repAfter {
			t.Errorf("text %q: bar = %+v", text, bar.Bar)
		}
	}
}

func TestBarlineWithNTime(t *testing.T) {
	toks, errs := collect(t, "K:C\n|2")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	var bar Token
	for _, tok := range toks {
		if tok.Kind == BarlineToken {
			bar = tok
		}
	}
	if bar.Bar.NTime == nil || *bar.Bar.NTime != 2 {
		t.Errorf("bar.NTime = %+v, want pointer to 2", bar.Bar.NTime)
	}
}

func TestNoteScaleChromatic(t *testing.T) {
	toks, errs := collect(t, "K:C\n^C_D=E")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	var notes []Token
	for _, tok := range toks {
		if tok.Kind == NoteToken {
			notes = append(notes, tok)
		}
	}
	if len(notes) != 3 {
		t.Fatalf("got %d notes, want 3: %+v", len(notes), notes)
	}
	if notes[0].Note.Pitch.Class.Accidental == nil || *notes[0].Note.Pitch.Class.Accidental != music.Sharp {
		t.Errorf("note 0 accidental = %+v, want sharp", notes[0].Note.Pitch.Class.Accidental)
	}
	if notes[1].Note.Pitch.Class.Accidental == nil || *notes[1].Note.Pitch.Class.Accidental != music.Flat {
		t.Errorf("note 1 accidental = %+v, want flat", notes[1].Note.Pitch.Class.Accidental)
	}
	if notes[2].Note.Pitch.Class.Accidental == nil || *notes[2].Note.Pitch.Class.Accidental != music.Natural {
		t.Errorf("note 2 accidental = %+v, want natural", notes[2].Note.Pitch.Class.Accidental)
	}
}

func TestNoteDurationShorthand(t *testing.T) {
	cases := []struct {
		text   string
		numDen [2]int
	}{
		{"K:C\nC", [2]int{1, 1}},
		{"K:C\nC/", [2]int{1, 2}},
		{"K:C\nC/4", [2]int{1, 4}},
		{"K:C\nC3/2", [2]int{3, 2}},
		{"K:C\nC2", [2]int{2, 1}},
	}
	for _, c := range cases {
		toks, errs := collect(t, c.text)
		if len(errs) != 0 {
			t.Fatalf("text %q: unexpected errors %+v", c.text, errs)
		}
		var note Token
		var found bool
		for _, tok := range toks {
			if tok.Kind == NoteToken {
				note = tok
				found = true
			}
		}
		if !found {
			t.Fatalf("text %q: no note token", c.text)
		}
		if note.Note.Duration.Num != c.numDen[0] || note.Note.Duration.Den != c.numDen[1] {
			t.Errorf("text %q: duration = %+v, want %v", c.text, note.Note.Duration, c.numDen)
		}
	}
}

func TestErrorReportText(t *testing.T) {
	report := FormatErrorsFromText("T:Title\nM:6/\n")
	if report == "" {
		t.Fatalf("expected a non-empty error report")
	}
	if !containsSubstring(report, "I expected to find a number here") {
		t.Errorf("report = %q, want the ExpectedNumber message", report)
	}

	lines := strings.Split(report, "\n")
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
		t.Errorf("report = %q, want the source line prefixed with three spaces", report)
	}
	if !sawCaret {
		t.Errorf("report = %q, want a '!  '-prefixed row with a '▲' caret", report)
	}
	if !sawCorner {
		t.Errorf("report = %q, want a '!  '-prefixed row with a '┗━' connector to the message", report)
	}
}

func TestErrorReportPyramidsMultipleColumnsOnOneLine(t *testing.T) {
	// Two unrecognised body characters on the same line produce two
	// distinct erroring columns; the report must stack one pointer row per column rather
	// than re-echoing the source line twice.
	report := FormatErrorsFromText("K:C\nC~D~E\n")
	lines := strings.Split(report, "\n")

	sourceLineCount := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "   C~D~E") {
			sourceLineCount++
		}
	}
	if sourceLineCount > 1 {
		t.Errorf("report = %q, want the shared source line echoed only once", report)
	}
}

func containsSubstring(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
