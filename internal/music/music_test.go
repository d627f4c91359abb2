package music

import "testing"

func sharp() *Accidental {
	a := Sharp
	return &a
}

func TestPitchMIDIScale(t *testing.T) {
	// "CDEFGABcdefgabc'" -> 60..84 inclusive, per spec.md §8 scale scenario.
	letters := []struct {
		d Diatonic
		o int
	}{
		{C, 0}, {D, 0}, {E, 0}, {F, 0}, {G, 0}, {A, 0}, {B, 0},
		{C, 1}, {D, 1}, {E, 1}, {F, 1}, {G, 1}, {A, 1}, {B, 1},
		{C, 2},
	}
	want := []int{60, 62, 64, 65, 67, 69, 71, 72, 74, 76, 77, 79, 81, 83, 84}
	for i, l := range letters {
		p := Pitch{Class: PitchClass{Diatonic: l.d}, Octave: l.o}
		if got := p.MIDI(); got != want[i] {
			t.Errorf("note %d: MIDI() = %d, want %d", i, got, want[i])
		}
	}
}

func TestIntervalComposition(t *testing.T) {
	a := Pitch{Class: PitchClass{Diatonic: C}, Octave: 0}
	b := Pitch{Class: PitchClass{Diatonic: E, Accidental: sharp()}, Octave: 1}
	c := Pitch{Class: PitchClass{Diatonic: G}, Octave: 2}

	ab := a.IntervalTo(b).PitchClasses
	bc := b.IntervalTo(c).PitchClasses
	ac := a.IntervalTo(c).PitchClasses

	if ab+bc != ac {
		t.Errorf("interval composition failed: ab=%d bc=%d ac=%d", ab, bc, ac)
	}
}

func TestFractionalDurationArithmetic(t *testing.T) {
	x := FractionalDuration{3, 8}
	y := FractionalDuration{1, 4}

	if x.Multiply(y) != y.Multiply(x) {
		t.Errorf("multiply is not commutative")
	}

	r := x.Reduce()
	if r.Reduce() != r {
		t.Errorf("reduce is not idempotent")
	}

	if x.GTE(y) != x.Reduce().GTE(y) {
		t.Errorf("reduce changed ordering")
	}
}

func TestToGlyphDottedQuaver(t *testing.T) {
	// 3/16 = a dotted quaver: base 1/8 plus one dot of 1/16.
	d := FractionalDuration{3, 16}
	g, ok := d.ToGlyph()
	if !ok {
		t.Fatalf("ToGlyph() returned false for a positive duration")
	}
	if g.Shape != Quaver || g.Dots != 1 {
		t.Errorf("ToGlyph(3/16) = %+v, want Quaver dotted once", g)
	}
}

func TestToGlyphExactShapes(t *testing.T) {
	cases := []struct {
		d     FractionalDuration
		shape DurationShape
	}{
		{FractionalDuration{1, 1}, Semibreve},
		{FractionalDuration{1, 2}, Minim},
		{FractionalDuration{1, 4}, Crotchet},
		{FractionalDuration{1, 8}, Quaver},
		{FractionalDuration{1, 16}, Semiquaver},
		{FractionalDuration{1, 32}, Demisemiquaver},
	}
	for _, c := range cases {
		g, ok := c.d.ToGlyph()
		if !ok || g.Shape != c.shape || g.Dots != 0 {
			t.Errorf("ToGlyph(%v) = %+v, ok=%v, want {%v 0}", c.d, g, ok, c.shape)
		}
	}
}

func TestToGlyphRejectsNonPositive(t *testing.T) {
	if _, ok := (FractionalDuration{0, 1}).ToGlyph(); ok {
		t.Errorf("ToGlyph(0) should return false")
	}
}
