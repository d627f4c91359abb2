// Package music implements the pure value types and arithmetic of the
// notation pipeline's music model: pitch classes, intervals, fractional
// durations and their reduction to engraved glyph shapes.
package music

// Diatonic is one of the seven natural note letters, C through B.
type Diatonic int

const (
	C Diatonic = iota
	D
	E
	F
	G
	A
	B
)

var diatonicChromatic = [7]int{0, 2, 4, 5, 7, 9, 11}

// Degree returns the diatonic scale degree, 0 (C) through 6 (B).
func (d Diatonic) Degree() int {
	return int(d)
}

// Chromatic returns the semitone offset of the natural note from C,
// with no accidental applied.
func (d Diatonic) Chromatic() int {
	return diatonicChromatic[d]
}

// Accidental alters a diatonic pitch class by a number of semitones.
type Accidental int

const (
	Natural Accidental = iota
	Sharp
	Flat
	DoubleSharp
	DoubleFlat
)

// Semitones returns the number of semitones an accidental adds (positive)
// or removes (negative) from the natural pitch class.
func (a Accidental) Semitones() int {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	case DoubleSharp:
		return 2
	case DoubleFlat:
		return -2
	default:
		return 0
	}
}

func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "♯"
	case Flat:
		return "♭"
	case DoubleSharp:
		return "𝄪"
	case DoubleFlat:
		return "𝄫"
	default:
		return "♮"
	}
}

// PitchClass pairs a diatonic letter with an optional accidental. A nil
// Accidental means no accidental was written at all, which is distinct
// from an explicit natural (♮).
type PitchClass struct {
	Diatonic   Diatonic
	Accidental *Accidental
}

// Chromatic returns chromatic(diatonic) + accidental.semitones(), not
// reduced modulo 12; the caller decides whether and how to reduce it.
func (pc PitchClass) Chromatic() int {
	c := pc.Diatonic.Chromatic()
	if pc.Accidental != nil {
		c += pc.Accidental.Semitones()
	}
	return c
}

// Pitch is a pitch class at a specific octave. Middle C is octave 0.
type Pitch struct {
	Class  PitchClass
	Octave int
}

// MIDI returns the MIDI note number for this pitch: 60 + 12*octave +
// chromatic(pitch_class).
func (p Pitch) MIDI() int {
	return 60 + 12*p.Octave + p.Class.Chromatic()
}

// Interval is the signed distance between two pitches, kept as a
// diatonic-degree component and an independent accidental-semitone
// component, so that intervals compose additively along a pitch chain.
type Interval struct {
	PitchClasses        int // signed diatonic degree distance, scaled by 7 per octave
	AccidentalSemitones int // signed accidental-semitone distance
}

// IntervalTo returns the interval from p to other: other - p.
func (p Pitch) IntervalTo(other Pitch) Interval {
	a := p.Octave*7 + p.Class.Diatonic.Degree()
	b := other.Octave*7 + other.Class.Diatonic.Degree()

	var as, bs int
	if p.Class.Accidental != nil {
		as = p.Class.Accidental.Semitones()
	}
	if other.Class.Accidental != nil {
		bs = other.Class.Accidental.Semitones()
	}

	return Interval{
		PitchClasses:        b - a,
		AccidentalSemitones: bs - as,
	}
}
