package music

// Metre is a time signature, numerator over denominator.
type Metre struct {
	Num int
	Den int
}

// Mode is the scale mode carried by a key signature.
type Mode int

const (
	Major Mode = iota
	Minor
	NaturalMode
	Lydian
	Ionian
	Mixolydian
	Dorian
	Aeolian
	Phrygian
	Locrian
)

// KeySignature is a tonic pitch class plus a mode. Mode defaults to
// Major when none is given in the source text.
type KeySignature struct {
	Tonic PitchClass
	Mode  Mode
}

// Barline records the shape of a bar line as parsed: which side(s) of
// it carry a repeat marker, whether it was a single plain bar, and an
// optional n-time ("played Nth time") annotation. The n-time value is
// recorded but never rendered (see design notes).
type Barline struct {
	RepeatBefore bool
	RepeatAfter  bool
	Single       bool
	NTime        *int
}

// Note pairs a pitch with its fully-resolved fractional duration.
type Note struct {
	Pitch    Pitch
	Duration FractionalDuration
}

// ClefShape identifies which clef glyph is drawn. Only the treble clef
// is modelled; see spec non-goals.
type ClefShape int

const (
	Treble ClefShape = iota
)

// Clef anchors the vertical layout of a stave: Centre is the staff
// position (line/space index) occupied by Pitch.
type Clef struct {
	Shape  ClefShape
	Centre int
	Pitch  Pitch
}

// TrebleClef returns the standard treble clef: centred on the G above
// middle C, at staff position 2.
func TrebleClef() Clef {
	return Clef{
		Shape:  Treble,
		Centre: 2,
		Pitch:  Pitch{Class: PitchClass{Diatonic: G}, Octave: 0},
	}
}
