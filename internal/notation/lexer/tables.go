package lexer

import "github.com/afandian/folktunefinder-go/internal/music"

// This file holds the ordered, longest-match-first tables used by the
// various field sub-lexers, per spec.md §9's note that cascades of
// "try prefix A, else prefix B" should be consulted from a single table
// rather than open-coded as chains of if/else.

type accidentalEntry struct {
	symbol string
	value  music.Accidental
}

// accidentalTable is tried in order; word forms before double-char
// symbol forms before single-char forms. No word form is a prefix of
// another, so their order within the group does not matter.
var accidentalTable = []accidentalEntry{
	{"flat", music.Flat},
	{"sharp", music.Sharp},
	{"natural", music.Natural},
	{"ff", music.DoubleFlat},
	{"ss", music.DoubleSharp},
	{"bb", music.DoubleFlat},
	{"##", music.DoubleSharp},
	{"♯♯", music.DoubleSharp},
	{"♭♭", music.DoubleFlat},
	{"f", music.Flat},
	{"s", music.Sharp},
	{"b", music.Flat},
	{"#", music.Sharp},
	{"♯", music.Sharp},
	{"♭", music.Flat},
	{"=", music.Natural},
	{"♮", music.Natural},
}

type modeEntry struct {
	symbol string
	value  music.Mode
}

// modeTable: long names first, then their three-letter abbreviations.
var modeTable = []modeEntry{
	{"lydian", music.Lydian},
	{"ionian", music.Ionian},
	{"mixolydian", music.Mixolydian},
	{"dorian", music.Dorian},
	{"aeolian", music.Aeolian},
	{"phrygian", music.Phrygian},
	{"locrian", music.Locrian},
	{"major", music.Major},
	{"minor", music.Minor},
	{"lyd", music.Lydian},
	{"ion", music.Ionian},
	{"mix", music.Mixolydian},
	{"dor", music.Dorian},
	{"aeo", music.Aeolian},
	{"phr", music.Phrygian},
	{"loc", music.Locrian},
	{"maj", music.Major},
	{"min", music.Minor},
}

type barlineEntry struct {
	symbol string
	bar    music.Barline
}

// barlineTable enumerates the recognised combinations of '|', ':' and
// ']', longest first.
var barlineTable = []barlineEntry{
	{":|:", music.Barline{RepeatBefore: true, RepeatAfter: true}},
	{"::", music.Barline{RepeatBefore: true, RepeatAfter: true}},
	{"|:", music.Barline{RepeatAfter: true}},
	{":|", music.Barline{RepeatBefore: true}},
	{"||", music.Barline{}},
	{"|]", music.Barline{}},
	{"|", music.Barline{Single: true}},
}

type noteAccidentalEntry struct {
	symbol string
	value  music.Accidental
}

// noteAccidentalTable covers the note-level accidental marks, which use
// a distinct, narrower symbol set from key-signature accidentals.
var noteAccidentalTable = []noteAccidentalEntry{
	{"^^", music.DoubleSharp},
	{"__", music.DoubleFlat},
	{"^", music.Sharp},
	{"_", music.Flat},
	{"=", music.Natural},
}
