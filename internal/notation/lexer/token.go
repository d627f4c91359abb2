package lexer

import "github.com/afandian/folktunefinder-go/internal/music"

// Kind tags which variant of Token this is. Every variant is plain
// data held directly on Token rather than behind an interface
// hierarchy, per the tagged-union shape spec.md §9 calls for.
type Kind int

const (
	Newline Kind = iota
	BeamBreak

	HeaderArea
	HeaderBook
	HeaderComposer
	HeaderDiscography
	HeaderFilename
	HeaderGroup
	HeaderHistory
	HeaderInformation
	HeaderNotes
	HeaderOrigin
	HeaderRhythm
	HeaderSource
	HeaderTitle
	HeaderWords
	HeaderX
	HeaderTranscription

	MetreToken
	KeySignatureToken
	DefaultNoteLengthToken
	BarlineToken
	NoteToken
)

// Token is a single lexed unit. Only the fields relevant to Kind are
// populated; the rest hold zero values.
type Token struct {
	Kind Kind

	// HeaderXxx
	Text string

	Metre  music.Metre
	Key    music.KeySignature
	Length music.FractionalDuration
	Bar    music.Barline
	Note   music.Note
}

// textHeaderLetters maps the single-letter header field codes to their
// token Kind, in the order spec.md §4.2 lists them: A B C D F G H I N O
// R S T W X Z. R and S follow the ABC convention of Rhythm and Source
// respectively (spec.md's variant list names "Source" but omits
// "Rhythm" outright; seeding both from the standard field meanings
// keeps every listed letter mapped to a distinct variant).
var textHeaderLetters = map[rune]Kind{
	'A': HeaderArea,
	'B': HeaderBook,
	'C': HeaderComposer,
	'D': HeaderDiscography,
	'F': HeaderFilename,
	'G': HeaderGroup,
	'H': HeaderHistory,
	'I': HeaderInformation,
	'N': HeaderNotes,
	'O': HeaderOrigin,
	'R': HeaderRhythm,
	'S': HeaderSource,
	'T': HeaderTitle,
	'W': HeaderWords,
	'X': HeaderX,
	'Z': HeaderTranscription,
}

// The structured header field letters: those with their own
// sub-grammars (K, L, M) or that are recognised but not implemented
// (P, Q).
const (
	fieldKey               = 'K'
	fieldDefaultNoteLength = 'L'
	fieldMetre             = 'M'
	fieldParts             = 'P'
	fieldTempo             = 'Q'
)
