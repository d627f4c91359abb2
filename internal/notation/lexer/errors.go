package lexer

import "fmt"

// ErrorKind is the closed taxonomy of lexical errors from spec.md §7.
type ErrorKind int

const (
	ExpectedDelimiter ErrorKind = iota
	ExpectedColon
	ExpectedFieldType
	ExpectedSlashInMetre
	ExpectedSlashInNoteLength
	ExpectedNumber
	NumberTooLong
	PrematureEnd
	UnexpectedHeaderLine
	UnexpectedBodyChar
	UnrecognisedKeyNote
	UnrecognisedBarline
	UnrecognisedNote
	UnimplementedError
)

// NumberRole names the field a numeric-parse error occurred in, for
// role-specific diagnostic guidance.
type NumberRole int

const (
	NoRole NumberRole = iota
	UpperTimeSignature
	LowerTimeSignature
	NoteDurationNumerator
	NoteDurationDenomenator
	UpperDefaultNoteLength
	LowerDefaultNoteLength
	NTimeBar
)

func (r NumberRole) String() string {
	switch r {
	case UpperTimeSignature:
		return "the upper number of a time signature"
	case LowerTimeSignature:
		return "the lower number of a time signature"
	case NoteDurationNumerator:
		return "a note duration's numerator"
	case NoteDurationDenomenator:
		return "a note duration's denominator"
	case UpperDefaultNoteLength:
		return "the upper number of a default note length"
	case LowerDefaultNoteLength:
		return "the lower number of a default note length"
	case NTimeBar:
		return "a bar line's n-time number"
	default:
		return "a number"
	}
}

// During names the field being lexed when input ran out.
type During int

const (
	NoDuring During = iota
	DuringMetre
	DuringHeader
	DuringKeySignature
	DuringDefaultNoteLength
)

func (d During) String() string {
	switch d {
	case DuringMetre:
		return "a time signature"
	case DuringHeader:
		return "a header"
	case DuringKeySignature:
		return "a key signature"
	case DuringDefaultNoteLength:
		return "a default note length"
	default:
		return "input"
	}
}

// LexError is one member of the closed error taxonomy. Not every field
// is meaningful for every Kind; Message shows which fields each Kind uses.
type LexError struct {
	Kind   ErrorKind
	Char   rune
	Role   NumberRole
	During During
	ID     rune
}

// Error implements the error interface by returning the same
// role-aware diagnostic text as Message.
func (e LexError) Error() string {
	return e.Message()
}

// Message returns the human-readable diagnostic text for this error,
// including role- or character-specific guidance where relevant.
func (e LexError) Message() string {
	switch e.Kind {
	case ExpectedDelimiter:
		return fmt.Sprintf("I expected to find the character %q here.", e.Char)
	case ExpectedColon:
		return "I expected to find a ':' here."
	case ExpectedFieldType:
		return fmt.Sprintf("I didn't recognise %q as a header field type.", e.Char)
	case ExpectedSlashInMetre:
		return "I expected to find a '/' here, to separate a time signature's two numbers."
	case ExpectedSlashInNoteLength:
		return "I expected to find a '/' here, to separate a default note length's two numbers."
	case ExpectedNumber:
		return "I expected to find a number here. That number should be " + e.Role.String() + "."
	case NumberTooLong:
		return "That number is too long (more than 8 digits) for " + e.Role.String() + "."
	case PrematureEnd:
		return "The input ended in the middle of " + e.During.String() + "."
	case UnexpectedHeaderLine:
		return "I didn't recognise this as a header line."
	case UnexpectedBodyChar:
		return fmt.Sprintf("I didn't recognise %q here in the tune body.", e.Char)
	case UnrecognisedKeyNote:
		return "I expected to find a key signature's tonic note letter here."
	case UnrecognisedBarline:
		return "I didn't recognise this as a bar line."
	case UnrecognisedNote:
		return "I expected to find a note here."
	case UnimplementedError:
		return fmt.Sprintf("The %q field isn't implemented yet.", e.ID)
	default:
		return "An unrecognised error occurred."
	}
}

// IsSelfRecoveringMetreNumberError reports whether this is one of the
// two metre-field number errors, which always leave the cursor already
// resynchronised at the next newline, so the top-level iterator's
// blanket one-character recovery step must be skipped for them.
func (e LexError) IsSelfRecoveringMetreNumberError() bool {
	if e.Kind != ExpectedNumber && e.Kind != NumberTooLong {
		return false
	}
	return e.Role == UpperTimeSignature || e.Role == LowerTimeSignature
}
