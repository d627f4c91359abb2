package lexer

import "github.com/afandian/folktunefinder-go/internal/music"

// ResultKind tags a LexResult.
type ResultKind int

const (
	ResultTokens ResultKind = iota
	ResultError
	ResultTerminal
)

// LexResult is one item yielded by the Lexer's iterator: either one or
// more tokens, a single positioned error, or the terminal marker.
type LexResult struct {
	Kind        ResultKind
	Ctx         Context
	Tokens      []Token
	ErrorOffset int
	Err         *LexError
}

// Lexer is a single-pass, pull-based iterator over a character slice.
// It is restartable only by constructing a new Lexer.
type Lexer struct {
	ctx             Context
	pendingRecovery bool
	exhausted       bool
}

// New builds a Lexer starting in the Header section.
func New(chars []rune) *Lexer {
	return &Lexer{ctx: NewContext(chars)}
}

// Next produces the next LexResult, terminated by ResultTerminal once
// the input is exhausted.
func (l *Lexer) Next() LexResult {
	if l.exhausted {
		return LexResult{Kind: ResultTerminal, Ctx: l.ctx}
	}

	if l.pendingRecovery {
		l.pendingRecovery = false
		if nc, _, ok := l.ctx.First(); ok {
			l.ctx = nc
		}
	}

	if l.ctx.AtEnd() {
		l.exhausted = true
		return LexResult{Kind: ResultTerminal, Ctx: l.ctx}
	}

	var result LexResult
	if l.ctx.Section() == Header {
		result = l.dispatchHeader()
	} else {
		result = l.dispatchBody()
	}

	l.ctx = result.Ctx
	if result.Kind == ResultError && result.Err != nil && !result.Err.IsSelfRecoveringMetreNumberError() {
		l.pendingRecovery = true
	}
	return result
}

func tokResult(ctx Context, tok Token) LexResult {
	return LexResult{Kind: ResultTokens, Ctx: ctx, Tokens: []Token{tok}}
}

func errResult(ctx Context, offset int, err LexError) LexResult {
	return LexResult{Kind: ResultError, Ctx: ctx, ErrorOffset: offset, Err: &err}
}

// --- Header dispatch ---

func (l *Lexer) dispatchHeader() LexResult {
	ctx := l.ctx
	startOffset := ctx.Index()

	ch, ok := ctx.PeekFirst()
	if !ok {
		return LexResult{Kind: ResultTerminal, Ctx: ctx}
	}

	if kind, isText := textHeaderLetters[ch]; isText {
		return lexTextHeader(ctx, ch, kind)
	}

	switch ch {
	case fieldKey:
		return lexStructuredHeader(ctx, func(c Context) LexResult { return lexKeySignature(c) })
	case fieldDefaultNoteLength:
		return lexStructuredHeader(ctx, func(c Context) LexResult { return lexNoteLength(c) })
	case fieldMetre:
		return lexStructuredHeader(ctx, func(c Context) LexResult { return lexMetre(c) })
	case fieldParts, fieldTempo:
		afterField, _, _ := ctx.First()
		afterColon, hasColon := afterField.ExpectChar(':')
		if !hasColon {
			return errResult(afterField, startOffset, LexError{Kind: ExpectedColon})
		}
		afterColon = afterColon.SkipWhitespace()
		afterLine, _, found := afterColon.ReadUntil('\n')
		if !found {
			return errResult(afterLine, startOffset, LexError{Kind: PrematureEnd, During: DuringHeader})
		}
		return errResult(afterLine, startOffset, LexError{Kind: UnimplementedError, ID: ch})
	default:
		afterLine, _, found := ctx.ReadUntil('\n')
		if !found {
			return errResult(afterLine, startOffset, LexError{Kind: PrematureEnd, During: DuringHeader})
		}
		return errResult(afterLine, startOffset, LexError{Kind: UnexpectedHeaderLine})
	}
}

func lexTextHeader(ctx Context, letter rune, kind Kind) LexResult {
	startOffset := ctx.Index()
	afterLetter, _, _ := ctx.First()
	afterColon, hasColon := afterLetter.ExpectChar(':')
	if !hasColon {
		return errResult(afterLetter, startOffset, LexError{Kind: ExpectedColon})
	}
	afterColon = afterColon.SkipWhitespace()
	afterLine, value, found := afterColon.ReadUntil('\n')
	if !found {
		return errResult(afterLine, startOffset, LexError{Kind: PrematureEnd, During: DuringHeader})
	}
	text := trimTrailing(value)
	return tokResult(afterLine, Token{Kind: kind, Text: text})
}

// lexStructuredHeader handles the "K:"/"L:"/"M:" prefix (colon, then
// leading spaces but not newlines) before handing off to the
// field-specific sub-lexer, which is given the cursor positioned at
// the field's content.
func lexStructuredHeader(ctx Context, sub func(Context) LexResult) LexResult {
	startOffset := ctx.Index()
	afterLetter, _, _ := ctx.First()
	afterColon, hasColon := afterLetter.ExpectChar(':')
	if !hasColon {
		return errResult(afterLetter, startOffset, LexError{Kind: ExpectedColon})
	}
	afterColon = afterColon.SkipWhitespace()
	return sub(afterColon)
}

func trimTrailing(runes []rune) string {
	end := len(runes)
	for end > 0 && (runes[end-1] == '\r' || runes[end-1] == ' ' || runes[end-1] == '\t') {
		end--
	}
	start := 0
	for start < end && (runes[start] == ' ' || runes[start] == '\t') {
		start++
	}
	return string(runes[start:end])
}

// --- M: metre ---

func lexMetre(ctx Context) LexResult {
	startOffset := ctx.Index()
	afterLine, line, found := ctx.ReadUntil('\n')
	if !found {
		return errResult(afterLine, startOffset, LexError{Kind: PrematureEnd, During: DuringMetre})
	}

	field := trimTrailing(line)
	switch field {
	case "C":
		return tokResult(afterLine, Token{Kind: MetreToken, Metre: music.Metre{Num: 4, Den: 4}})
	case "C|":
		return tokResult(afterLine, Token{Kind: MetreToken, Metre: music.Metre{Num: 2, Den: 4}})
	}

	sub := NewContext([]rune(field))
	afterNum, num, numErr := sub.ReadNumber(UpperTimeSignature)
	if numErr != nil {
		return errResult(afterLine, startOffset+afterNum.Index(), *numErr)
	}
	afterSlash, hasSlash := afterNum.ExpectChar('/')
	if !hasSlash {
		return errResult(afterLine, startOffset+afterNum.Index(), LexError{Kind: ExpectedSlashInMetre})
	}
	_, den, numErr2 := afterSlash.ReadNumber(LowerTimeSignature)
	if numErr2 != nil {
		return errResult(afterLine, startOffset+afterSlash.Index(), *numErr2)
	}
	return tokResult(afterLine, Token{Kind: MetreToken, Metre: music.Metre{Num: num, Den: den}})
}

// --- L: default note length ---

func lexNoteLength(ctx Context) LexResult {
	startOffset := ctx.Index()
	afterLine, line, found := ctx.ReadUntil('\n')
	if !found {
		return errResult(afterLine, startOffset, LexError{Kind: PrematureEnd, During: DuringDefaultNoteLength})
	}

	field := trimTrailing(line)
	sub := NewContext([]rune(field))
	afterNum, num, numErr := sub.ReadNumber(UpperDefaultNoteLength)
	if numErr != nil {
		return errResult(afterLine, startOffset+afterNum.Index(), *numErr)
	}
	afterSlash, hasSlash := afterNum.ExpectChar('/')
	if !hasSlash {
		return errResult(afterLine, startOffset+afterNum.Index(), LexError{Kind: ExpectedSlashInNoteLength})
	}
	_, den, numErr2 := afterSlash.ReadNumber(LowerDefaultNoteLength)
	if numErr2 != nil {
		return errResult(afterLine, startOffset+afterSlash.Index(), *numErr2)
	}
	return tokResult(afterLine, Token{Kind: DefaultNoteLengthToken, Length: music.FractionalDuration{Num: num, Den: den}})
}

// --- K: key signature ---

func lexKeySignature(ctx Context) LexResult {
	startOffset := ctx.Index()
	afterLine, line, found := ctx.ReadUntil('\n')
	if !found {
		return errResult(afterLine.WithSection(Body), startOffset, LexError{Kind: PrematureEnd, During: DuringKeySignature})
	}

	field := trimTrailing(line)
	sub := NewContext([]rune(field))

	letterCtx, letter, ok := sub.First()
	if !ok || !isDiatonicLetter(letter) {
		return errResult(afterLine.WithSection(Body), startOffset, LexError{Kind: UnrecognisedKeyNote})
	}
	diatonic := music.Diatonic((toUpperASCIILetter(letter) - 'A' + 5) % 7)

	accCtx := letterCtx
	var acc *music.Accidental
	for _, entry := range accidentalTable {
		if nc, matched := accCtx.StartsWithInsensitiveEager(entry.symbol); matched {
			v := entry.value
			acc = &v
			accCtx = nc
			break
		}
	}

	modeCtx := accCtx.SkipWhitespace()
	mode := music.Major
	for _, entry := range modeTable {
		if nc, matched := modeCtx.StartsWithInsensitiveEager(entry.symbol); matched {
			mode = entry.value
			modeCtx = nc
			break
		}
	}

	key := music.KeySignature{Tonic: music.PitchClass{Diatonic: diatonic, Accidental: acc}, Mode: mode}
	// Accepting a key signature, even a malformed one, flips the
	// section to Body (spec.md §4.5).
	return tokResult(afterLine.WithSection(Body), Token{Kind: KeySignatureToken, Key: key})
}

func isDiatonicLetter(r rune) bool {
	return (r >= 'A' && r <= 'G') || (r >= 'a' && r <= 'g')
}

func toUpperASCIILetter(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// --- Body dispatch ---

func (l *Lexer) dispatchBody() LexResult {
	ctx := l.ctx
	startOffset := ctx.Index()

	ch, ok := ctx.PeekFirst()
	if !ok {
		return LexResult{Kind: ResultTerminal, Ctx: ctx}
	}

	switch {
	case ch == ' ':
		nc, _, _ := ctx.First()
		return tokResult(nc, Token{Kind: BeamBreak})
	case ch == '\n':
		nc, _, _ := ctx.First()
		return tokResult(nc, Token{Kind: Newline})
	case ch == '|' || ch == ':':
		return lexBarline(ctx)
	case isNoteStart(ch):
		return lexNote(ctx)
	default:
		nc, _, _ := ctx.First()
		return errResult(nc, startOffset, LexError{Kind: UnexpectedBodyChar, Char: ch})
	}
}

func isNoteStart(r rune) bool {
	if (r >= 'A' && r <= 'G') || (r >= 'a' && r <= 'g') {
		return true
	}
	switch r {
	case '^', '_', '=':
		return true
	}
	return false
}

// --- Bar lines ---

func lexBarline(ctx Context) LexResult {
	startOffset := ctx.Index()

	var matched *barlineEntry
	var afterBar Context
	for i := range barlineTable {
		entry := &barlineTable[i]
		if nc, ok := ctx.StartsWithExact(entry.symbol); ok {
			matched = entry
			afterBar = nc
			break
		}
	}
	if matched == nil {
		nc, _, _ := ctx.First()
		return errResult(nc, startOffset, LexError{Kind: UnrecognisedBarline})
	}

	bar := matched.bar

	tryCtx := afterBar
	if bracketCtx, hadBracket := afterBar.ExpectChar('['); hadBracket {
		tryCtx = bracketCtx
	}
	if numCtx, n, ok := tryCtx.TryReadNumber(); ok {
		bar.NTime = &n
		afterBar = numCtx
	}

	return tokResult(afterBar, Token{Kind: BarlineToken, Bar: bar})
}

// --- Notes ---

func lexNote(ctx Context) LexResult {
	startOffset := ctx.Index()

	accCtx := ctx
	var acc *music.Accidental
	for _, entry := range noteAccidentalTable {
		if nc, ok := accCtx.StartsWithExact(entry.symbol); ok {
			v := entry.value
			acc = &v
			accCtx = nc
			break
		}
	}

	letterCtx, letter, ok := accCtx.First()
	if !ok {
		return errResult(ctx, startOffset, LexError{Kind: UnrecognisedNote})
	}

	var diatonic music.Diatonic
	var octave int
	switch {
	case letter >= 'A' && letter <= 'G':
		diatonic = music.Diatonic((letter - 'A' + 5) % 7)
		octave = 0
	case letter >= 'a' && letter <= 'g':
		diatonic = music.Diatonic((letter - 'a' + 5) % 7)
		octave = 1
	default:
		return errResult(ctx, startOffset, LexError{Kind: UnrecognisedNote})
	}

	modCtx := letterCtx
	if r, ok := modCtx.PeekFirst(); ok {
		switch r {
		case ',':
			nc, _, _ := modCtx.First()
			modCtx = nc
			octave--
		case '\'':
			nc, _, _ := modCtx.First()
			modCtx = nc
			octave++
		}
	}

	numCtx, num, hasNum := modCtx.TryReadNumber()
	slashCtx, hasSlash := numCtx.ExpectChar('/')
	den := 0
	hasDen := false
	finalCtx := slashCtx
	if hasSlash {
		if dCtx, d, ok := slashCtx.TryReadNumber(); ok {
			den = d
			hasDen = true
			finalCtx = dCtx
		}
	}

	var fnum, fden int
	switch {
	case !hasNum && !hasSlash:
		fnum, fden = 1, 1
	case !hasNum && hasSlash && !hasDen:
		fnum, fden = 1, 2
	case !hasNum && hasSlash && hasDen:
		fnum, fden = 1, den
	case hasNum && hasSlash && !hasDen:
		fnum, fden = num, 1
	case hasNum && hasSlash && hasDen:
		fnum, fden = num, den
	default: // hasNum && !hasSlash
		fnum, fden = num, 1
	}

	pitch := music.Pitch{Class: music.PitchClass{Diatonic: diatonic, Accidental: acc}, Octave: octave}
	note := music.Note{Pitch: pitch, Duration: music.FractionalDuration{Num: fnum, Den: fden}}
	return tokResult(finalCtx, Token{Kind: NoteToken, Note: note})
}
