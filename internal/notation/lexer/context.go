// Package lexer implements a resilient, single-pass lexer for ABC
// notation text: a value-semantic character cursor, a typed token
// stream with recoverable errors, and a pretty-printed diagnostics
// renderer for the errors it produces.
package lexer

// Section tracks which half of a tune is being lexed. It flips from
// Header to Body the instant a key signature field is accepted, even
// if that field was itself malformed.
type Section int

const (
	Header Section = iota
	Body
)

// Context is an immutable cursor over a slice of runes. Every stepping
// operation returns a fresh Context; nothing is mutated in place, so a
// Context can be freely copied, stashed, and rewound by callers.
type Context struct {
	chars   []rune
	index   int
	section Section
}

// NewContext builds a cursor at the start of chars, in the Header
// section.
func NewContext(chars []rune) Context {
	return Context{chars: chars, section: Header}
}

// Index returns the cursor's current offset into the character slice.
func (c Context) Index() int {
	return c.index
}

// Len returns the total number of characters in the source.
func (c Context) Len() int {
	return len(c.chars)
}

// Section returns which part of the tune this cursor is in.
func (c Context) Section() Section {
	return c.section
}

// WithSection returns a copy of c with its section changed.
func (c Context) WithSection(s Section) Context {
	c.section = s
	return c
}

// AtEnd reports whether the cursor has consumed the whole input.
func (c Context) AtEnd() bool {
	return c.index >= len(c.chars)
}

// Has reports whether at least n characters remain.
func (c Context) Has(n int) bool {
	return c.index+n <= len(c.chars)
}

// First consumes one character, returning the advanced context and the
// character. ok is false at end of input, in which case the context is
// returned unchanged.
func (c Context) First() (Context, rune, bool) {
	if c.AtEnd() {
		return c, 0, false
	}
	ch := c.chars[c.index]
	c.index++
	return c, ch, true
}

// PeekFirst inspects the next character without advancing.
func (c Context) PeekFirst() (rune, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.chars[c.index], true
}

// Take consumes a slice of exactly n characters. ok is false (and the
// context unchanged) if fewer than n characters remain.
func (c Context) Take(n int) (Context, []rune, bool) {
	if !c.Has(n) {
		return c, nil, false
	}
	s := c.chars[c.index : c.index+n]
	c.index += n
	return c, s, true
}

// SkipWhitespace consumes a run of ASCII spaces only; it does not cross
// newlines.
func (c Context) SkipWhitespace() Context {
	for c.index < len(c.chars) && c.chars[c.index] == ' ' {
		c.index++
	}
	return c
}

// ExpectChar consumes the next character if it equals want.
func (c Context) ExpectChar(want rune) (Context, bool) {
	if r, ok := c.PeekFirst(); ok && r == want {
		nc, _, _ := c.First()
		return nc, true
	}
	return c, false
}

// StartsWithExact reports whether the cursor is positioned at an exact,
// case-sensitive match for prefix, advancing past it on success.
func (c Context) StartsWithExact(prefix string) (Context, bool) {
	pr := []rune(prefix)
	if !c.Has(len(pr)) {
		return c, false
	}
	for i, r := range pr {
		if c.chars[c.index+i] != r {
			return c, false
		}
	}
	c.index += len(pr)
	return c, true
}

// StartsWithInsensitiveEager performs a case-insensitive prefix match.
// On success it advances past the match and returns true; on failure it
// returns the original, unmodified context and false. Callers that try
// several alternative prefixes must try the longest ones first, since a
// shorter alternative that is itself a prefix of a longer one would
// otherwise dangle the cursor mid-word.
func (c Context) StartsWithInsensitiveEager(prefix string) (Context, bool) {
	pr := []rune(prefix)
	if !c.Has(len(pr)) {
		return c, false
	}
	for i, r := range pr {
		if toLowerASCII(c.chars[c.index+i]) != toLowerASCII(r) {
			return c, false
		}
	}
	c.index += len(pr)
	return c, true
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// ReadUntil returns the slice from the current index up to (but not
// including) the first occurrence of delim, advancing past delim. If
// delim is never found, it fast-forwards to end of input and returns
// false, so that error reports derived from this call point at EOF.
func (c Context) ReadUntil(delim rune) (Context, []rune, bool) {
	start := c.index
	i := c.index
	for i < len(c.chars) {
		if c.chars[i] == delim {
			c.index = i + 1
			return c, c.chars[start:i], true
		}
		i++
	}
	c.index = len(c.chars)
	return c, c.chars[start:], false
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// TryReadNumber consumes a maximal run of ASCII digits without
// requiring any; ok is false (and nothing consumed) if no digit is
// present.
func (c Context) TryReadNumber() (Context, int, bool) {
	i := c.index
	for i < len(c.chars) && isASCIIDigit(c.chars[i]) {
		i++
	}
	if i == c.index {
		return c, 0, false
	}
	v := 0
	for _, r := range c.chars[c.index:i] {
		v = v*10 + int(r-'0')
	}
	c.index = i
	return c, v, true
}

// ReadNumber consumes a maximal run of ASCII digits, producing an
// unsigned integer of at most 8 digits. On overflow it returns
// NumberTooLong(role) and still advances past the whole digit run; on
// zero digits it returns ExpectedNumber(role) without advancing.
func (c Context) ReadNumber(role NumberRole) (Context, int, *LexError) {
	i := c.index
	for i < len(c.chars) && isASCIIDigit(c.chars[i]) {
		i++
	}
	digits := i - c.index
	if digits == 0 {
		return c, 0, &LexError{Kind: ExpectedNumber, Role: role}
	}
	nc := c
	nc.index = i
	if digits > 8 {
		return nc, 0, &LexError{Kind: NumberTooLong, Role: role}
	}
	v := 0
	for _, r := range c.chars[c.index:i] {
		v = v*10 + int(r-'0')
	}
	return nc, v, nil
}
