// Package ast re-shapes a lexer token stream into a Tune: a prelude of
// header tokens and one or more voices of body tokens, with note
// durations resolved against the running default note length.
package ast

import (
	"github.com/afandian/folktunefinder-go/internal/music"
	"github.com/afandian/folktunefinder-go/internal/notation/lexer"
)

// Tune is the AST Builder's sole output: the header tokens observed
// before the first key signature, plus the body split into voices. The
// key signature token is always the first token of the first voice.
type Tune struct {
	Prelude []lexer.Token
	Voices  [][]lexer.Token
}

// Build drains every LexResult from l, discarding errors, and
// resolves note durations against a running default note length
// (initially 1/4, updated by DefaultNoteLengthToken, never itself
// emitted into the output).
func Build(l *lexer.Lexer) Tune {
	var prelude []lexer.Token
	var voices [][]lexer.Token
	running := music.FractionalDuration{Num: 1, Den: 4}
	sawKeySignature := false

	appendToken := func(tok lexer.Token) {
		if !sawKeySignature {
			prelude = append(prelude, tok)
			return
		}
		last := len(voices) - 1
		voices[last] = append(voices[last], tok)
	}

	for {
		res := l.Next()
		switch res.Kind {
		case lexer.ResultTerminal:
			return Tune{Prelude: prelude, Voices: voices}
		case lexer.ResultError:
			continue
		case lexer.ResultTokens:
			for _, tok := range res.Tokens {
				switch tok.Kind {
				case lexer.DefaultNoteLengthToken:
					running = tok.Length
				case lexer.NoteToken:
					tok.Note.Duration = tok.Note.Duration.Multiply(running)
					appendToken(tok)
				case lexer.KeySignatureToken:
					if !sawKeySignature {
						sawKeySignature = true
						voices = append(voices, nil)
					}
					appendToken(tok)
				default:
					appendToken(tok)
				}
			}
		}
	}
}

// BuildFromText is a convenience wrapper over Build for callers holding
// source text rather than a constructed Lexer.
func BuildFromText(text string) Tune {
	return Build(lexer.New([]rune(text)))
}
