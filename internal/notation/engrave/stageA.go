package engrave

import (
	"github.com/afandian/folktunefinder-go/internal/music"
	"github.com/afandian/folktunefinder-go/internal/notation/ast"
	"github.com/afandian/folktunefinder-go/internal/notation/lexer"
)

// rawStave accumulates entities for one stave before layout.
type rawStave struct {
	entities []Entity
}

// BuildEntities walks a Tune's prelude and single voice into a slice
// of raw staves (unscaled, unpositioned). The prelude is scanned only
// for KeySignature/Metre bookkeeping; it emits no front-matter glyphs
// of its own beyond the treble clef that opens the first stave.
func BuildEntities(tune ast.Tune) []rawStave {
	clef := music.TrebleClef()

	// The prelude may carry a KeySignature/Metre even though, per the
	// AST Builder's contract, the key signature that starts a voice is
	// recorded as that voice's first token, not the prelude's. Scanning
	// the prelude here future-proofs against a multi-voice AST that
	// places its own KeySignature ahead of the first voice.
	for _, tok := range tune.Prelude {
		if tok.Kind == lexer.KeySignatureToken {
			// Current implementation records but does not change clef
			// selection from key signature; only the treble clef is
			// modelled.
			_ = tok.Key
		}
	}

	staves := []rawStave{{entities: []Entity{{Glyph: Glyph{Kind: GlyphClef, Clef: clef}}}}}

	for _, voice := range tune.Voices {
		for _, tok := range voice {
			current := &staves[len(staves)-1]
			switch tok.Kind {
			case lexer.Newline:
				staves = append(staves, rawStave{entities: []Entity{{Glyph: Glyph{Kind: GlyphClef, Clef: clef}}}})
			case lexer.BeamBreak:
				current.entities = append(current.entities, Entity{Glyph: Glyph{Kind: GlyphBeamBreak}})
			case lexer.BarlineToken:
				current.entities = append(current.entities, Entity{Glyph: barlineGlyph(tok.Bar)})
			case lexer.NoteToken:
				position := clef.Pitch.IntervalTo(tok.Note.Pitch).PitchClasses + clef.Centre
				var durPtr *music.DurationGlyph
				if g, ok := tok.Note.Duration.ToGlyph(); ok {
					durPtr = &g
				}
				current.entities = append(current.entities, Entity{Glyph: Glyph{
					Kind:     GlyphNoteHead,
					Position: position,
					Duration: durPtr,
				}})
			case lexer.KeySignatureToken, lexer.MetreToken, lexer.DefaultNoteLengthToken:
				// Recorded for bookkeeping only; no entity emitted.
			default:
				// Text headers never appear in a voice.
			}
		}
	}

	promoteFinalBarToEndBar(staves)
	return staves
}

// barlineGlyph maps a lexed Barline onto its engraved glyph. The
// plain "||"/"|]" shapes and the true final barline are
// indistinguishable at this point (the music model has no field for
// it); promoteFinalBarToEndBar resolves it afterwards by position.
func barlineGlyph(bar music.Barline) Glyph {
	switch {
	case bar.Single:
		return Glyph{Kind: GlyphSingleBar}
	case bar.RepeatBefore && bar.RepeatAfter:
		return Glyph{Kind: GlyphOpenRepeat}
	case bar.RepeatAfter:
		return Glyph{Kind: GlyphOpenRepeat}
	case bar.RepeatBefore:
		return Glyph{Kind: GlyphCloseRepeat}
	default:
		return Glyph{Kind: GlyphDoubleBar}
	}
}

// promoteFinalBarToEndBar retags the very last bar-like glyph of the
// whole piece from DoubleBar to EndBar, since the lexer's Barline type
// cannot distinguish the two at parse time.
func promoteFinalBarToEndBar(staves []rawStave) {
	for i := len(staves) - 1; i >= 0; i-- {
		entities := staves[i].entities
		for j := len(entities) - 1; j >= 0; j-- {
			if entities[j].Glyph.Kind == GlyphDoubleBar {
				entities[j].Glyph.Kind = GlyphEndBar
				return
			}
			if entities[j].Glyph.Kind == GlyphClef {
				// The clef that opens a trailing, otherwise empty
				// stave is skipped.
				continue
			}
			// Any other bar-like glyph at the tail means this piece
			// doesn't end on a plain double bar; stop looking.
			return
		}
	}
}
