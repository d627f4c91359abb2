package ast

import (
	"testing"

	"github.com/afandian/folktunefinder-go/internal/music"
	"github.com/afandian/folktunefinder-go/internal/notation/lexer"
)

func TestBuildSplitsPreludeAndVoice(t *testing.T) {
	tune := BuildFromText("T:Title\nK:C\nCD\n")

	if len(tune.Prelude) != 1 || tune.Prelude[0].Kind != lexer.HeaderTitle {
		t.Fatalf("prelude = %+v, want single HeaderTitle", tune.Prelude)
	}
	if len(tune.Voices) != 1 {
		t.Fatalf("voices = %+v, want exactly one", tune.Voices)
	}
	voice := tune.Voices[0]
	if len(voice) == 0 || voice[0].Kind != lexer.KeySignatureToken {
		t.Fatalf("voice[0] = %+v, want KeySignatureToken", voice[0])
	}

	var noteCount int
	for _, tok := range voice {
		if tok.Kind == lexer.NoteToken {
			noteCount++
		}
	}
	if noteCount != 2 {
		t.Fatalf("got %d notes in voice, want 2: %+v", noteCount, voice)
	}
}

func TestBuildAppliesRunningDefaultNoteLength(t *testing.T) {
	tune := BuildFromText("L:1/8\nK:C\nC2D\n")
	voice := tune.Voices[0]

	var notes []music.FractionalDuration
	for _, tok := range voice {
		if tok.Kind == lexer.NoteToken {
			notes = append(notes, tok.Note.Duration)
		}
	}
	if len(notes) != 2 {
		t.Fatalf("got %d notes, want 2: %+v", len(notes), notes)
	}
	// C2 -> duration shorthand 2/1, times running 1/8 = 2/8.
	if notes[0] != (music.FractionalDuration{Num: 2, Den: 8}) {
		t.Errorf("note 0 duration = %+v, want 2/8", notes[0])
	}
	// D -> duration shorthand 1/1, times running 1/8 = 1/8.
	if notes[1] != (music.FractionalDuration{Num: 1, Den: 8}) {
		t.Errorf("note 1 duration = %+v, want 1/8", notes[1])
	}
}

func TestBuildDiscardsErrorsAndKeepsStructure(t *testing.T) {
	tune := BuildFromText("T:Title\nM:6/\nK:C\nC\n")

	if len(tune.Prelude) != 2 {
		t.Fatalf("prelude = %+v, want 2 tokens (the error is silently dropped)", tune.Prelude)
	}
}

func TestBuildNoKeySignatureLeavesNoVoices(t *testing.T) {
	tune := BuildFromText("T:Title\n")
	if len(tune.Voices) != 0 {
		t.Fatalf("voices = %+v, want none without a key signature", tune.Voices)
	}
	if len(tune.Prelude) != 1 {
		t.Fatalf("prelude = %+v, want 1", tune.Prelude)
	}
}
