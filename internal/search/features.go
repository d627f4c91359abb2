// Package search implements the corpus-wide melodic similarity index:
// per-tune feature vectors (interval n-grams and histograms), a
// cosine-similarity search over them, and a union-find clustering of
// near-duplicate tunes.
package search

import (
	"github.com/afandian/folktunefinder-go/internal/music"
	"github.com/afandian/folktunefinder-go/internal/notation/ast"
	"github.com/afandian/folktunefinder-go/internal/notation/lexer"
)

// HistogramLength is one octave above and below the key note, the
// same window the original interval histogram generator used.
const HistogramLength = 25

// NGramSize is the length of the interval runs indexed for melodic
// search.
const NGramSize = 4

// Pitches extracts the ordered sequence of sounded pitches from a
// tune's voice, skipping prelude-only tokens.
func Pitches(tune ast.Tune) []music.Pitch {
	var pitches []music.Pitch
	for _, voice := range tune.Voices {
		for _, tok := range voice {
			if tok.Kind == lexer.NoteToken {
				pitches = append(pitches, tok.Note.Pitch)
			}
		}
	}
	return pitches
}

// Intervals converts a sequence of pitches into the signed semitone
// distances between consecutive notes.
func Intervals(pitches []music.Pitch) []int {
	if len(pitches) < 2 {
		return nil
	}
	intervals := make([]int, 0, len(pitches)-1)
	for i := 1; i < len(pitches); i++ {
		intervals = append(intervals, pitches[i].MIDI()-pitches[i-1].MIDI())
	}
	return intervals
}

// IntervalNGrams slides a window of size n over a sequence of
// intervals, returning each window as a string key so it can be used
// as a sparse vector dimension.
func IntervalNGrams(intervals []int, n int) []string {
	if len(intervals) < n {
		return nil
	}
	grams := make([]string, 0, len(intervals)-n+1)
	for i := 0; i+n <= len(intervals); i++ {
		grams = append(grams, ngramKey(intervals[i:i+n]))
	}
	return grams
}

func ngramKey(window []int) string {
	key := make([]byte, 0, len(window)*4)
	for i, v := range window {
		if i > 0 {
			key = append(key, ',')
		}
		key = appendInt(key, v)
	}
	return string(key)
}

func appendInt(buf []byte, v int) []byte {
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	if v >= 10 {
		buf = appendInt(buf, v/10)
	}
	return append(buf, byte('0'+v%10))
}

// IntervalHistogram buckets intervals into a fixed-length histogram
// spanning one octave below to one octave above (HistogramLength
// buckets, centred on zero), normalized to sum to 1 so tunes of
// different lengths are comparable.
func IntervalHistogram(intervals []int) [HistogramLength]float64 {
	var hist [HistogramLength]float64
	centre := HistogramLength / 2

	var total float64
	for _, v := range intervals {
		bucket := centre + v
		if bucket < 0 {
			bucket = 0
		}
		if bucket >= HistogramLength {
			bucket = HistogramLength - 1
		}
		hist[bucket]++
		total++
	}

	if total > 0 {
		for i := range hist {
			hist[i] /= total
		}
	}
	return hist
}

// DegreeHistogram buckets pitches by diatonic degree relative to the
// tune's key tonic (if known), folding octaves together.
func DegreeHistogram(pitches []music.Pitch, tonic music.PitchClass) [7]float64 {
	var hist [7]float64
	var total float64
	for _, p := range pitches {
		degree := (int(p.Class.Diatonic) - int(tonic.Diatonic) + 7) % 7
		hist[degree]++
		total++
	}
	if total > 0 {
		for i := range hist {
			hist[i] /= total
		}
	}
	return hist
}
