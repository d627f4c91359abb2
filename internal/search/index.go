package search

import (
	"sort"

	"github.com/afandian/folktunefinder-go/internal/music"
	"github.com/afandian/folktunefinder-go/internal/notation/ast"
	"github.com/afandian/folktunefinder-go/internal/notation/lexer"
	"github.com/afandian/folktunefinder-go/internal/notation/pipeline"
	"github.com/afandian/folktunefinder-go/internal/storage"
	"github.com/afandian/folktunefinder-go/internal/textproc"
)

// DuplicateThreshold is the cosine similarity above which two tunes'
// interval histograms are considered the same melody for clustering
// purposes.
const DuplicateThreshold = 0.98

// Index is the corpus-wide similarity index: one n-gram VSM for
// melodic search, one title-token VSM for free-text search, a
// per-tune interval histogram used only for duplicate detection, and
// a Grouper clustering near-duplicate melodies.
type Index struct {
	ngrams     *VSM
	titles     *VSM
	histograms map[uint32]SparseVector
	clusters   *Grouper
	titleIDs   map[uint32][]string
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		ngrams:     NewVSM(),
		titles:     NewVSM(),
		histograms: make(map[uint32]SparseVector),
		clusters:   NewGrouper(),
		titleIDs:   make(map[uint32][]string),
	}
}

// Add indexes a single tune's melodic and title features, and folds
// it into any existing near-duplicate cluster. Tunes should be added
// in ascending tune ID order so that cluster IDs are stable as the
// lowest member of each group.
func (idx *Index) Add(tuneID uint32, tune ast.Tune) {
	pitches := Pitches(tune)
	intervals := Intervals(pitches)

	idx.ngrams.Set(tuneID, ngramVector(intervals))

	titles := titlesOf(tune)
	idx.titleIDs[tuneID] = titles
	idx.titles.Set(tuneID, titleVector(titles))

	histVec := histogramVector(IntervalHistogram(intervals))
	for other, otherVec := range idx.histograms {
		if CosineSimilarity(histVec, otherVec) >= DuplicateThreshold {
			idx.clusters.Add(tuneID, other)
		}
	}
	idx.histograms[tuneID] = histVec
}

func ngramVector(intervals []int) SparseVector {
	grams := IntervalNGrams(intervals, NGramSize)
	vec := make(SparseVector, len(grams))
	for _, g := range grams {
		vec[g]++
	}
	return vec
}

func titleVector(titles []string) SparseVector {
	vec := make(SparseVector)
	for _, title := range titles {
		for tok := range textproc.Tokenize(title) {
			vec[tok]++
		}
	}
	return vec
}

func histogramVector(hist [HistogramLength]float64) SparseVector {
	vec := make(SparseVector, HistogramLength)
	for i, v := range hist {
		if v > 0 {
			vec[ngramKey([]int{i})] = v
		}
	}
	return vec
}

func titlesOf(tune ast.Tune) []string {
	var titles []string
	for _, tok := range tune.Prelude {
		if tok.Kind == lexer.HeaderTitle {
			titles = append(titles, tok.Text)
		}
	}
	return titles
}

// SearchByMelody returns tunes whose interval n-gram profile is
// similar to the given pitch sequence, most similar first.
func (idx *Index) SearchByMelody(pitches []music.Pitch, minScore float64) []ScoredResult {
	return idx.ngrams.Search(ngramVector(Intervals(pitches)), minScore)
}

// SearchByTitle returns tunes whose title tokens best match the query
// text, most similar first.
func (idx *Index) SearchByTitle(query string) []ScoredResult {
	vec := make(SparseVector)
	for tok := range textproc.Tokenize(query) {
		vec[tok] = 1
	}
	return idx.titles.Search(vec, 0)
}

// ClusterOf returns the canonical ID of the near-duplicate group a
// tune belongs to, if any.
func (idx *Index) ClusterOf(tuneID uint32) (uint32, bool) {
	return idx.clusters.Get(tuneID)
}

// Titles returns the titles indexed for a tune.
func (idx *Index) Titles(tuneID uint32) []string {
	return idx.titleIDs[tuneID]
}

// Size returns the number of tunes currently indexed.
func (idx *Index) Size() int {
	return len(idx.titleIDs)
}

// Rebuild clears the index and re-parses every tune the cache holds,
// adding them in ascending tune ID order so cluster IDs stay stable.
// It returns the number of tunes indexed and the IDs whose text the
// cache could not return, rather than aborting on the first such tune.
func (idx *Index) Rebuild(cache *storage.TuneCache) (indexed int, failed []uint32) {
	ids := cache.IDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	idx.ngrams = NewVSM()
	idx.titles = NewVSM()
	idx.histograms = make(map[uint32]SparseVector)
	idx.clusters = NewGrouper()
	idx.titleIDs = make(map[uint32][]string)

	for _, id := range ids {
		text, ok := cache.Get(id)
		if !ok {
			failed = append(failed, id)
			continue
		}

		tune := pipeline.AbcToAst(text)
		idx.Add(id, tune)
		indexed++
	}

	return indexed, failed
}
