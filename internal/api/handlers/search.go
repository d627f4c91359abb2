package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/afandian/folktunefinder-go/internal/notation/pipeline"
	"github.com/afandian/folktunefinder-go/internal/search"
	"github.com/gin-gonic/gin"
)

// defaultMinScore is the cosine similarity floor applied when a
// search request doesn't specify one.
const defaultMinScore = 0.1

// SearchHandler answers melody and title queries against the
// in-memory corpus index. Query parsing lives here, not in
// internal/search, which only knows about vectors and scores.
type SearchHandler struct {
	index *search.Index
}

func NewSearchHandler(index *search.Index) *SearchHandler {
	return &SearchHandler{index: index}
}

// Search dispatches to melody or title search depending on which
// query parameters are present. A request with both an `abc` snippet
// and a `title` searches melody; `abc` alone searches melody; `title`
// alone searches by title tokens.
func (h *SearchHandler) Search(c *gin.Context) {
	abc := c.Query("abc")
	title := c.Query("title")

	if abc == "" && title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "one of 'abc' or 'title' query parameters is required"})
		return
	}

	if abc != "" {
		h.searchByMelody(c, abc)
		return
	}

	h.searchByTitle(c, title)
}

func (h *SearchHandler) searchByMelody(c *gin.Context, abc string) {
	minScore := defaultMinScore
	if raw := c.Query("min_score"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_score must be a number between 0 and 1"})
			return
		}
		minScore = parsed
	}

	tune := pipeline.AbcToAst(abc)
	pitches := search.Pitches(tune)
	if len(pitches) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not extract any pitches from the 'abc' query"})
		return
	}

	results := h.index.SearchByMelody(pitches, minScore)
	c.JSON(http.StatusOK, gin.H{"query": gin.H{"abc": abc, "min_score": minScore}, "results": toResponses(h.index, results)})
}

func (h *SearchHandler) searchByTitle(c *gin.Context, title string) {
	query := strings.TrimSpace(title)
	results := h.index.SearchByTitle(query)
	c.JSON(http.StatusOK, gin.H{"query": gin.H{"title": query}, "results": toResponses(h.index, results)})
}

// searchResult is the shape of one hit in a search response.
type searchResult struct {
	TuneID  uint32   `json:"tune_id"`
	Score   float64  `json:"score"`
	Titles  []string `json:"titles,omitempty"`
	Cluster *uint32  `json:"cluster_id,omitempty"`
}

func toResponses(index *search.Index, scored []search.ScoredResult) []searchResult {
	out := make([]searchResult, 0, len(scored))
	for _, s := range scored {
		r := searchResult{TuneID: s.TuneID, Score: s.Score, Titles: index.Titles(s.TuneID)}
		if cluster, ok := index.ClusterOf(s.TuneID); ok {
			r.Cluster = &cluster
		}
		out = append(out, r)
	}
	return out
}
