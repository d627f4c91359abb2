package handlers

import (
	"net/http"
	"time"

	"github.com/afandian/folktunefinder-go/internal/api/middleware"
	"github.com/afandian/folktunefinder-go/internal/logger"
	"github.com/afandian/folktunefinder-go/internal/metrics"
	"github.com/afandian/folktunefinder-go/internal/search"
	"github.com/afandian/folktunefinder-go/internal/storage"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves operations that mutate or rebuild server-wide
// state and are only reachable by an authenticated admin.
type AdminHandler struct {
	cache      *storage.TuneCache
	index      *search.Index
	corpus     string
	scanner    *storage.DirectoryScanner
	cloudwatch *metrics.Client
}

func NewAdminHandler(cache *storage.TuneCache, index *search.Index, corpusDir string, cw *metrics.Client) *AdminHandler {
	return &AdminHandler{
		cache:      cache,
		index:      index,
		corpus:     corpusDir,
		scanner:    storage.NewDirectoryScanner(cache),
		cloudwatch: cw,
	}
}

// Reindex rescans the corpus directory for tune files whose IDs are
// not yet in the cache (a changed file for an ID already cached is
// skipped, since the scanner keeps the first text per ID), then rebuilds the melody and title search index from the refreshed
// cache. Both steps run synchronously: a corpus of the size this
// service expects reindexes in well under the request timeout.
func (h *AdminHandler) Reindex(c *gin.Context) {
	start := time.Now()

	scanResult, err := h.scanner.Scan(h.corpus)
	if err != nil {
		logger.Error("corpus scan failed", err, logger.Fields{"corpus_dir": h.corpus})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "corpus scan failed"})
		return
	}

	indexed, failed := h.index.Rebuild(h.cache)
	duration := time.Since(start)

	h.cloudwatch.RecordCorpusSize(h.cache.Len())

	adminEmail := "unknown"
	if admin, ok := middleware.GetCurrentAdmin(c); ok {
		adminEmail = admin.Email
	}
	logger.Info("reindex completed", logger.Fields{
		"admin":          adminEmail,
		"scanned":        scanResult.Scanned,
		"newly_indexed":  scanResult.Indexed,
		"tunes_in_index": indexed,
		"failed_parses":  len(failed),
		"duration_ms":    duration.Milliseconds(),
	})

	c.JSON(http.StatusOK, gin.H{
		"scanned_files":  scanResult.Scanned,
		"cache_indexed":  scanResult.Indexed,
		"search_indexed": indexed,
		"failed_tune_ids": failed,
		"duration":       duration.String(),
	})
}
