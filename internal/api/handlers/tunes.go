package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/afandian/folktunefinder-go/internal/llm"
	"github.com/afandian/folktunefinder-go/internal/logger"
	"github.com/afandian/folktunefinder-go/internal/metrics"
	"github.com/afandian/folktunefinder-go/internal/models"
	"github.com/afandian/folktunefinder-go/internal/notation/pipeline"
	"github.com/afandian/folktunefinder-go/internal/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TunesHandler serves a single tune's metadata, rendered SVG, lexical
// diagnostics, and LLM-assisted description.
type TunesHandler struct {
	db         *gorm.DB
	cache      *storage.TuneCache
	llm        llm.Provider
	render     *RenderStats
	cloudwatch *metrics.Client
}

func NewTunesHandler(db *gorm.DB, cache *storage.TuneCache, provider llm.Provider, render *RenderStats, cw *metrics.Client) *TunesHandler {
	return &TunesHandler{db: db, cache: cache, llm: provider, render: render, cloudwatch: cw}
}

func (h *TunesHandler) parseID(c *gin.Context) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tune id"})
		return 0, false
	}
	return uint32(id), true
}

// GetTune returns a tune's structured metadata.
func (h *TunesHandler) GetTune(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var record models.TuneRecord
	if err := h.db.First(&record, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tune not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetSVG renders a tune's ABC text to SVG and serves it directly.
func (h *TunesHandler) GetSVG(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	text, found := h.cache.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "tune not found"})
		return
	}

	start := time.Now()
	tune := pipeline.AbcToAst(text)
	svg := pipeline.AstToSvg(tune)
	duration := time.Since(start)

	report := pipeline.FormatErrorsFromText(text)
	h.render.Observe(duration, report.Count)
	h.cloudwatch.RecordRenderLatency(duration)
	h.cloudwatch.RecordLexErrors(report.Count)
	logger.LogRenderRequest(c.Request.Context(), id, duration, report.Count, nil)

	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

// GetErrors reports a tune's lexical diagnostics as text.
func (h *TunesHandler) GetErrors(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	text, found := h.cache.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "tune not found"})
		return
	}

	report := pipeline.FormatErrorsFromText(text)
	c.JSON(http.StatusOK, gin.H{
		"count":   report.Count,
		"unshown": report.Unshown,
		"report":  report.Report,
	})
}

// Describe asks the configured LLM provider for a short prose
// description of the tune, grounded on its ABC text.
func (h *TunesHandler) Describe(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	text, found := h.cache.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "tune not found"})
		return
	}

	if h.llm == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "description provider not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	description, err := h.llm.Describe(ctx, text)
	if err != nil {
		logger.Error("tune description failed", err, logger.Fields{"tune_id": id})
		c.JSON(http.StatusBadGateway, gin.H{"error": "description provider failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tune_id": id, "description": description})
}
