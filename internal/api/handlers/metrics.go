package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/afandian/folktunefinder-go/internal/storage"
	"github.com/gin-gonic/gin"
)

// RenderStats accumulates render latency across requests so /api/metrics
// can report a running average without a time-series store.
type RenderStats struct {
	count     atomic.Int64
	totalNs   atomic.Int64
	lexErrors atomic.Int64
}

// Observe records one render's duration and how many lexical errors
// its source produced.
func (s *RenderStats) Observe(d time.Duration, lexErrorCount int) {
	s.count.Add(1)
	s.totalNs.Add(int64(d))
	s.lexErrors.Add(int64(lexErrorCount))
}

// AverageLatency returns the mean render duration observed so far.
func (s *RenderStats) AverageLatency() time.Duration {
	count := s.count.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(s.totalNs.Load() / count)
}

type MetricsHandler struct {
	startTime time.Time
	version   string
	cache     *storage.TuneCache
	render    *RenderStats
}

func NewMetricsHandler(version string, cache *storage.TuneCache, render *RenderStats) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		cache:     cache,
		render:    render,
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// formatUptime formats the uptime duration with seconds rounded to 2 decimal places
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

type MetricsResponse struct {
	Status    string        `json:"status"`
	Uptime    string        `json:"uptime"`
	Timestamp string        `json:"timestamp"`
	Version   string        `json:"version"`
	StartTime string        `json:"start_time"`
	System    SystemMetrics `json:"system"`
	Corpus    CorpusMetrics `json:"corpus"`
}

type SystemMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	NumGC        uint32 `json:"num_gc"`
}

// CorpusMetrics reports the shape of the loaded tune corpus and the
// rendering pipeline's recent behaviour.
type CorpusMetrics struct {
	TuneCount            uint32  `json:"tune_count"`
	MaxTuneID            uint32  `json:"max_tune_id"`
	CacheHitRate         float64 `json:"cache_hit_rate"`
	AverageRenderLatency string  `json:"average_render_latency"`
}

const bytesToMB = 1024 * 1024

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	response := MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(uptime),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		System: SystemMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / bytesToMB,
			MemTotalMB:   m.TotalAlloc / bytesToMB,
			NumGC:        m.NumGC,
		},
		Corpus: CorpusMetrics{
			TuneCount:            uint32(h.cache.Len()),
			MaxTuneID:            h.cache.MaxID(),
			CacheHitRate:         h.cache.HitRate(),
			AverageRenderLatency: h.render.AverageLatency().String(),
		},
	}

	c.JSON(http.StatusOK, response)
}
