package handlers

import (
	"net/http"

	"github.com/afandian/folktunefinder-go/internal/models"
	"github.com/afandian/folktunefinder-go/internal/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *storage.TuneCache
}

func NewHealthHandler(db *gorm.DB, cache *storage.TuneCache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "healthy"
	sqlDB, err := h.db.DB()
	if err != nil {
		h.unhealthy(c, "error: "+err.Error())
		return
	}

	if err := sqlDB.Ping(); err != nil {
		h.unhealthy(c, "error: "+err.Error())
		return
	}

	var tuneCount int64
	if err := h.db.Model(&models.TuneRecord{}).Count(&tuneCount).Error; err != nil {
		h.unhealthy(c, "error: cannot query database - "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"database": gin.H{
			"status": dbStatus,
		},
		"tune_cache": gin.H{
			"tune_count": h.cache.Len(),
		},
	})
}

func (h *HealthHandler) unhealthy(c *gin.Context, dbStatus string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status": "unhealthy",
		"database": gin.H{
			"status": dbStatus,
		},
	})
}
