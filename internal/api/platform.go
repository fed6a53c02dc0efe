package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/bion/backend/internal/platform"
)

// PlatformInfo is one entry of the platform catalog
type PlatformInfo struct {
	ID platform.ID `json:"id"`
	platform.Config
	Patterns []string `json:"patterns"`
}

// PlatformHandler exposes the platform table to the block editor
type PlatformHandler struct{}

func NewPlatformHandler() *PlatformHandler {
	return &PlatformHandler{}
}

func (h *PlatformHandler) RegisterRoutes(router *gin.RouterGroup) {
	platforms := router.Group("/platforms")
	{
		platforms.GET("", h.ListPlatforms)
		platforms.GET("/detect", h.DetectPlatform)
	}
}

// ListPlatforms returns every platform in detection order
func (h *PlatformHandler) ListPlatforms(c *gin.Context) {
	entries := platform.All()
	out := make([]PlatformInfo, 0, len(entries))
	for _, e := range entries {
		patterns := e.Patterns
		if patterns == nil {
			patterns = []string{}
		}
		out = append(out, PlatformInfo{ID: e.ID, Config: e.Config, Patterns: patterns})
	}
	c.JSON(http.StatusOK, gin.H{"platforms": out})
}

// DetectPlatform reports which platform a URL belongs to
func (h *PlatformHandler) DetectPlatform(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	id := platform.Detect(url)
	c.JSON(http.StatusOK, gin.H{
		"platform": id,
		"config":   platform.Lookup(id),
	})
}
