package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/bion/backend/internal/render"
	"github.com/pageza/bion/backend/internal/service"
)

// PublicHandler serves visitor-facing pages. None of its routes need a token.
type PublicHandler struct {
	profiles service.IProfileService
	blocks   service.IBlockService
	siteURL  string
	logger   *zap.Logger
}

func NewPublicHandler(profiles service.IProfileService, blocks service.IBlockService, siteURL string, logger *zap.Logger) *PublicHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicHandler{
		profiles: profiles,
		blocks:   blocks,
		siteURL:  siteURL,
		logger:   logger,
	}
}

// RegisterRoutes mounts the JSON page and the click counter. click runs
// before the counter, typically a per-IP rate limiter.
func (h *PublicHandler) RegisterRoutes(router *gin.RouterGroup, click ...gin.HandlerFunc) {
	public := router.Group("/public")
	{
		public.GET("/:username", h.GetPublicPage)
		public.POST("/blocks/:id/click", with(click, h.RecordClick)...)
	}
}

// RegisterPageRoutes mounts the HTML profile page at the site root. The
// engine must have the render templates loaded.
func (h *PublicHandler) RegisterPageRoutes(router *gin.Engine) {
	router.GET("/:username", h.RenderProfile)
}

// GetPublicPage returns the public page data with its view model
func (h *PublicHandler) GetPublicPage(c *gin.Context) {
	page, err := h.profiles.PublicPage(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	view := render.PublicPage(page, h.siteURL)
	c.JSON(http.StatusOK, gin.H{
		"profile":  page.Profile,
		"blocks":   page.Blocks,
		"meta":     view.Meta,
		"sections": view.Sections,
		"empty":    view.Empty,
	})
}

// RenderProfile renders the public profile as HTML
func (h *PublicHandler) RenderProfile(c *gin.Context) {
	page, err := h.profiles.PublicPage(c.Request.Context(), c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		switch service.KindOf(err) {
		case service.KindNotFound, service.KindInvalidInput:
			c.HTML(http.StatusNotFound, render.NotFoundTemplate, gin.H{"Meta": render.NotFoundMeta()})
		default:
			h.logger.Warn("public page unavailable", zap.String("username", c.Param("username")), zap.Error(err))
			meta := render.NotFoundMeta()
			meta.Title = "Something went wrong | " + render.SiteName
			meta.Description = service.MessageOf(err)
			c.HTML(http.StatusInternalServerError, render.NotFoundTemplate, gin.H{"Meta": meta})
		}
		return
	}

	c.HTML(http.StatusOK, render.ProfileTemplate, render.PublicPage(page, h.siteURL))
}

// RecordClick counts a visitor click. Only a malformed id is reported; every
// other outcome is accepted so a visitor is never blocked from following a
// link.
func (h *PublicHandler) RecordClick(c *gin.Context) {
	err := h.blocks.IncrementClick(c.Request.Context(), c.Param("id"))
	if service.KindOf(err) == service.KindInvalidInput {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Click recorded"})
}
