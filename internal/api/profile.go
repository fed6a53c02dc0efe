package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/bion/backend/internal/blocklist"
	"github.com/pageza/bion/backend/internal/middleware"
	"github.com/pageza/bion/backend/internal/service"
	"github.com/pageza/bion/backend/internal/types"
)

type ProfileHandler struct {
	profiles service.IProfileService
}

func NewProfileHandler(profiles service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// RegisterRoutes mounts the profile routes on an authenticated group
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, mutation ...gin.HandlerFunc) {
	profile := router.Group("/profile")
	{
		profile.POST("", with(mutation, h.SetupProfile)...)
		profile.GET("", h.GetProfile)
		profile.PUT("", with(mutation, h.UpdateProfile)...)
	}
}

// RegisterDashboardRoutes mounts the dashboard. It is kept apart because the
// dashboard needs a finished profile while setup must not.
func (h *ProfileHandler) RegisterDashboardRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetDashboard)
}

func (h *ProfileHandler) SetupProfile(c *gin.Context) {
	var req types.SetupProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	profile, err := h.profiles.Setup(c.Request.Context(), middleware.IdentityFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), middleware.IdentityFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.profiles.Dashboard(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboardView{
		DashboardResponse: dashboard,
		Grid:              blocklist.FromBlocks(dashboard.Blocks),
	})
}

// dashboardView adds the grid items the owner's block list is drawn from
type dashboardView struct {
	*types.DashboardResponse
	Grid []blocklist.Item `json:"grid"`
}
