package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/bion/backend/internal/middleware"
	"github.com/pageza/bion/backend/internal/service"
	"github.com/pageza/bion/backend/internal/types"
)

// BlockHandler serves the owner's block editor endpoints
type BlockHandler struct {
	blocks service.IBlockService
}

func NewBlockHandler(blocks service.IBlockService) *BlockHandler {
	return &BlockHandler{blocks: blocks}
}

// RegisterRoutes mounts the block routes. The group must already
// authenticate the caller; extra handlers run before every mutation.
func (h *BlockHandler) RegisterRoutes(router *gin.RouterGroup, mutation ...gin.HandlerFunc) {
	blocks := router.Group("/blocks")
	{
		blocks.GET("", h.ListBlocks)
		blocks.GET("/:id", h.GetBlock)
		blocks.POST("", with(mutation, h.CreateBlock)...)
		blocks.PATCH("/:id", with(mutation, h.UpdateBlock)...)
		blocks.DELETE("/:id", with(mutation, h.DeleteBlock)...)
		blocks.PUT("/order", with(mutation, h.ReorderBlocks)...)
	}
}

func (h *BlockHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.blocks.List(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}

func (h *BlockHandler) GetBlock(c *gin.Context) {
	block, err := h.blocks.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"block": block})
}

func (h *BlockHandler) CreateBlock(c *gin.Context) {
	var req types.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	block, err := h.blocks.Create(c.Request.Context(), middleware.IdentityFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"block": block})
}

func (h *BlockHandler) UpdateBlock(c *gin.Context) {
	var req types.UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	block, err := h.blocks.Update(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"block": block})
}

func (h *BlockHandler) DeleteBlock(c *gin.Context) {
	if err := h.blocks.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Block deleted"})
}

// ReorderBlocks persists a new order. The body lists block ids first to last;
// blocks it leaves out keep their relative order after the listed ones.
func (h *BlockHandler) ReorderBlocks(c *gin.Context) {
	var req types.ReorderBlocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	if err := h.blocks.Reorder(c.Request.Context(), middleware.IdentityFrom(c), req.BlockIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Order updated"})
}
