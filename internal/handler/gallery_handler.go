package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event-crm/internal/models"
	"event-crm/internal/services"
	"event-crm/internal/utils"
)

type GalleryHandler struct {
	gallery services.GalleryService
}

func NewGalleryHandler(gallery services.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

type createGalleryRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Order    *int   `json:"order"`
}

func (h *GalleryHandler) Create(c *gin.Context) {
	var req createGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Image URL and size are required")
		return
	}

	item := &models.GalleryItem{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Size:     req.Size,
	}

	created, err := h.gallery.Create(c.Request.Context(), item, req.Order, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created)
}

func (h *GalleryHandler) List(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true" && utils.CurrentPrincipal(c) != nil

	items, err := h.gallery.List(c.Request.Context(), c.Query("size"), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (h *GalleryHandler) Get(c *gin.Context) {
	item, err := h.gallery.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}

func (h *GalleryHandler) Update(c *gin.Context) {
	var updated models.GalleryItem
	if err := c.ShouldBindJSON(&updated); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	item, err := h.gallery.Update(c.Request.Context(), c.Param("id"), &updated, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	if err := h.gallery.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Gallery item deleted")
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

func (h *GalleryHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Ids are required")
		return
	}

	if err := h.gallery.Reorder(c.Request.Context(), req.IDs); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Order updated")
}
