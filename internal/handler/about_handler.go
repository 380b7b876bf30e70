package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event-crm/internal/models"
	"event-crm/internal/services"
	"event-crm/internal/utils"
)

type AboutHandler struct {
	about services.AboutService
}

func NewAboutHandler(about services.AboutService) *AboutHandler {
	return &AboutHandler{about: about}
}

type createAboutRequest struct {
	Title    string `json:"title" binding:"required"`
	Category string `json:"category" binding:"required"`
	Icon     string `json:"icon" binding:"required"`
	Order    *int   `json:"order"`
}

func (h *AboutHandler) Create(c *gin.Context) {
	var req createAboutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Title, category and icon are required")
		return
	}

	item := &models.AboutItem{
		Title:    req.Title,
		Category: req.Category,
		Icon:     req.Icon,
	}

	created, err := h.about.Create(c.Request.Context(), item, req.Order, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created)
}

func (h *AboutHandler) List(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true" && utils.CurrentPrincipal(c) != nil

	items, err := h.about.List(c.Request.Context(), c.Query("category"), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (h *AboutHandler) Get(c *gin.Context) {
	item, err := h.about.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}

func (h *AboutHandler) Update(c *gin.Context) {
	var updated models.AboutItem
	if err := c.ShouldBindJSON(&updated); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	item, err := h.about.Update(c.Request.Context(), c.Param("id"), &updated, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, item)
}

func (h *AboutHandler) Delete(c *gin.Context) {
	if err := h.about.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "About item deleted")
}

func (h *AboutHandler) Reorder(c *gin.Context) {
	var req reorderScopedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Category and ids are required")
		return
	}

	if err := h.about.Reorder(c.Request.Context(), req.Category, req.IDs); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Order updated")
}

func (h *AboutHandler) Categories(c *gin.Context) {
	categories, err := h.about.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, categories)
}
