package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event-crm/internal/models"
	"event-crm/internal/services"
	"event-crm/internal/utils"
)

type ServiceHandler struct {
	catalog services.CatalogService
}

func NewServiceHandler(catalog services.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

type createServiceRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price"`
	Icon        string  `json:"icon" binding:"required"`
	Order       *int    `json:"order"`
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Title, description, category and icon are required")
		return
	}

	service := &models.Service{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Icon:        req.Icon,
	}

	created, err := h.catalog.Create(c.Request.Context(), service, req.Order, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created)
}

// List serves both the public site and the admin panel; inactive
// entries are only included for authenticated callers.
func (h *ServiceHandler) List(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true" && utils.CurrentPrincipal(c) != nil

	items, err := h.catalog.List(c.Request.Context(), c.Query("category"), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	service, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var updated models.Service
	if err := c.ShouldBindJSON(&updated); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	service, err := h.catalog.Update(c.Request.Context(), c.Param("id"), &updated, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Service deleted")
}

type reorderScopedRequest struct {
	Category string   `json:"category" binding:"required"`
	IDs      []string `json:"ids"`
}

func (h *ServiceHandler) Reorder(c *gin.Context) {
	var req reorderScopedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Category and ids are required")
		return
	}

	if err := h.catalog.Reorder(c.Request.Context(), req.Category, req.IDs); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Order updated")
}

func (h *ServiceHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, categories)
}
