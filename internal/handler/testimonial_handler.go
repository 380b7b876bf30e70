package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event-crm/internal/models"
	"event-crm/internal/services"
	"event-crm/internal/utils"
)

type TestimonialHandler struct {
	testimonials services.TestimonialService
}

func NewTestimonialHandler(testimonials services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials}
}

type createTestimonialRequest struct {
	Quote  string `json:"quote" binding:"required"`
	Author string `json:"author" binding:"required"`
	Role   string `json:"role" binding:"required"`
	Event  string `json:"event" binding:"required"`
	Order  *int   `json:"order"`
}

func (h *TestimonialHandler) Create(c *gin.Context) {
	var req createTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Quote, author, role and event are required")
		return
	}

	testimonial := &models.Testimonial{
		Quote:  req.Quote,
		Author: req.Author,
		Role:   req.Role,
		Event:  req.Event,
	}

	created, err := h.testimonials.Create(c.Request.Context(), testimonial, req.Order, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created)
}

func (h *TestimonialHandler) List(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true" && utils.CurrentPrincipal(c) != nil

	items, err := h.testimonials.List(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (h *TestimonialHandler) Get(c *gin.Context) {
	testimonial, err := h.testimonials.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, testimonial)
}

func (h *TestimonialHandler) Update(c *gin.Context) {
	var updated models.Testimonial
	if err := c.ShouldBindJSON(&updated); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	testimonial, err := h.testimonials.Update(c.Request.Context(), c.Param("id"), &updated, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, testimonial)
}

func (h *TestimonialHandler) Delete(c *gin.Context) {
	if err := h.testimonials.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Testimonial deleted")
}

func (h *TestimonialHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Ids are required")
		return
	}

	if err := h.testimonials.Reorder(c.Request.Context(), req.IDs); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Order updated")
}
