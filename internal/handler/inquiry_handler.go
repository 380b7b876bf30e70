package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"event-crm/internal/models"
	"event-crm/internal/repository"
	"event-crm/internal/services"
	"event-crm/internal/utils"
)

type InquiryHandler struct {
	inquiries  services.InquiryService
	conversion services.ConversionService
}

func NewInquiryHandler(inquiries services.InquiryService, conversion services.ConversionService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries, conversion: conversion}
}

// Create is the public intake endpoint. The requester's IP and user
// agent are captured server-side.
func (h *InquiryHandler) Create(c *gin.Context) {
	var inquiry models.Inquiry
	if err := c.ShouldBindJSON(&inquiry); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	meta := services.IntakeMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	created, err := h.inquiries.Create(c.Request.Context(), &inquiry, meta, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, created)
}

func (h *InquiryHandler) List(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	filter := repository.InquiryFilter{
		Status:    c.Query("status"),
		EventType: c.Query("eventType"),
		Search:    c.Query("search"),
		Page:      page,
		Limit:     limit,
	}

	inquiries, pagination, err := h.inquiries.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"inquiries": inquiries, "pagination": pagination})
}

func (h *InquiryHandler) Get(c *gin.Context) {
	inquiry, err := h.inquiries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, inquiry)
}

func (h *InquiryHandler) Update(c *gin.Context) {
	var updated models.Inquiry
	if err := c.ShouldBindJSON(&updated); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	inquiry, err := h.inquiries.Update(c.Request.Context(), c.Param("id"), &updated, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, inquiry)
}

func (h *InquiryHandler) Delete(c *gin.Context) {
	if err := h.inquiries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Inquiry deleted")
}

func (h *InquiryHandler) Stats(c *gin.Context) {
	stats, err := h.inquiries.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, stats)
}

type addCommunicationRequest struct {
	Type      string `json:"type" binding:"required"`
	Direction string `json:"direction" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	Content   string `json:"content"`
}

func (h *InquiryHandler) AddCommunication(c *gin.Context) {
	var req addCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Type, direction and subject are required")
		return
	}

	comm := models.Communication{
		Type:      req.Type,
		Direction: req.Direction,
		Subject:   req.Subject,
		Content:   req.Content,
	}

	inquiry, err := h.inquiries.AddCommunication(c.Request.Context(), c.Param("id"), comm, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, inquiry)
}

type markLostRequest struct {
	Reason string `json:"reason"`
}

func (h *InquiryHandler) MarkAsLost(c *gin.Context) {
	var req markLostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	inquiry, err := h.inquiries.MarkAsLost(c.Request.Context(), c.Param("id"), req.Reason, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, inquiry)
}

type convertRequest struct {
	// Defaults to true when the body omits it.
	CreateClient *bool `json:"createClient"`
	CreateEvent  bool  `json:"createEvent"`
}

func (h *InquiryHandler) Convert(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	createClient := true
	if req.CreateClient != nil {
		createClient = *req.CreateClient
	}

	result, err := h.conversion.Convert(c.Request.Context(), c.Param("id"), createClient, req.CreateEvent, utils.CurrentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}
