package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event-crm/internal/services"
)

type MediaHandler struct {
	media services.MediaService
}

func NewMediaHandler(media services.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "A file is required")
		return
	}

	result, err := h.media.Upload(c.Request.Context(), fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, result)
}

type deleteMediaRequest struct {
	Key string `json:"key" binding:"required"`
}

func (h *MediaHandler) Delete(c *gin.Context) {
	var req deleteMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Object key is required")
		return
	}

	if err := h.media.Delete(c.Request.Context(), req.Key); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "File deleted")
}
