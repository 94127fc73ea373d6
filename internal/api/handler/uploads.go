package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"obnavi/backend/internal/config"
)

var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

// Upload stores a file (resume, compliance document, company logo) and
// returns its URL. Objects are namespaced by the uploading user.
func (h *Handler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file is required", "")
		return
	}
	defer file.Close()

	if header.Size > config.MaxUploadBytes {
		respondError(c, http.StatusBadRequest, "file too large", "FILE_TOO_LARGE")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		respondError(c, http.StatusBadRequest, "unsupported file type", "BAD_FILE_TYPE")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, config.MaxUploadBytes))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	name := fmt.Sprintf("%s/%s%s", callerID(c), uuid.New().String(), filepath.Ext(header.Filename))
	url, err := h.Uploader.Upload(c.Request.Context(), name, data, contentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"url": url})
}
