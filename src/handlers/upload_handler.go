// backend/src/handlers/upload_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/security/validation"
	"github.com/username/masdompet/backend/src/services"
	"github.com/username/masdompet/backend/src/utils"
)

type UploadHandler struct {
	importService  services.ImportService
	maxUploadBytes int64
}

func NewUploadHandler(service services.ImportService, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		importService:  service,
		maxUploadBytes: maxUploadBytes,
	}
}

func formBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.FormValue(key))
	return err == nil && v
}

// HandleImport accepts a multipart upload with a "file" field and the
// optional "source", "strict" and "preview" fields.
func (h *UploadHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	maxMB := h.maxUploadBytes / (1024 * 1024)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1024)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", h.maxUploadBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to process upload or file too large (max %d MB)", maxMB), http.StatusBadRequest)
		return
	}

	source := r.FormValue("source")
	strict := formBool(r, "strict")
	preview := formBool(r, "preview")

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > h.maxUploadBytes {
		ctxLogger.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", h.maxUploadBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", maxMB), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctxLogger.Info("Processing import request", "filename", fileHeader.Filename, "source", source, "detectedType", detectedContentType, "strict", strict, "preview", preview)

	var result *models.ImportResult
	if preview {
		result, err = h.importService.Preview(r.Context(), file, source)
	} else {
		result, err = h.importService.Import(r.Context(), file, source, strict)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Inserted > 0 {
		status = http.StatusCreated
	} else if !result.Success && len(result.Data) == 0 {
		status = http.StatusUnprocessableEntity
	}
	utils.SendJSON(w, result, status)
}
