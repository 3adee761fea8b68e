// backend/src/handlers/summary_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/services"
	"github.com/username/masdompet/backend/src/utils"
)

type SummaryHandler struct {
	summaryService services.SummaryService
}

func NewSummaryHandler(summaryService services.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// HandleGetSummary serves the dashboard aggregate with ETag support.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	summary, err := h.summaryService.GetSummary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	currentETag, etagErr := utils.GenerateETag(summary)
	if etagErr != nil {
		ctxLogger.Warn("Proceeding without ETag check due to ETag generation error", "error", etagErr)
	} else {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		if utils.MatchesETag(r.Header.Get("If-None-Match"), quotedETag) {
			ctxLogger.Debug("ETag match for summary", "etag", currentETag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	utils.SendJSON(w, summary, http.StatusOK)
}
