// backend/src/handlers/response.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/security/validation"
	"github.com/username/masdompet/backend/src/services"
	"github.com/username/masdompet/backend/src/utils"
)

const maxJSONBodyBytes = 1 << 20

// writeServiceError maps service errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctxLogger := logger.FromContext(r.Context())
	switch {
	case errors.Is(err, validation.ErrValidationFailed), errors.Is(err, services.ErrParsingFailed):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrImmutable):
		utils.SendJSONError(w, err.Error(), http.StatusConflict)
	default:
		ctxLogger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg := "Internal server error"
		if requestID, ok := GetRequestIDFromContext(r.Context()); ok {
			msg += " (request id " + requestID + ")"
		}
		utils.SendJSONError(w, msg, http.StatusInternalServerError)
	}
}

// idParam reads a positive integer URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s '%s'", validation.ErrValidationFailed, name, raw)
	}
	return id, nil
}

// decodeJSON decodes the request body into dst. An empty body is accepted
// only when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: invalid request body: %v", validation.ErrValidationFailed, err)
	}
	return nil
}

// parseOptionalDate accepts an empty string as "no date".
func parseOptionalDate(s, fieldName string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := validation.ValidateDateString(s, fieldName)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
