// backend/src/handlers/category_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/services"
	"github.com/username/masdompet/backend/src/utils"
)

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	typ := models.TransactionType(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("type"))))
	categories, err := h.categoryService.ListCategories(r.Context(), typ)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, categories, http.StatusOK)
}

func (h *CategoryHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var input models.CategoryInput
	if err := decodeJSON(w, r, &input, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	category, err := h.categoryService.CreateCategory(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, category, http.StatusCreated)
}

func (h *CategoryHandler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
