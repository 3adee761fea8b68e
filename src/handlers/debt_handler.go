// backend/src/handlers/debt_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/services"
	"github.com/username/masdompet/backend/src/utils"
)

type DebtHandler struct {
	debtService services.DebtService
}

func NewDebtHandler(debtService services.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

type debtRequest struct {
	Name    string `json:"name"`
	Amount  int64  `json:"amount"`
	Type    string `json:"type"`
	DueDate string `json:"due_date"`
}

// payDebtRequest leaves Amount nil to pay the full remaining balance.
type payDebtRequest struct {
	Amount *int64 `json:"amount"`
}

func (h *DebtHandler) HandleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := h.debtService.ListDebts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, debts, http.StatusOK)
}

func (h *DebtHandler) HandleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	dueDate, err := parseOptionalDate(req.DueDate, "due_date")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	debt, err := h.debtService.CreateDebt(r.Context(), models.DebtInput{
		Name:    req.Name,
		Amount:  req.Amount,
		Type:    models.DebtType(strings.TrimSpace(req.Type)),
		DueDate: dueDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, debt, http.StatusCreated)
}

func (h *DebtHandler) HandleToggleDebt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	debt, err := h.debtService.ToggleDebtStatus(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, debt, http.StatusOK)
}

func (h *DebtHandler) HandlePayDebt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req payDebtRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeServiceError(w, r, err)
		return
	}
	payment, err := h.debtService.PayDebt(r.Context(), id, req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, payment, http.StatusOK)
}

func (h *DebtHandler) HandleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.debtService.DeleteDebt(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
