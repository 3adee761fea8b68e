// backend/src/handlers/investment_handler.go
package handlers

import (
	"net/http"

	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/services"
	"github.com/username/masdompet/backend/src/utils"
)

type InvestmentHandler struct {
	investmentService services.InvestmentService
}

func NewInvestmentHandler(investmentService services.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

type investmentValueRequest struct {
	CurrentValue int64 `json:"current_value"`
}

func (h *InvestmentHandler) HandleListInvestments(w http.ResponseWriter, r *http.Request) {
	investments, err := h.investmentService.ListInvestments(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, investments, http.StatusOK)
}

func (h *InvestmentHandler) HandleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var input models.InvestmentInput
	if err := decodeJSON(w, r, &input, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	inv, err := h.investmentService.CreateInvestment(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, inv, http.StatusCreated)
}

func (h *InvestmentHandler) HandleUpdateValue(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req investmentValueRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	inv, err := h.investmentService.UpdateInvestmentValue(r.Context(), id, req.CurrentValue)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, inv, http.StatusOK)
}

func (h *InvestmentHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	withdrawal, err := h.investmentService.WithdrawInvestment(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, withdrawal, http.StatusOK)
}

func (h *InvestmentHandler) HandleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.investmentService.DeleteInvestment(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
