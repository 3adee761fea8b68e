// backend/src/handlers/transaction_handler.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/parsers/dompet"
	"github.com/username/masdompet/backend/src/security/validation"
	"github.com/username/masdompet/backend/src/services"
	"github.com/username/masdompet/backend/src/utils"
)

type TransactionHandler struct {
	ledgerService services.LedgerService
}

func NewTransactionHandler(ledgerService services.LedgerService) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
	}
}

// transactionRequest carries the date as text so plain YYYY-MM-DD is accepted.
type transactionRequest struct {
	Amount      int64  `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (req transactionRequest) toInput() (models.TransactionInput, error) {
	date, err := validation.ValidateDateString(req.Date, "date")
	if err != nil {
		return models.TransactionInput{}, err
	}
	return models.TransactionInput{
		Amount:      req.Amount,
		Type:        models.TransactionType(strings.TrimSpace(req.Type)),
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}, nil
}

func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	var (
		txs []models.Transaction
		err error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		txs, err = h.ledgerService.ListTransactionsByCategory(r.Context(), category)
	} else {
		txs, err = h.ledgerService.ListTransactions(r.Context())
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, txs, http.StatusOK)
}

func (h *TransactionHandler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	tx, err := h.ledgerService.CreateTransaction(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, tx, http.StatusCreated)
}

func (h *TransactionHandler) HandleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	tx, err := h.ledgerService.GetTransaction(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, tx, http.StatusOK)
}

func (h *TransactionHandler) HandleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req transactionRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	tx, err := h.ledgerService.UpdateTransaction(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, tx, http.StatusOK)
}

func (h *TransactionHandler) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.ledgerService.DeleteTransaction(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bulkRequest struct {
	Transactions []transactionRequest `json:"transactions"`
}

func (h *TransactionHandler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if len(req.Transactions) == 0 {
		utils.SendJSONError(w, "transactions must contain at least one entry", http.StatusBadRequest)
		return
	}

	inputs := make([]models.TransactionInput, 0, len(req.Transactions))
	for i, item := range req.Transactions {
		input, err := item.toInput()
		if err != nil {
			writeServiceError(w, r, fmt.Errorf("row %d: %w", i+1, err))
			return
		}
		inputs = append(inputs, input)
	}

	created, err := h.ledgerService.BulkCreateTransactions(r.Context(), inputs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, map[string]any{"inserted": len(created), "transactions": created}, http.StatusCreated)
}

func (h *TransactionHandler) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="template-transaksi.csv"`)
	w.Write([]byte(dompet.Template()))
}

// HandleExport buffers the file so a store failure still yields a JSON error.
func (h *TransactionHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.ledgerService.ExportCSV(r.Context(), &buf); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transaksi.csv"`)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Error("Error writing export response", "error", err)
	}
}
