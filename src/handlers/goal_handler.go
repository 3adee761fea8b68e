// backend/src/handlers/goal_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/services"
	"github.com/username/masdompet/backend/src/utils"
)

type GoalHandler struct {
	goalService services.GoalService
}

func NewGoalHandler(goalService services.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type goalRequest struct {
	Name           string                      `json:"name"`
	TargetAmount   int64                       `json:"target_amount"`
	Deadline       string                      `json:"deadline"`
	CoverImage     string                      `json:"cover_image"`
	BreakdownItems []models.BreakdownItemInput `json:"breakdown_items"`
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

type targetRequest struct {
	TargetAmount int64 `json:"target_amount"`
}

func (h *GoalHandler) HandleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalService.ListGoals(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, goals, http.StatusOK)
}

func (h *GoalHandler) HandleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	deadline, err := parseOptionalDate(req.Deadline, "deadline")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	goal, err := h.goalService.CreateGoal(r.Context(), models.GoalInput{
		Name:           req.Name,
		TargetAmount:   req.TargetAmount,
		Deadline:       deadline,
		CoverImage:     req.CoverImage,
		BreakdownItems: req.BreakdownItems,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, goal, http.StatusCreated)
}

func (h *GoalHandler) HandleGetGoal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	goal, err := h.goalService.GetGoal(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, goal, http.StatusOK)
}

func (h *GoalHandler) HandleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.goalService.DeleteGoal(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) HandleUpdateTarget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req targetRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	goal, err := h.goalService.UpdateGoalTarget(r.Context(), id, req.TargetAmount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, goal, http.StatusOK)
}

func (h *GoalHandler) HandleSyncTarget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	goal, err := h.goalService.SyncTargetFromBreakdown(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, goal, http.StatusOK)
}

func (h *GoalHandler) HandleContribute(w http.ResponseWriter, r *http.Request) {
	h.handleMovement(w, r, h.goalService.ContributeToGoal)
}

func (h *GoalHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	h.handleMovement(w, r, h.goalService.WithdrawFromGoal)
}

func (h *GoalHandler) handleMovement(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id, amount int64) (*models.GoalMovement, error)) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var req amountRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	movement, err := op(r.Context(), id, req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, movement, http.StatusOK)
}

func (h *GoalHandler) HandleListBreakdown(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	items, err := h.goalService.ListBreakdown(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, items, http.StatusOK)
}

func (h *GoalHandler) HandleAddBreakdownItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var input models.BreakdownItemInput
	if err := decodeJSON(w, r, &input, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	item, err := h.goalService.AddBreakdownItem(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, item, http.StatusCreated)
}

func (h *GoalHandler) HandleDeleteBreakdownItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := idParam(r, "itemID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.goalService.DeleteBreakdownItem(r.Context(), itemID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
