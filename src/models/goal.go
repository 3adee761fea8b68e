package models

import "time"

// Goal is a savings target. CurrentAmount may exceed TargetAmount.
type Goal struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	TargetAmount  int64      `json:"target_amount"`
	CurrentAmount int64      `json:"current_amount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	CoverImage    string     `json:"cover_image,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ProgressPercent is the share of the target reached, capped at 100 for display.
func (g Goal) ProgressPercent() float64 {
	if g.TargetAmount <= 0 {
		if g.CurrentAmount > 0 {
			return 100
		}
		return 0
	}
	p := float64(g.CurrentAmount) / float64(g.TargetAmount) * 100
	if p > 100 {
		return 100
	}
	return p
}

func (g Goal) IsComplete() bool {
	return g.TargetAmount > 0 && g.CurrentAmount >= g.TargetAmount
}

// GoalBreakdownItem is a named part of a goal's target, owned by the goal.
type GoalBreakdownItem struct {
	ID        int64     `json:"id"`
	GoalID    int64     `json:"goal_id"`
	ItemName  string    `json:"item_name"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type BreakdownItemInput struct {
	ItemName string `json:"item_name"`
	Amount   int64  `json:"amount"`
}

type GoalInput struct {
	Name           string               `json:"name"`
	TargetAmount   int64                `json:"target_amount"`
	Deadline       *time.Time           `json:"deadline,omitempty"`
	CoverImage     string               `json:"cover_image,omitempty"`
	BreakdownItems []BreakdownItemInput `json:"breakdown_items,omitempty"`
}

// GoalMovement is the outcome of a contribution or withdrawal.
type GoalMovement struct {
	Goal        Goal        `json:"goal"`
	Transaction Transaction `json:"transaction"`
}

// GoalDetail is a goal as served to clients, with derived progress and,
// when loaded, its breakdown items.
type GoalDetail struct {
	Goal
	Progress  float64             `json:"progress_percent"`
	Complete  bool                `json:"is_complete"`
	Breakdown []GoalBreakdownItem `json:"breakdown,omitempty"`
}

func NewGoalDetail(g Goal, breakdown []GoalBreakdownItem) GoalDetail {
	return GoalDetail{
		Goal:      g,
		Progress:  g.ProgressPercent(),
		Complete:  g.IsComplete(),
		Breakdown: breakdown,
	}
}
