// backend/src/services/goal_service.go
package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/patrickmn/go-cache"
	"github.com/username/masdompet/backend/src/database"
	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/model"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/processors"
	"github.com/username/masdompet/backend/src/security/validation"
)

type goalServiceImpl struct {
	db                   *sql.DB
	transactionProcessor *processors.TransactionProcessor
	reportCache          *cache.Cache
}

func NewGoalService(db *sql.DB, transactionProcessor *processors.TransactionProcessor, reportCache *cache.Cache) GoalService {
	return &goalServiceImpl{
		db:                   db,
		transactionProcessor: transactionProcessor,
		reportCache:          reportCache,
	}
}

func sanitizeBreakdownItem(input models.BreakdownItemInput) (models.BreakdownItemInput, error) {
	input.ItemName = validation.SanitizeText(input.ItemName)
	if err := validation.ValidateRequiredText(input.ItemName, validation.MaxNameLength, "item name"); err != nil {
		return input, err
	}
	if err := validation.ValidatePositiveAmount(input.Amount, "item amount"); err != nil {
		return input, err
	}
	return input, nil
}

// CreateGoal stores the goal and its breakdown items in one database
// transaction. The target is taken as given, not derived from the items.
func (s *goalServiceImpl) CreateGoal(ctx context.Context, input models.GoalInput) (*models.GoalDetail, error) {
	name := validation.SanitizeText(input.Name)
	coverImage := validation.StripUnprintable(input.CoverImage)
	if err := validation.ValidateRequiredText(name, validation.MaxNameLength, "name"); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeAmount(input.TargetAmount, "target amount"); err != nil {
		return nil, err
	}
	if err := validation.ValidateStringMaxLength(coverImage, validation.MaxCoverImageLength, "cover image"); err != nil {
		return nil, err
	}
	if err := validation.CheckXSSPatterns(coverImage, "cover image"); err != nil {
		return nil, err
	}

	items := make([]models.BreakdownItemInput, 0, len(input.BreakdownItems))
	for i, raw := range input.BreakdownItems {
		item, err := sanitizeBreakdownItem(raw)
		if err != nil {
			return nil, fmt.Errorf("breakdown item %d: %w", i+1, err)
		}
		items = append(items, item)
	}

	goal := models.Goal{
		Name:         name,
		TargetAmount: input.TargetAmount,
		Deadline:     input.Deadline,
		CoverImage:   coverImage,
	}

	var breakdown []models.GoalBreakdownItem
	err := database.WithTx(ctx, s.db, func(dbTx *sql.Tx) error {
		if err := model.InsertGoal(ctx, dbTx, &goal); err != nil {
			return err
		}
		var err error
		breakdown, err = model.InsertBreakdownItems(ctx, dbTx, goal.ID, items)
		return err
	})
	if err != nil {
		return nil, err
	}

	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Goal created", "id", goal.ID, "target", goal.TargetAmount, "breakdownItems", len(breakdown))
	detail := models.NewGoalDetail(goal, breakdown)
	return &detail, nil
}

func (s *goalServiceImpl) ListGoals(ctx context.Context) ([]models.GoalDetail, error) {
	goals, err := model.ListGoals(ctx, s.db)
	if err != nil {
		return nil, err
	}
	details := make([]models.GoalDetail, 0, len(goals))
	for _, g := range goals {
		details = append(details, models.NewGoalDetail(g, nil))
	}
	return details, nil
}

func (s *goalServiceImpl) GetGoal(ctx context.Context, id int64) (*models.GoalDetail, error) {
	return s.loadDetail(ctx, s.db, id)
}

func (s *goalServiceImpl) loadDetail(ctx context.Context, db model.DBTX, id int64) (*models.GoalDetail, error) {
	goal, err := model.GetGoalByID(ctx, db, id)
	if err != nil {
		return nil, notFound(err, "goal", id)
	}
	items, err := model.ListBreakdownItems(ctx, db, id)
	if err != nil {
		return nil, err
	}
	detail := models.NewGoalDetail(*goal, items)
	return &detail, nil
}

// DeleteGoal removes the goal and its breakdown items. Contribution and
// withdrawal transactions stay in the ledger.
func (s *goalServiceImpl) DeleteGoal(ctx context.Context, id int64) error {
	ok, err := model.DeleteGoal(ctx, s.db, id)
	if err != nil {
		return err
	}
	if err := missingUnless(ok, "goal", id); err != nil {
		return err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Goal deleted", "id", id)
	return nil
}

func (s *goalServiceImpl) UpdateGoalTarget(ctx context.Context, id int64, target int64) (*models.GoalDetail, error) {
	if err := validation.ValidateNonNegativeAmount(target, "target amount"); err != nil {
		return nil, err
	}
	return s.setTarget(ctx, id, func(context.Context, *sql.Tx) (int64, error) { return target, nil })
}

// SyncTargetFromBreakdown sets the target to the sum of the breakdown items.
func (s *goalServiceImpl) SyncTargetFromBreakdown(ctx context.Context, id int64) (*models.GoalDetail, error) {
	return s.setTarget(ctx, id, func(ctx context.Context, dbTx *sql.Tx) (int64, error) {
		return model.SumBreakdownItems(ctx, dbTx, id)
	})
}

func (s *goalServiceImpl) setTarget(ctx context.Context, id int64, targetFn func(context.Context, *sql.Tx) (int64, error)) (*models.GoalDetail, error) {
	var detail *models.GoalDetail
	err := database.WithTx(ctx, s.db, func(dbTx *sql.Tx) error {
		target, err := targetFn(ctx, dbTx)
		if err != nil {
			return err
		}
		ok, err := model.UpdateGoalTarget(ctx, dbTx, id, target)
		if err != nil {
			return err
		}
		if err := missingUnless(ok, "goal", id); err != nil {
			return err
		}
		detail, err = s.loadDetail(ctx, dbTx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Goal target updated", "id", id, "target", detail.TargetAmount)
	return detail, nil
}

func (s *goalServiceImpl) ListBreakdown(ctx context.Context, goalID int64) ([]models.GoalBreakdownItem, error) {
	if _, err := model.GetGoalByID(ctx, s.db, goalID); err != nil {
		return nil, notFound(err, "goal", goalID)
	}
	return model.ListBreakdownItems(ctx, s.db, goalID)
}

func (s *goalServiceImpl) AddBreakdownItem(ctx context.Context, goalID int64, input models.BreakdownItemInput) (*models.GoalBreakdownItem, error) {
	item, err := sanitizeBreakdownItem(input)
	if err != nil {
		return nil, err
	}

	var created models.GoalBreakdownItem
	err = database.WithTx(ctx, s.db, func(dbTx *sql.Tx) error {
		if _, err := model.GetGoalByID(ctx, dbTx, goalID); err != nil {
			return notFound(err, "goal", goalID)
		}
		items, err := model.InsertBreakdownItems(ctx, dbTx, goalID, []models.BreakdownItemInput{item})
		if err != nil {
			return err
		}
		created = items[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Breakdown item added", "goalID", goalID, "itemID", created.ID)
	return &created, nil
}

func (s *goalServiceImpl) DeleteBreakdownItem(ctx context.Context, itemID int64) error {
	ok, err := model.DeleteBreakdownItem(ctx, s.db, itemID)
	if err != nil {
		return err
	}
	if err := missingUnless(ok, "breakdown item", itemID); err != nil {
		return err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Breakdown item deleted", "itemID", itemID)
	return nil
}

// ContributeToGoal moves money into the goal. Contributions past the target are allowed.
func (s *goalServiceImpl) ContributeToGoal(ctx context.Context, id int64, amount int64) (*models.GoalMovement, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: contribution must be greater than zero, got %d", ErrInvalidAmount, amount)
	}
	return s.move(ctx, id, func(goal *models.Goal) (models.Transaction, error) {
		if amount > math.MaxInt64-goal.CurrentAmount {
			return models.Transaction{}, fmt.Errorf("%w: contribution of %d would overflow the saved %d", ErrInvalidAmount, amount, goal.CurrentAmount)
		}
		goal.CurrentAmount += amount
		return s.transactionProcessor.GoalContribution(*goal, amount), nil
	})
}

func (s *goalServiceImpl) WithdrawFromGoal(ctx context.Context, id int64, amount int64) (*models.GoalMovement, error) {
	return s.move(ctx, id, func(goal *models.Goal) (models.Transaction, error) {
		if amount <= 0 || amount > goal.CurrentAmount {
			return models.Transaction{}, fmt.Errorf("%w: withdrawal of %d must be greater than zero and at most the saved %d", ErrInvalidAmount, amount, goal.CurrentAmount)
		}
		goal.CurrentAmount -= amount
		return s.transactionProcessor.GoalWithdrawal(*goal, amount), nil
	})
}

// move applies a balance change to the goal and records its companion
// transaction in the same database transaction.
func (s *goalServiceImpl) move(ctx context.Context, id int64, apply func(goal *models.Goal) (models.Transaction, error)) (*models.GoalMovement, error) {
	var movement models.GoalMovement
	err := database.WithTx(ctx, s.db, func(dbTx *sql.Tx) error {
		goal, err := model.GetGoalByID(ctx, dbTx, id)
		if err != nil {
			return notFound(err, "goal", id)
		}
		companion, err := apply(goal)
		if err != nil {
			return err
		}
		ok, err := model.UpdateGoalCurrentAmount(ctx, dbTx, id, goal.CurrentAmount)
		if err != nil {
			return err
		}
		if err := missingUnless(ok, "goal", id); err != nil {
			return err
		}
		if err := model.InsertTransaction(ctx, dbTx, &companion); err != nil {
			return err
		}
		movement = models.GoalMovement{Goal: *goal, Transaction: companion}
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Goal balance changed", "id", id, "origin", movement.Transaction.Origin, "amount", movement.Transaction.Amount, "currentAmount", movement.Goal.CurrentAmount)
	return &movement, nil
}
