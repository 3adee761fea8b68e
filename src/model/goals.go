package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/username/masdompet/backend/src/models"
)

const goalColumns = `id, name, target_amount, current_amount, deadline, cover_image, created_at, updated_at`

func scanGoal(row rowScanner) (models.Goal, error) {
	var g models.Goal
	var deadline sql.NullTime
	var coverImage sql.NullString
	if err := row.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &deadline, &coverImage, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return g, err
	}
	g.Deadline = timePtr(deadline)
	g.CoverImage = coverImage.String
	return g, nil
}

func InsertGoal(ctx context.Context, db DBTX, g *models.Goal) error {
	ts := now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO goals (name, target_amount, current_amount, deadline, cover_image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.Name, g.TargetAmount, g.CurrentAmount, nullTime(g.Deadline), nullString(g.CoverImage), ts, ts,
	)
	if err != nil {
		return fmt.Errorf("error inserting goal: %w", err)
	}
	if g.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	g.CreatedAt, g.UpdatedAt = ts, ts
	return nil
}

// GetGoalByID returns sql.ErrNoRows when the goal does not exist.
func GetGoalByID(ctx context.Context, db DBTX, id int64) (*models.Goal, error) {
	g, err := scanGoal(db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func ListGoals(ctx context.Context, db DBTX) ([]models.Goal, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+goalColumns+` FROM goals ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning goal row: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func UpdateGoalCurrentAmount(ctx context.Context, db DBTX, id, currentAmount int64) (bool, error) {
	res, err := db.ExecContext(ctx, `UPDATE goals SET current_amount = ?, updated_at = ? WHERE id = ?`, currentAmount, now(), id)
	if err != nil {
		return false, fmt.Errorf("error updating goal %d progress: %w", id, err)
	}
	return affected(res)
}

func UpdateGoalTarget(ctx context.Context, db DBTX, id, target int64) (bool, error) {
	res, err := db.ExecContext(ctx, `UPDATE goals SET target_amount = ?, updated_at = ? WHERE id = ?`, target, now(), id)
	if err != nil {
		return false, fmt.Errorf("error updating goal %d target: %w", id, err)
	}
	return affected(res)
}

// DeleteGoal removes the goal; its breakdown items go with it through the
// ON DELETE CASCADE foreign key.
func DeleteGoal(ctx context.Context, db DBTX, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting goal %d: %w", id, err)
	}
	return affected(res)
}

// InsertBreakdownItems stores all items for goalID through one prepared
// statement. Callers that need all-or-nothing pass a *sql.Tx.
func InsertBreakdownItems(ctx context.Context, db DBTX, goalID int64, items []models.BreakdownItemInput) ([]models.GoalBreakdownItem, error) {
	created := make([]models.GoalBreakdownItem, 0, len(items))
	if len(items) == 0 {
		return created, nil
	}

	stmt, err := db.PrepareContext(ctx, `INSERT INTO goal_breakdowns (goal_id, item_name, amount, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("error preparing breakdown insert: %w", err)
	}
	defer stmt.Close()

	ts := now()
	for _, item := range items {
		res, err := stmt.ExecContext(ctx, goalID, item.ItemName, item.Amount, ts)
		if err != nil {
			return nil, fmt.Errorf("error inserting breakdown item '%s' for goal %d: %w", item.ItemName, goalID, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		created = append(created, models.GoalBreakdownItem{
			ID:        id,
			GoalID:    goalID,
			ItemName:  item.ItemName,
			Amount:    item.Amount,
			CreatedAt: ts,
		})
	}
	return created, nil
}

func ListBreakdownItems(ctx context.Context, db DBTX, goalID int64) ([]models.GoalBreakdownItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, goal_id, item_name, amount, created_at FROM goal_breakdowns WHERE goal_id = ? ORDER BY id ASC`, goalID)
	if err != nil {
		return nil, fmt.Errorf("error querying breakdown for goal %d: %w", goalID, err)
	}
	defer rows.Close()

	items := []models.GoalBreakdownItem{}
	for rows.Next() {
		var item models.GoalBreakdownItem
		if err := rows.Scan(&item.ID, &item.GoalID, &item.ItemName, &item.Amount, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning breakdown row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func SumBreakdownItems(ctx context.Context, db DBTX, goalID int64) (int64, error) {
	var total int64
	err := db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM goal_breakdowns WHERE goal_id = ?`, goalID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing breakdown for goal %d: %w", goalID, err)
	}
	return total, nil
}

func DeleteBreakdownItem(ctx context.Context, db DBTX, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM goal_breakdowns WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting breakdown item %d: %w", id, err)
	}
	return affected(res)
}
