package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/username/masdompet/backend/src/models"
)

const debtColumns = `id, name, amount, type, due_date, is_paid, cleared_amount, created_at, updated_at`

func scanDebt(row rowScanner) (models.Debt, error) {
	var d models.Debt
	var dueDate sql.NullTime
	if err := row.Scan(&d.ID, &d.Name, &d.Amount, &d.Type, &dueDate, &d.IsPaid, &d.ClearedAmount, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return d, err
	}
	d.DueDate = timePtr(dueDate)
	return d, nil
}

func InsertDebt(ctx context.Context, db DBTX, d *models.Debt) error {
	ts := now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO debts (name, amount, type, due_date, is_paid, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.Name, d.Amount, d.Type, nullTime(d.DueDate), d.IsPaid, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("error inserting debt: %w", err)
	}
	if d.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	d.CreatedAt, d.UpdatedAt = ts, ts
	return nil
}

// GetDebtByID returns sql.ErrNoRows when the debt does not exist.
func GetDebtByID(ctx context.Context, db DBTX, id int64) (*models.Debt, error) {
	d, err := scanDebt(db.QueryRowContext(ctx, `SELECT `+debtColumns+` FROM debts WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func ListDebts(ctx context.Context, db DBTX) ([]models.Debt, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+debtColumns+` FROM debts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying debts: %w", err)
	}
	defer rows.Close()

	debts := []models.Debt{}
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning debt row: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

// UpdateDebtBalance writes the remaining amount, the paid flag and the
// cleared amount together.
func UpdateDebtBalance(ctx context.Context, db DBTX, d *models.Debt) (bool, error) {
	res, err := db.ExecContext(ctx, `UPDATE debts SET amount = ?, is_paid = ?, cleared_amount = ?, updated_at = ? WHERE id = ?`,
		d.Amount, d.IsPaid, d.ClearedAmount, now(), d.ID)
	if err != nil {
		return false, fmt.Errorf("error updating debt %d: %w", d.ID, err)
	}
	return affected(res)
}

func DeleteDebt(ctx context.Context, db DBTX, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM debts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting debt %d: %w", id, err)
	}
	return affected(res)
}
