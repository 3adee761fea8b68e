package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/username/masdompet/backend/src/models"
)

const investmentColumns = `id, name, amount, type, current_value, date, created_at, updated_at`

func scanInvestment(row rowScanner) (models.Investment, error) {
	var inv models.Investment
	var currentValue sql.NullInt64
	if err := row.Scan(&inv.ID, &inv.Name, &inv.Amount, &inv.Type, &currentValue, &inv.Date, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return inv, err
	}
	if currentValue.Valid {
		v := currentValue.Int64
		inv.CurrentValue = &v
	}
	return inv, nil
}

func InsertInvestment(ctx context.Context, db DBTX, inv *models.Investment) error {
	ts := now()
	var currentValue sql.NullInt64
	if inv.CurrentValue != nil {
		currentValue = sql.NullInt64{Int64: *inv.CurrentValue, Valid: true}
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO investments (name, amount, type, current_value, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.Name, inv.Amount, inv.Type, currentValue, inv.Date.UTC(), ts, ts,
	)
	if err != nil {
		return fmt.Errorf("error inserting investment: %w", err)
	}
	if inv.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	inv.Date = inv.Date.UTC()
	inv.CreatedAt, inv.UpdatedAt = ts, ts
	return nil
}

// GetInvestmentByID returns sql.ErrNoRows when the investment does not exist.
func GetInvestmentByID(ctx context.Context, db DBTX, id int64) (*models.Investment, error) {
	inv, err := scanInvestment(db.QueryRowContext(ctx, `SELECT `+investmentColumns+` FROM investments WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func ListInvestments(ctx context.Context, db DBTX) ([]models.Investment, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+investmentColumns+` FROM investments ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying investments: %w", err)
	}
	defer rows.Close()

	investments := []models.Investment{}
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning investment row: %w", err)
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

func UpdateInvestmentValue(ctx context.Context, db DBTX, id, value int64) (bool, error) {
	res, err := db.ExecContext(ctx, `UPDATE investments SET current_value = ?, updated_at = ? WHERE id = ?`, value, now(), id)
	if err != nil {
		return false, fmt.Errorf("error updating investment %d: %w", id, err)
	}
	return affected(res)
}

func DeleteInvestment(ctx context.Context, db DBTX, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM investments WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting investment %d: %w", id, err)
	}
	return affected(res)
}
