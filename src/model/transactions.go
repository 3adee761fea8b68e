package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/username/masdompet/backend/src/models"
)

const transactionColumns = `id, amount, type, category, description, date, origin, created_at, updated_at`

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var t models.Transaction
	var description, origin sql.NullString
	err := row.Scan(&t.ID, &t.Amount, &t.Type, &t.Category, &description, &t.Date, &origin, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	t.Description = description.String
	t.Origin = models.Origin(origin.String)
	return t, nil
}

func queryTransactions(ctx context.Context, db DBTX, query string, args ...any) ([]models.Transaction, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transaction rows: %w", err)
	}
	return transactions, nil
}

// InsertTransaction stores t and fills in its ID and audit timestamps.
func InsertTransaction(ctx context.Context, db DBTX, t *models.Transaction) error {
	ts := now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO transactions (amount, type, category, description, date, origin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Amount, t.Type, t.Category, nullString(t.Description), t.Date.UTC(), nullString(string(t.Origin)), ts, ts,
	)
	if err != nil {
		return fmt.Errorf("error inserting transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id
	t.Date = t.Date.UTC()
	t.CreatedAt = ts
	t.UpdatedAt = ts
	return nil
}

// GetTransactionByID returns sql.ErrNoRows when the transaction does not exist.
func GetTransactionByID(ctx context.Context, db DBTX, id int64) (*models.Transaction, error) {
	row := db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTransactions returns every transaction, newest first.
func ListTransactions(ctx context.Context, db DBTX) ([]models.Transaction, error) {
	return queryTransactions(ctx, db, `SELECT `+transactionColumns+` FROM transactions ORDER BY created_at DESC, id DESC`)
}

func ListTransactionsByCategory(ctx context.Context, db DBTX, category string) ([]models.Transaction, error) {
	return queryTransactions(ctx, db,
		`SELECT `+transactionColumns+` FROM transactions WHERE category = ? ORDER BY date DESC, id DESC`, category)
}

// ListTransactionsByDate returns every transaction in chronological order.
func ListTransactionsByDate(ctx context.Context, db DBTX) ([]models.Transaction, error) {
	return queryTransactions(ctx, db, `SELECT `+transactionColumns+` FROM transactions ORDER BY date ASC, id ASC`)
}

// UpdateTransaction overwrites the user-editable fields. It reports false
// when no row has the given id.
func UpdateTransaction(ctx context.Context, db DBTX, t *models.Transaction) (bool, error) {
	t.UpdatedAt = now()
	res, err := db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = ?, type = ?, category = ?, description = ?, date = ?, updated_at = ?
		WHERE id = ?`,
		t.Amount, t.Type, t.Category, nullString(t.Description), t.Date.UTC(), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return false, fmt.Errorf("error updating transaction %d: %w", t.ID, err)
	}
	return affected(res)
}

func DeleteTransaction(ctx context.Context, db DBTX, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting transaction %d: %w", id, err)
	}
	return affected(res)
}

// CountTransactions is used by callers that need to assert nothing was written.
func CountTransactions(ctx context.Context, db DBTX) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n)
	return n, err
}
