package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/username/masdompet/backend/src/models"
)

// ListCategories returns all categories, or only those of typ when it is set.
func ListCategories(ctx context.Context, db DBTX, typ models.TransactionType) ([]models.Category, error) {
	query := `SELECT id, name, type, icon, created_at FROM categories`
	var args []interface{}
	if typ != "" {
		query += ` WHERE type = ?`
		args = append(args, typ)
	}
	query += ` ORDER BY type ASC, name ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		var icon sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &icon, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning category row: %w", err)
		}
		c.Icon = icon.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func InsertCategory(ctx context.Context, db DBTX, c *models.Category) error {
	ts := now()
	res, err := db.ExecContext(ctx, `INSERT INTO categories (name, type, icon, created_at) VALUES (?, ?, ?, ?)`,
		c.Name, c.Type, nullString(c.Icon), ts)
	if err != nil {
		return fmt.Errorf("error inserting category: %w", err)
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	c.CreatedAt = ts
	return nil
}

func DeleteCategory(ctx context.Context, db DBTX, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting category %d: %w", id, err)
	}
	return affected(res)
}
