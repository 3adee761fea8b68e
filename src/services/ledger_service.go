// backend/src/services/ledger_service.go
package services

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/username/masdompet/backend/src/database"
	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/model"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/parsers/dompet"
	"github.com/username/masdompet/backend/src/processors"
	"github.com/username/masdompet/backend/src/security/validation"
)

type ledgerServiceImpl struct {
	db                   *sql.DB
	transactionProcessor *processors.TransactionProcessor
	reportCache          *cache.Cache
}

func NewLedgerService(db *sql.DB, transactionProcessor *processors.TransactionProcessor, reportCache *cache.Cache) LedgerService {
	return &ledgerServiceImpl{
		db:                   db,
		transactionProcessor: transactionProcessor,
		reportCache:          reportCache,
	}
}

func (s *ledgerServiceImpl) CreateTransaction(ctx context.Context, input models.TransactionInput) (*models.Transaction, error) {
	tx, err := s.transactionProcessor.FromInput(input)
	if err != nil {
		return nil, err
	}
	if err := model.InsertTransaction(ctx, s.db, &tx); err != nil {
		return nil, err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Transaction created", "id", tx.ID, "type", tx.Type, "amount", tx.Amount)
	return &tx, nil
}

func (s *ledgerServiceImpl) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return model.ListTransactions(ctx, s.db)
}

func (s *ledgerServiceImpl) ListTransactionsByCategory(ctx context.Context, category string) ([]models.Transaction, error) {
	category = strings.TrimSpace(category)
	if err := validation.ValidateStringNotEmpty(category, "category"); err != nil {
		return nil, err
	}
	return model.ListTransactionsByCategory(ctx, s.db, category)
}

func (s *ledgerServiceImpl) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	tx, err := model.GetTransactionByID(ctx, s.db, id)
	if err != nil {
		return nil, notFound(err, "transaction", id)
	}
	return tx, nil
}

func (s *ledgerServiceImpl) UpdateTransaction(ctx context.Context, id int64, input models.TransactionInput) (*models.Transaction, error) {
	updated, err := s.transactionProcessor.FromInput(input)
	if err != nil {
		return nil, err
	}

	err = database.WithTx(ctx, s.db, func(dbTx *sql.Tx) error {
		existing, err := model.GetTransactionByID(ctx, dbTx, id)
		if err != nil {
			return notFound(err, "transaction", id)
		}
		if existing.IsCompanion() {
			return fmt.Errorf("%w: transaction %d was recorded by %s", ErrImmutable, id, existing.Origin)
		}
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		ok, err := model.UpdateTransaction(ctx, dbTx, &updated)
		if err != nil {
			return err
		}
		return missingUnless(ok, "transaction", id)
	})
	if err != nil {
		return nil, err
	}

	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Transaction updated", "id", id)
	return &updated, nil
}

// DeleteTransaction removes any transaction, companions included. The entity
// that caused a companion is left untouched.
func (s *ledgerServiceImpl) DeleteTransaction(ctx context.Context, id int64) error {
	ok, err := model.DeleteTransaction(ctx, s.db, id)
	if err != nil {
		return err
	}
	if err := missingUnless(ok, "transaction", id); err != nil {
		return err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Transaction deleted", "id", id)
	return nil
}

func (s *ledgerServiceImpl) BulkCreateTransactions(ctx context.Context, inputs []models.TransactionInput) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0, len(inputs))
	for i, input := range inputs {
		tx, err := s.transactionProcessor.FromInput(input)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txs = append(txs, tx)
	}
	if len(txs) == 0 {
		return txs, nil
	}

	err := database.WithTx(ctx, s.db, func(dbTx *sql.Tx) error {
		for i := range txs {
			if err := model.InsertTransaction(ctx, dbTx, &txs[i]); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Bulk transactions created", "count", len(txs))
	return txs, nil
}

// ExportCSV writes every transaction in the import column order, oldest first.
func (s *ledgerServiceImpl) ExportCSV(ctx context.Context, w io.Writer) error {
	txs, err := model.ListTransactionsByDate(ctx, s.db)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(strings.Split(dompet.Header, ",")); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, tx := range txs {
		record := []string{
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			validation.SanitizeForFormulaInjection(tx.Category),
			strconv.FormatInt(tx.Amount, 10),
			validation.SanitizeForFormulaInjection(tx.Description),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write export row for transaction %d: %w", tx.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	logger.FromContext(ctx).Info("Transactions exported", "count", len(txs))
	return nil
}
