// backend/src/services/debt_service.go
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/username/masdompet/backend/src/database"
	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/model"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/processors"
	"github.com/username/masdompet/backend/src/security/validation"
)

type debtServiceImpl struct {
	db                   *sql.DB
	transactionProcessor *processors.TransactionProcessor
	reportCache          *cache.Cache
}

func NewDebtService(db *sql.DB, transactionProcessor *processors.TransactionProcessor, reportCache *cache.Cache) DebtService {
	return &debtServiceImpl{
		db:                   db,
		transactionProcessor: transactionProcessor,
		reportCache:          reportCache,
	}
}

func (s *debtServiceImpl) CreateDebt(ctx context.Context, input models.DebtInput) (*models.Debt, error) {
	name := validation.SanitizeText(input.Name)
	if err := validation.ValidateRequiredText(name, validation.MaxNameLength, "name"); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveAmount(input.Amount, "amount"); err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be PAYABLE or RECEIVABLE, got '%s'", validation.ErrValidationFailed, input.Type)
	}

	debt := models.Debt{
		Name:    name,
		Amount:  input.Amount,
		Type:    input.Type,
		DueDate: input.DueDate,
	}
	if err := model.InsertDebt(ctx, s.db, &debt); err != nil {
		return nil, err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Debt created", "id", debt.ID, "type", debt.Type, "amount", debt.Amount)
	return &debt, nil
}

func (s *debtServiceImpl) ListDebts(ctx context.Context) ([]models.Debt, error) {
	return model.ListDebts(ctx, s.db)
}

// DeleteDebt leaves payment transactions already recorded for the debt in place.
func (s *debtServiceImpl) DeleteDebt(ctx context.Context, id int64) error {
	ok, err := model.DeleteDebt(ctx, s.db, id)
	if err != nil {
		return err
	}
	if err := missingUnless(ok, "debt", id); err != nil {
		return err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Debt deleted", "id", id)
	return nil
}

// ToggleDebtStatus flips the paid flag without recording a transaction.
// Marking a debt paid moves its remaining amount into ClearedAmount;
// reopening it moves that amount back. A debt settled by payments has
// nothing cleared and reopens with a zero balance.
func (s *debtServiceImpl) ToggleDebtStatus(ctx context.Context, id int64) (*models.Debt, error) {
	var debt *models.Debt
	err := database.WithTx(ctx, s.db, func(dbTx *sql.Tx) error {
		var err error
		debt, err = model.GetDebtByID(ctx, dbTx, id)
		if err != nil {
			return notFound(err, "debt", id)
		}
		debt.IsPaid = !debt.IsPaid
		if debt.IsPaid {
			debt.ClearedAmount, debt.Amount = debt.Amount, 0
		} else {
			debt.Amount, debt.ClearedAmount = debt.ClearedAmount, 0
		}
		ok, err := model.UpdateDebtBalance(ctx, dbTx, debt)
		if err != nil {
			return err
		}
		return missingUnless(ok, "debt", id)
	})
	if err != nil {
		return nil, err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Debt status toggled", "id", id, "isPaid", debt.IsPaid, "amount", debt.Amount, "clearedAmount", debt.ClearedAmount)
	return debt, nil
}

func (s *debtServiceImpl) PayDebt(ctx context.Context, id int64, amount *int64) (*models.DebtPayment, error) {
	var payment models.DebtPayment
	err := database.WithTx(ctx, s.db, func(dbTx *sql.Tx) error {
		debt, err := model.GetDebtByID(ctx, dbTx, id)
		if err != nil {
			return notFound(err, "debt", id)
		}

		toPay := debt.Amount
		if amount != nil {
			toPay = *amount
		}
		if toPay <= 0 || toPay > debt.Amount {
			return fmt.Errorf("%w: payment of %d must be greater than zero and at most the remaining %d", ErrInvalidAmount, toPay, debt.Amount)
		}

		remaining := debt.Amount - toPay
		debt.Amount = remaining
		if remaining == 0 {
			debt.IsPaid = true
		}
		ok, err := model.UpdateDebtBalance(ctx, dbTx, debt)
		if err != nil {
			return err
		}
		if err := missingUnless(ok, "debt", id); err != nil {
			return err
		}

		companion := s.transactionProcessor.DebtPayment(*debt, toPay, remaining)
		if err := model.InsertTransaction(ctx, dbTx, &companion); err != nil {
			return err
		}

		payment = models.DebtPayment{Debt: *debt, Transaction: companion}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Debt payment recorded", "id", id, "paid", payment.Transaction.Amount, "remaining", payment.Debt.Amount, "transactionID", payment.Transaction.ID)
	return &payment, nil
}
