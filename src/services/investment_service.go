// backend/src/services/investment_service.go
package services

import (
	"context"
	"database/sql"

	"github.com/patrickmn/go-cache"
	"github.com/username/masdompet/backend/src/database"
	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/model"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/processors"
	"github.com/username/masdompet/backend/src/security/validation"
)

type investmentServiceImpl struct {
	db                   *sql.DB
	transactionProcessor *processors.TransactionProcessor
	reportCache          *cache.Cache
}

func NewInvestmentService(db *sql.DB, transactionProcessor *processors.TransactionProcessor, reportCache *cache.Cache) InvestmentService {
	return &investmentServiceImpl{
		db:                   db,
		transactionProcessor: transactionProcessor,
		reportCache:          reportCache,
	}
}

// CreateInvestment records the holding and the purchase expense together.
func (s *investmentServiceImpl) CreateInvestment(ctx context.Context, input models.InvestmentInput) (*models.Investment, error) {
	name := validation.SanitizeText(input.Name)
	typ := validation.SanitizeText(input.Type)
	if err := validation.ValidateRequiredText(name, validation.MaxNameLength, "name"); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredText(typ, validation.MaxNameLength, "type"); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveAmount(input.Amount, "amount"); err != nil {
		return nil, err
	}

	value := input.Amount
	inv := models.Investment{
		Name:         name,
		Amount:       input.Amount,
		Type:         typ,
		CurrentValue: &value,
		Date:         s.transactionProcessor.Now(),
	}

	var purchase models.Transaction
	err := database.WithTx(ctx, s.db, func(dbTx *sql.Tx) error {
		if err := model.InsertInvestment(ctx, dbTx, &inv); err != nil {
			return err
		}
		purchase = s.transactionProcessor.InvestmentPurchase(inv)
		return model.InsertTransaction(ctx, dbTx, &purchase)
	})
	if err != nil {
		return nil, err
	}

	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Investment created", "id", inv.ID, "amount", inv.Amount, "transactionID", purchase.ID)
	return &inv, nil
}

func (s *investmentServiceImpl) ListInvestments(ctx context.Context) ([]models.Investment, error) {
	return model.ListInvestments(ctx, s.db)
}

func (s *investmentServiceImpl) UpdateInvestmentValue(ctx context.Context, id int64, value int64) (*models.Investment, error) {
	if err := validation.ValidateNonNegativeAmount(value, "current value"); err != nil {
		return nil, err
	}

	var inv *models.Investment
	err := database.WithTx(ctx, s.db, func(dbTx *sql.Tx) error {
		ok, err := model.UpdateInvestmentValue(ctx, dbTx, id, value)
		if err != nil {
			return err
		}
		if err := missingUnless(ok, "investment", id); err != nil {
			return err
		}
		inv, err = model.GetInvestmentByID(ctx, dbTx, id)
		if err != nil {
			return notFound(err, "investment", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Investment value updated", "id", id, "value", value)
	return inv, nil
}

// WithdrawInvestment liquidates the whole position at its current value and
// records exactly one INCOME transaction for the payout. The one exception is
// a recorded current value of 0: the position is removed, the loss is
// reported in Profit, and no transaction is recorded because ledger amounts
// must be positive. Transaction is nil in that case. An unset current value
// pays back the purchase amount.
func (s *investmentServiceImpl) WithdrawInvestment(ctx context.Context, id int64) (*models.InvestmentWithdrawal, error) {
	var withdrawal models.InvestmentWithdrawal
	err := database.WithTx(ctx, s.db, func(dbTx *sql.Tx) error {
		inv, err := model.GetInvestmentByID(ctx, dbTx, id)
		if err != nil {
			return notFound(err, "investment", id)
		}

		payout := inv.Value()
		withdrawal = models.InvestmentWithdrawal{
			InvestmentID: inv.ID,
			Amount:       payout,
			Profit:       payout - inv.Amount,
		}

		ok, err := model.DeleteInvestment(ctx, dbTx, id)
		if err != nil {
			return err
		}
		if err := missingUnless(ok, "investment", id); err != nil {
			return err
		}

		if payout == 0 {
			return nil
		}
		income := s.transactionProcessor.InvestmentWithdrawal(*inv, payout, withdrawal.Profit)
		if err := model.InsertTransaction(ctx, dbTx, &income); err != nil {
			return err
		}
		withdrawal.Transaction = &income
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Investment withdrawn", "id", id, "amount", withdrawal.Amount, "profit", withdrawal.Profit)
	return &withdrawal, nil
}

func (s *investmentServiceImpl) DeleteInvestment(ctx context.Context, id int64) error {
	ok, err := model.DeleteInvestment(ctx, s.db, id)
	if err != nil {
		return err
	}
	if err := missingUnless(ok, "investment", id); err != nil {
		return err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Investment deleted", "id", id)
	return nil
}
