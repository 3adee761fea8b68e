package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/masdompet/backend/src/model"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/processors"
	"github.com/username/masdompet/backend/src/security/validation"
)

func TestPayDebtPartialThenFull(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	debt, err := env.debts.CreateDebt(ctx, models.DebtInput{Name: "Budi", Amount: 100000, Type: models.DebtPayable})
	require.NoError(t, err)
	assert.False(t, debt.IsPaid)

	payment, err := env.debts.PayDebt(ctx, debt.ID, int64Ptr(40000))
	require.NoError(t, err)
	assert.Equal(t, int64(60000), payment.Debt.Amount)
	assert.False(t, payment.Debt.IsPaid)
	assert.Equal(t, int64(40000), payment.Transaction.Amount)
	assert.Equal(t, models.TransactionExpense, payment.Transaction.Type)
	assert.Equal(t, processors.CategoryDebtPayment, payment.Transaction.Category)
	assert.Equal(t, "Pembayaran hutang kepada/dari Budi (Sebagian)", payment.Transaction.Description)

	txs := env.transactions(t)
	require.Len(t, txs, 1)
	assert.Equal(t, models.OriginDebtPayment, txs[0].Origin)

	payment, err = env.debts.PayDebt(ctx, debt.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, payment.Debt.Amount)
	assert.True(t, payment.Debt.IsPaid)
	assert.Equal(t, int64(60000), payment.Transaction.Amount)
	assert.Equal(t, "Pembayaran hutang kepada/dari Budi", payment.Transaction.Description)

	stored, err := model.GetDebtByID(ctx, env.db, debt.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPaid)
	assert.Zero(t, stored.Amount)
	assert.Equal(t, 2, env.countTransactions(t))
}

func TestPayReceivableRecordsExpense(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	debt, err := env.debts.CreateDebt(ctx, models.DebtInput{Name: "Sari", Amount: 50000, Type: models.DebtReceivable})
	require.NoError(t, err)

	payment, err := env.debts.PayDebt(ctx, debt.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionExpense, payment.Transaction.Type)
	assert.Equal(t, processors.CategoryReceivablePayment, payment.Transaction.Category)
	assert.Equal(t, "Pembayaran piutang kepada/dari Sari", payment.Transaction.Description)
}

func TestPayDebtRejectsInvalidAmounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	debt, err := env.debts.CreateDebt(ctx, models.DebtInput{Name: "Budi", Amount: 100000, Type: models.DebtPayable})
	require.NoError(t, err)

	for _, amount := range []int64{0, -1, 100001} {
		_, err := env.debts.PayDebt(ctx, debt.ID, int64Ptr(amount))
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %d", amount)
		assert.ErrorIs(t, err, validation.ErrValidationFailed)
	}

	stored, err := model.GetDebtByID(ctx, env.db, debt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), stored.Amount)
	assert.False(t, stored.IsPaid)
	assert.Zero(t, env.countTransactions(t))
}

func TestPayDebtOnPaidDebtIsRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	debt, err := env.debts.CreateDebt(ctx, models.DebtInput{Name: "Budi", Amount: 1000, Type: models.DebtPayable})
	require.NoError(t, err)
	_, err = env.debts.PayDebt(ctx, debt.ID, nil)
	require.NoError(t, err)

	_, err = env.debts.PayDebt(ctx, debt.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, 1, env.countTransactions(t))
}

func TestPayDebtNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.debts.PayDebt(context.Background(), 42, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, env.countTransactions(t))
}

func TestPayDebtIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	debt, err := env.debts.CreateDebt(ctx, models.DebtInput{Name: "Budi", Amount: 100000, Type: models.DebtPayable})
	require.NoError(t, err)

	// Make the companion insert fail after the debt update has run.
	_, err = env.db.Exec(`DROP TABLE transactions`)
	require.NoError(t, err)

	_, err = env.debts.PayDebt(ctx, debt.ID, int64Ptr(40000))
	require.Error(t, err)

	stored, err := model.GetDebtByID(ctx, env.db, debt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), stored.Amount)
	assert.False(t, stored.IsPaid)
}

func TestToggleDebtStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	debt, err := env.debts.CreateDebt(ctx, models.DebtInput{Name: "Budi", Amount: 5000, Type: models.DebtPayable})
	require.NoError(t, err)

	toggled, err := env.debts.ToggleDebtStatus(ctx, debt.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPaid)
	assert.Zero(t, toggled.Amount)
	assert.Equal(t, int64(5000), toggled.ClearedAmount)

	// Reopening restores the balance, which can then be paid normally.
	toggled, err = env.debts.ToggleDebtStatus(ctx, debt.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsPaid)
	assert.Equal(t, int64(5000), toggled.Amount)
	assert.Zero(t, toggled.ClearedAmount)
	assert.Zero(t, env.countTransactions(t))

	payment, err := env.debts.PayDebt(ctx, debt.ID, nil)
	require.NoError(t, err)
	assert.True(t, payment.Debt.IsPaid)
	assert.Equal(t, int64(5000), payment.Transaction.Amount)

	_, err = env.debts.ToggleDebtStatus(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAndDeleteDebt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.debts.CreateDebt(ctx, models.DebtInput{Name: "Budi", Amount: 5000, Type: "LOAN"})
	assert.ErrorIs(t, err, validation.ErrValidationFailed)
	_, err = env.debts.CreateDebt(ctx, models.DebtInput{Name: " ", Amount: 5000, Type: models.DebtPayable})
	assert.ErrorIs(t, err, validation.ErrValidationFailed)

	debt, err := env.debts.CreateDebt(ctx, models.DebtInput{Name: "Budi", Amount: 5000, Type: models.DebtPayable})
	require.NoError(t, err)
	_, err = env.debts.PayDebt(ctx, debt.ID, int64Ptr(1000))
	require.NoError(t, err)

	require.NoError(t, env.debts.DeleteDebt(ctx, debt.ID))
	debts, err := env.debts.ListDebts(ctx)
	require.NoError(t, err)
	assert.Empty(t, debts)
	assert.Equal(t, 1, env.countTransactions(t))
	assert.ErrorIs(t, env.debts.DeleteDebt(ctx, debt.ID), ErrNotFound)
}

func TestToggleDebtSettledByPaymentReopensEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	debt, err := env.debts.CreateDebt(ctx, models.DebtInput{Name: "Sari", Amount: 3000, Type: models.DebtReceivable})
	require.NoError(t, err)
	_, err = env.debts.PayDebt(ctx, debt.ID, nil)
	require.NoError(t, err)

	reopened, err := env.debts.ToggleDebtStatus(ctx, debt.ID)
	require.NoError(t, err)
	assert.False(t, reopened.IsPaid)
	assert.Zero(t, reopened.Amount)
	assert.Zero(t, reopened.ClearedAmount)
}
