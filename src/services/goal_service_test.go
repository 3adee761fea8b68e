package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/masdompet/backend/src/model"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/processors"
	"github.com/username/masdompet/backend/src/security/validation"
)

func createGoal(t *testing.T, env *testEnv, target int64, items ...models.BreakdownItemInput) *models.GoalDetail {
	t.Helper()
	goal, err := env.goals.CreateGoal(context.Background(), models.GoalInput{
		Name:           "Liburan Bali",
		TargetAmount:   target,
		BreakdownItems: items,
	})
	require.NoError(t, err)
	return goal
}

func TestCreateGoalWithBreakdown(t *testing.T) {
	env := newTestEnv(t)
	goal := createGoal(t, env, 1000000,
		models.BreakdownItemInput{ItemName: "Tiket", Amount: 1500000},
		models.BreakdownItemInput{ItemName: "Hotel", Amount: 2000000},
	)

	assert.Equal(t, int64(1000000), goal.TargetAmount)
	assert.Zero(t, goal.CurrentAmount)
	require.Len(t, goal.Breakdown, 2)
	assert.Equal(t, "Tiket", goal.Breakdown[0].ItemName)
	assert.Equal(t, "Hotel", goal.Breakdown[1].ItemName)

	fetched, err := env.goals.GetGoal(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Breakdown, 2)
	assert.Zero(t, env.countTransactions(t))
}

func TestCreateGoalRejectsBadItemWithoutWriting(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.goals.CreateGoal(context.Background(), models.GoalInput{
		Name:         "Rumah",
		TargetAmount: 100,
		BreakdownItems: []models.BreakdownItemInput{
			{ItemName: "DP", Amount: 100},
			{ItemName: "Notaris", Amount: 0},
		},
	})
	assert.ErrorIs(t, err, validation.ErrValidationFailed)

	goals, err := env.goals.ListGoals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestContributeAndWithdraw(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goal := createGoal(t, env, 300000)

	movement, err := env.goals.ContributeToGoal(ctx, goal.ID, 200000)
	require.NoError(t, err)
	assert.Equal(t, int64(200000), movement.Goal.CurrentAmount)
	assert.Equal(t, models.TransactionExpense, movement.Transaction.Type)
	assert.Equal(t, processors.CategoryGoalContribution, movement.Transaction.Category)
	assert.Equal(t, "Kontribusi untuk Liburan Bali", movement.Transaction.Description)

	movement, err = env.goals.WithdrawFromGoal(ctx, goal.ID, 50000)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), movement.Goal.CurrentAmount)
	assert.Equal(t, models.TransactionIncome, movement.Transaction.Type)
	assert.Equal(t, processors.CategoryGoalWithdrawal, movement.Transaction.Category)
	assert.Equal(t, "Penarikan dari Liburan Bali", movement.Transaction.Description)

	assert.Equal(t, 2, env.countTransactions(t))
}

func TestContributionPastTargetIsAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goal := createGoal(t, env, 100000)

	movement, err := env.goals.ContributeToGoal(ctx, goal.ID, 150000)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), movement.Goal.CurrentAmount)

	detail, err := env.goals.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, detail.Complete)
	assert.Equal(t, float64(100), detail.Progress)
}

func TestWithdrawMoreThanSavedIsRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goal := createGoal(t, env, 500000)

	_, err := env.goals.ContributeToGoal(ctx, goal.ID, 200000)
	require.NoError(t, err)

	_, err = env.goals.WithdrawFromGoal(ctx, goal.ID, 300000)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = env.goals.WithdrawFromGoal(ctx, goal.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	stored, err := model.GetGoalByID(ctx, env.db, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200000), stored.CurrentAmount)
	assert.Equal(t, 1, env.countTransactions(t))
}

func TestContributeRejectsNonPositiveAndMissingGoal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goal := createGoal(t, env, 500000)

	_, err := env.goals.ContributeToGoal(ctx, goal.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = env.goals.ContributeToGoal(ctx, 999, 100)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, env.countTransactions(t))
}

func TestContributeIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goal := createGoal(t, env, 500000)

	_, err := env.db.Exec(`DROP TABLE transactions`)
	require.NoError(t, err)

	_, err = env.goals.ContributeToGoal(ctx, goal.ID, 100000)
	require.Error(t, err)

	stored, err := model.GetGoalByID(ctx, env.db, goal.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.CurrentAmount)
}

func TestDeleteGoalCascadesBreakdownKeepsTransactions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goal := createGoal(t, env, 100000, models.BreakdownItemInput{ItemName: "Tiket", Amount: 100000})

	_, err := env.goals.ContributeToGoal(ctx, goal.ID, 50000)
	require.NoError(t, err)

	require.NoError(t, env.goals.DeleteGoal(ctx, goal.ID))

	items, err := model.ListBreakdownItems(ctx, env.db, goal.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, env.countTransactions(t))

	_, err = env.goals.GetGoal(ctx, goal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBreakdownItemsAndTargetSync(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goal := createGoal(t, env, 0)

	item, err := env.goals.AddBreakdownItem(ctx, goal.ID, models.BreakdownItemInput{ItemName: "Tiket", Amount: 1500000})
	require.NoError(t, err)
	_, err = env.goals.AddBreakdownItem(ctx, goal.ID, models.BreakdownItemInput{ItemName: "Hotel", Amount: 2000000})
	require.NoError(t, err)

	synced, err := env.goals.SyncTargetFromBreakdown(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3500000), synced.TargetAmount)

	require.NoError(t, env.goals.DeleteBreakdownItem(ctx, item.ID))
	items, err := env.goals.ListBreakdown(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Hotel", items[0].ItemName)

	updated, err := env.goals.UpdateGoalTarget(ctx, goal.ID, 2500000)
	require.NoError(t, err)
	assert.Equal(t, int64(2500000), updated.TargetAmount)

	_, err = env.goals.AddBreakdownItem(ctx, 999, models.BreakdownItemInput{ItemName: "X", Amount: 1})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.goals.ListBreakdown(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.goals.UpdateGoalTarget(ctx, goal.ID, -1)
	assert.ErrorIs(t, err, validation.ErrValidationFailed)
	_, err = env.goals.SyncTargetFromBreakdown(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, env.goals.DeleteBreakdownItem(ctx, item.ID), ErrNotFound)
}

func TestCreateGoalRejectsScriptCoverImage(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.goals.CreateGoal(context.Background(), models.GoalInput{
		Name:       "Mobil",
		CoverImage: "javascript:alert(1)",
	})
	assert.ErrorIs(t, err, validation.ErrValidationFailed)

	goal, err := env.goals.CreateGoal(context.Background(), models.GoalInput{
		Name:       "Mobil",
		CoverImage: "https://images.example.com/mobil.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/mobil.jpg", goal.CoverImage)
}

func TestContributeRejectsOverflow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goal := createGoal(t, env, 0)

	_, err := env.goals.ContributeToGoal(ctx, goal.ID, 1000)
	require.NoError(t, err)

	_, err = env.goals.ContributeToGoal(ctx, goal.ID, math.MaxInt64)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.ErrorIs(t, err, validation.ErrValidationFailed)

	fetched, err := env.goals.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), fetched.CurrentAmount)
	assert.Equal(t, 1, env.countTransactions(t))
}
