// backend/src/processors/transaction_processor.go
package processors

import (
	"fmt"
	"time"

	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/security/validation"
	"github.com/username/masdompet/backend/src/utils"
)

// Categories of the companion transactions recorded by debt, investment and goal operations.
const (
	CategoryDebtPayment          = "Pembayaran Hutang"
	CategoryReceivablePayment    = "Penerimaan Piutang"
	CategoryInvestmentPurchase   = "Investasi"
	CategoryInvestmentWithdrawal = "Penarikan Investasi"
	CategoryGoalContribution     = "Kontribusi Impian"
	CategoryGoalWithdrawal       = "Penarikan Impian"
)

// TransactionProcessor turns user input and entity operations into ledger
// entries ready to be stored.
type TransactionProcessor struct {
	currencyCode string
	clock        func() time.Time
}

func NewTransactionProcessor(currencyCode string) *TransactionProcessor {
	if currencyCode == "" {
		currencyCode = "IDR"
	}
	return &TransactionProcessor{
		currencyCode: currencyCode,
		clock:        func() time.Time { return time.Now().UTC() },
	}
}

// Now is the timestamp given to entries created by entity operations.
func (p *TransactionProcessor) Now() time.Time {
	return p.clock()
}

// FromInput sanitizes and validates a user-entered transaction.
func (p *TransactionProcessor) FromInput(input models.TransactionInput) (models.Transaction, error) {
	category := validation.SanitizeText(input.Category)
	description := validation.SanitizeText(input.Description)

	if err := validation.ValidatePositiveAmount(input.Amount, "amount"); err != nil {
		return models.Transaction{}, err
	}
	if !input.Type.Valid() {
		return models.Transaction{}, fmt.Errorf("%w: type must be INCOME or EXPENSE, got '%s'", validation.ErrValidationFailed, input.Type)
	}
	if err := validation.ValidateRequiredText(category, validation.DefaultMaxStringLength, "category"); err != nil {
		return models.Transaction{}, err
	}
	if err := validation.ValidateStringMaxLength(description, validation.MaxDescriptionLength, "description"); err != nil {
		return models.Transaction{}, err
	}
	if err := validation.ValidateDateRequired(input.Date, "date"); err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    category,
		Description: description,
		Date:        input.Date.UTC(),
		Origin:      models.OriginManual,
	}, nil
}

// DebtPayment is always recorded as an expense, for payables and receivables alike.
func (p *TransactionProcessor) DebtPayment(debt models.Debt, amount int64, remaining int64) models.Transaction {
	category, noun := CategoryDebtPayment, "hutang"
	if debt.Type == models.DebtReceivable {
		category, noun = CategoryReceivablePayment, "piutang"
	}
	description := fmt.Sprintf("Pembayaran %s kepada/dari %s", noun, debt.Name)
	if remaining > 0 {
		description += " (Sebagian)"
	}
	return p.companion(models.OriginDebtPayment, models.TransactionExpense, amount, category, description)
}

func (p *TransactionProcessor) InvestmentPurchase(inv models.Investment) models.Transaction {
	description := fmt.Sprintf("Investasi di %s (%s)", inv.Name, inv.Type)
	return p.companion(models.OriginInvestmentPurchase, models.TransactionExpense, inv.Amount, CategoryInvestmentPurchase, description)
}

// InvestmentWithdrawal describes the payout together with the realized profit or loss.
func (p *TransactionProcessor) InvestmentWithdrawal(inv models.Investment, payout, profit int64) models.Transaction {
	var outcome string
	switch {
	case profit > 0:
		outcome = "(Profit: +" + utils.FormatCurrency(profit, p.currencyCode) + ")"
	case profit < 0:
		outcome = "(Loss: -" + utils.FormatCurrency(-profit, p.currencyCode) + ")"
	default:
		outcome = "(Break Even)"
	}
	description := fmt.Sprintf("Penarikan dari %s %s", inv.Name, outcome)
	return p.companion(models.OriginInvestmentWithdrawal, models.TransactionIncome, payout, CategoryInvestmentWithdrawal, description)
}

func (p *TransactionProcessor) GoalContribution(goal models.Goal, amount int64) models.Transaction {
	return p.companion(models.OriginGoalContribution, models.TransactionExpense, amount, CategoryGoalContribution, "Kontribusi untuk "+goal.Name)
}

func (p *TransactionProcessor) GoalWithdrawal(goal models.Goal, amount int64) models.Transaction {
	return p.companion(models.OriginGoalWithdrawal, models.TransactionIncome, amount, CategoryGoalWithdrawal, "Penarikan dari "+goal.Name)
}

func (p *TransactionProcessor) companion(origin models.Origin, typ models.TransactionType, amount int64, category, description string) models.Transaction {
	return models.Transaction{
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Description: description,
		Date:        p.clock(),
		Origin:      origin,
	}
}
