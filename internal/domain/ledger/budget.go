package ledger

import (
	"github.com/google/uuid"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/domain/money"
)

// BudgetSummary aggregates every budget of one period with recomputed
// spent amounts.
type BudgetSummary struct {
	Period         domain.BudgetPeriod
	Budgets        []domain.Budget
	TotalBudgeted  money.Money // sum of budgeted + rollover
	TotalSpent     money.Money
	TotalRemaining money.Money
}

// BudgetService computes category spend from transaction history and
// maintains per-period spending envelopes.
type BudgetService interface {
	// CalculateSpent sums the absolute value of every transaction that
	// matches the category, falls inside the period (inclusive), is not
	// void, and is an expense (negative amount). Income postings in the
	// same category do not offset spend.
	CalculateSpent(transactions []domain.Transaction, categoryID uuid.UUID, period domain.BudgetPeriod) money.Money

	// Upsert updates the budgeted amount of an existing (category, period)
	// budget, or creates a new budget with zero spent and rollover when
	// existing is nil. Negative budgeted amounts are rejected.
	Upsert(period domain.BudgetPeriod, categoryID uuid.UUID, budgeted money.Money, existing *domain.Budget) (domain.Budget, error)

	// Summary recomputes spent for every budget from the transaction list
	// and aggregates the period totals.
	Summary(period domain.BudgetPeriod, budgets []domain.Budget, transactions []domain.Transaction) BudgetSummary
}

// NewBudgetService returns the standard budget service.
func NewBudgetService() BudgetService {
	return budgetService{}
}

type budgetService struct{}

func (budgetService) CalculateSpent(
	transactions []domain.Transaction,
	categoryID uuid.UUID,
	period domain.BudgetPeriod,
) money.Money {
	spent := money.Zero()
	for _, tx := range transactions {
		if tx.CategoryID == nil || *tx.CategoryID != categoryID {
			continue
		}
		if !period.Contains(tx.PostedAt) {
			continue
		}
		if !tx.AffectsBalance() {
			continue
		}
		if !tx.Amount.IsNegative() {
			continue
		}
		spent = spent.Add(tx.Amount.Abs())
	}
	return spent
}

func (budgetService) Upsert(
	period domain.BudgetPeriod,
	categoryID uuid.UUID,
	budgeted money.Money,
	existing *domain.Budget,
) (domain.Budget, error) {
	if existing != nil {
		return existing.WithBudgetedAmount(budgeted)
	}
	return domain.NewBudget(period, categoryID, budgeted, money.Zero())
}

func (s budgetService) Summary(
	period domain.BudgetPeriod,
	budgets []domain.Budget,
	transactions []domain.Transaction,
) BudgetSummary {
	summary := BudgetSummary{
		Period:         period,
		Budgets:        make([]domain.Budget, 0, len(budgets)),
		TotalBudgeted:  money.Zero(),
		TotalSpent:     money.Zero(),
		TotalRemaining: money.Zero(),
	}
	for _, b := range budgets {
		spent := s.CalculateSpent(transactions, b.CategoryID, period)
		b = b.WithSpent(spent)
		summary.Budgets = append(summary.Budgets, b)
		summary.TotalBudgeted = summary.TotalBudgeted.Add(b.BudgetedAmount).Add(b.RolloverAmount)
		summary.TotalSpent = summary.TotalSpent.Add(spent)
	}
	summary.TotalRemaining = summary.TotalBudgeted.Sub(summary.TotalSpent)
	return summary
}
