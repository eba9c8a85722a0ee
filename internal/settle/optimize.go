package settle

import "github.com/mmynk/settleup/internal/models"

// OptimizeSettlements runs both settlement plans over the same inputs and
// reports the savings. The traditional plan works straight off the expenses;
// the optimized plan goes through net balances first. Both see the inputs
// independently, so the result is the same regardless of call order.
func OptimizeSettlements(expenses []models.Expense, participants []models.Participant) *OptimizationResult {
	traditional := CalculateTraditionalSettlements(expenses, participants)

	balances := CalculateBalances(expenses)
	optimized := CalculateOptimizedSettlements(balances, participants)

	saved := len(traditional) - len(optimized)
	var reduction float64
	if len(traditional) > 0 {
		reduction = float64(saved) / float64(len(traditional)) * 100
	}

	return &OptimizationResult{
		Traditional: traditional,
		Optimized:   optimized,
		Savings: Savings{
			TransactionsSaved:   saved,
			PercentageReduction: reduction,
		},
	}
}
