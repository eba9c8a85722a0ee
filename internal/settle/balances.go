package settle

import "github.com/mmynk/settleup/internal/models"

// Epsilon is the tolerance below which an amount is treated as zero.
// Classification of creditors/debtors, loop termination, and noise filtering
// all use this instead of exact float comparison.
const Epsilon = 0.01

// CalculateBalances computes each participant's signed net balance from a
// list of expenses: positive means the participant is owed money, negative
// means they owe. Every participant referenced by any expense appears in the
// result, even at zero.
//
// The fold is order-independent: reordering expenses changes nothing beyond
// floating-point rounding. Malformed expenses never error here: a split that
// charges nobody simply contributes nothing (validation belongs at the model
// boundary, not in the calculators).
func CalculateBalances(expenses []models.Expense) map[string]float64 {
	balances := make(map[string]float64)

	for _, e := range expenses {
		if e.PaidBy == "" || e.Split == nil {
			continue
		}

		// A split that charges nobody (e.g. an equal split with an empty
		// beneficiary list) makes the whole expense a no-op: crediting the
		// payer without debiting anyone would break conservation.
		shares := e.Split.Shares(e.Amount, e.Beneficiaries)
		if len(shares) == 0 {
			continue
		}

		// Seed everyone referenced so fully reimbursed participants still
		// show up with a zero balance.
		for _, id := range e.Beneficiaries {
			if _, ok := balances[id]; !ok {
				balances[id] = 0
			}
		}

		// Payer fronted the money.
		balances[e.PaidBy] += e.Amount

		// Each charged participant owes their share, payer included: a payer
		// who is also a beneficiary nets out their own share.
		for id, share := range shares {
			balances[id] -= share
		}
	}

	return balances
}
