package settle

import (
	"sort"

	"github.com/mmynk/settleup/internal/models"
)

// party is a creditor or debtor with the (positive) amount left to settle.
type party struct {
	id     string
	amount float64
}

// CalculateOptimizedSettlements produces a small set of transfers that
// clears every net balance: creditors (balance > Epsilon) and debtors
// (balance < -Epsilon) are each sorted descending by amount, then matched
// with a two-pointer greedy walk that always transfers
// min(creditor remaining, debtor remaining) and advances whichever side
// reached zero.
//
// The greedy match is a heuristic, not an exact minimizer: finding the true
// minimum number of transfers is NP-hard (it reduces to set partitioning),
// and the sorted two-pointer walk is optimal in the common small cases while
// staying O(n log n). Its output size is bounded by
// max(#creditors, #debtors) and never exceeds creditors+debtors-1.
//
// Ties in the descending sort break on participant ID so repeated runs over
// the same balances yield identical output.
func CalculateOptimizedSettlements(balances map[string]float64, participants []models.Participant) []Settlement {
	index := participantIndex(participants)

	var creditors, debtors []party
	for id, balance := range balances {
		switch {
		case balance > Epsilon:
			creditors = append(creditors, party{id: id, amount: balance})
		case balance < -Epsilon:
			debtors = append(debtors, party{id: id, amount: -balance})
		}
	}

	sortPartiesDescending(creditors)
	sortPartiesDescending(debtors)

	settlements := make([]Settlement, 0)
	i, j := 0, 0 // creditor, debtor cursors

	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		creditorParticipant, haveCreditor := index[creditor.id]
		debtorParticipant, haveDebtor := index[debtor.id]
		if !haveCreditor || !haveDebtor {
			// Unresolvable participant: fail soft, drop the pair.
			i++
			j++
			continue
		}

		transfer := creditor.amount
		if debtor.amount < transfer {
			transfer = debtor.amount
		}

		settlements = append(settlements, Settlement{
			From:   debtorParticipant,
			To:     creditorParticipant,
			Amount: transfer,
		})

		creditor.amount -= transfer
		debtor.amount -= transfer

		if creditor.amount < Epsilon {
			i++
		}
		if debtor.amount < Epsilon {
			j++
		}
	}

	return settlements
}

func sortPartiesDescending(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].amount != parties[j].amount {
			return parties[i].amount > parties[j].amount
		}
		return parties[i].id < parties[j].id
	})
}
