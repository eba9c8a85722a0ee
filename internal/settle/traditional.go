package settle

import (
	"sort"

	"github.com/mmynk/settleup/internal/models"
)

// CalculateTraditionalSettlements derives settlements directly from each
// expense's payer/beneficiary relationship: for every expense, every charged
// participant other than the payer owes their share back to the payer.
// Repeated (from, to) pairs across expenses are aggregated into one
// settlement, and aggregates at or below Epsilon are dropped as
// floating-point noise.
//
// This is the unoptimized baseline: it reflects exactly who paid for whom,
// so its transaction count grows with the number of distinct
// payer/beneficiary pairs.
//
// Participants referenced by an expense but missing from participants are
// skipped without error; the debt for that pair is silently not emitted.
func CalculateTraditionalSettlements(expenses []models.Expense, participants []models.Participant) []Settlement {
	index := participantIndex(participants)

	// Aggregate by (from, to) pair, preserving first-seen order so repeated
	// runs over the same input produce identical output.
	type pairKey struct{ from, to string }
	position := make(map[pairKey]int)
	aggregated := make([]Settlement, 0)

	for _, e := range expenses {
		if e.Split == nil {
			continue
		}
		payer, ok := index[e.PaidBy]
		if !ok {
			continue
		}

		shares := e.Split.Shares(e.Amount, e.Beneficiaries)
		for _, id := range orderedShareIDs(shares, e.Beneficiaries) {
			if id == e.PaidBy {
				continue // the payer never owes themselves
			}
			debtor, ok := index[id]
			if !ok {
				continue
			}

			key := pairKey{from: id, to: e.PaidBy}
			if pos, seen := position[key]; seen {
				aggregated[pos].Amount += shares[id]
			} else {
				position[key] = len(aggregated)
				aggregated = append(aggregated, Settlement{
					From:   debtor,
					To:     payer,
					Amount: shares[id],
				})
			}
		}
	}

	settlements := make([]Settlement, 0, len(aggregated))
	for _, s := range aggregated {
		if s.Amount > Epsilon {
			settlements = append(settlements, s)
		}
	}
	return settlements
}

// orderedShareIDs returns the keys of shares in a deterministic order:
// beneficiary order first, then any remaining charged IDs sorted. Ranging
// over the map directly would make the output order vary between runs.
func orderedShareIDs(shares map[string]float64, beneficiaries []string) []string {
	ids := make([]string, 0, len(shares))
	seen := make(map[string]bool, len(shares))

	for _, id := range beneficiaries {
		if _, charged := shares[id]; charged && !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}

	var rest []string
	for id := range shares {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ids, rest...)
}
