package settle

import "github.com/mmynk/settleup/internal/models"

// Settlement is a single directed payment obligation: From must pay Amount
// to To. Amount is always strictly positive and From is never To.
type Settlement struct {
	From   models.Participant
	To     models.Participant
	Amount float64
}

// Savings quantifies how much work the optimized plan saves over the
// traditional one.
type Savings struct {
	// TransactionsSaved is len(traditional) - len(optimized).
	TransactionsSaved int

	// PercentageReduction is the saving as a percentage of the traditional
	// transaction count, 0 when there is nothing to settle.
	PercentageReduction float64
}

// OptimizationResult is the output of one settlement run: both plans plus
// the savings comparison. It is created fresh on every call and has no
// lifecycle beyond it.
type OptimizationResult struct {
	Traditional []Settlement
	Optimized   []Settlement
	Savings     Savings
}

// participantIndex builds an ID lookup for fail-soft participant resolution.
func participantIndex(participants []models.Participant) map[string]models.Participant {
	index := make(map[string]models.Participant, len(participants))
	for _, p := range participants {
		index[p.ID] = p
	}
	return index
}
