package settle

import (
	"math"
	"testing"

	"github.com/mmynk/settleup/internal/models"
)

func findSettlement(settlements []Settlement, from, to string) (Settlement, bool) {
	for _, s := range settlements {
		if s.From.ID == from && s.To.ID == to {
			return s, true
		}
	}
	return Settlement{}, false
}

func assertSettlement(t *testing.T, settlements []Settlement, from, to string, amount float64) {
	t.Helper()
	s, ok := findSettlement(settlements, from, to)
	if !ok {
		t.Errorf("missing settlement %s -> %s", from, to)
		return
	}
	if math.Abs(s.Amount-amount) > 0.01 {
		t.Errorf("settlement %s -> %s = %v, want %v", from, to, s.Amount, amount)
	}
}

// applySettlements pays out a plan against a balance sheet; a sound plan
// leaves every balance at zero.
func applySettlements(balances map[string]float64, settlements []Settlement) map[string]float64 {
	remaining := make(map[string]float64, len(balances))
	for id, b := range balances {
		remaining[id] = b
	}
	for _, s := range settlements {
		remaining[s.From.ID] += s.Amount
		remaining[s.To.ID] -= s.Amount
	}
	return remaining
}

func TestCalculateTraditionalSettlements(t *testing.T) {
	tests := []struct {
		name         string
		expenses     []models.Expense
		validateFunc func(t *testing.T, settlements []Settlement)
	}{
		{
			name: "equal split between two people",
			expenses: []models.Expense{
				{Amount: 100, PaidBy: "p1", Beneficiaries: []string{"p1", "p2"}, Split: models.EqualSplit{}},
			},
			validateFunc: func(t *testing.T, settlements []Settlement) {
				if len(settlements) != 1 {
					t.Fatalf("expected 1 settlement, got %d", len(settlements))
				}
				assertSettlement(t, settlements, "p2", "p1", 50)
			},
		},
		{
			name: "one pair per payer and beneficiary",
			expenses: []models.Expense{
				{Amount: 90, PaidBy: "p1", Beneficiaries: []string{"p1", "p2", "p3"}, Split: models.EqualSplit{}},
				{Amount: 30, PaidBy: "p2", Beneficiaries: []string{"p1", "p2", "p3"}, Split: models.EqualSplit{}},
			},
			validateFunc: func(t *testing.T, settlements []Settlement) {
				// Opposing debts between the same two people stay separate:
				// this plan mirrors who-paid-for-whom, it does not net.
				if len(settlements) != 4 {
					t.Fatalf("expected 4 settlements, got %d", len(settlements))
				}
				assertSettlement(t, settlements, "p2", "p1", 30)
				assertSettlement(t, settlements, "p3", "p1", 30)
				assertSettlement(t, settlements, "p1", "p2", 10)
				assertSettlement(t, settlements, "p3", "p2", 10)
			},
		},
		{
			name: "repeated pairs aggregate into one settlement",
			expenses: []models.Expense{
				{Amount: 40, PaidBy: "p1", Beneficiaries: []string{"p1", "p2"}, Split: models.EqualSplit{}},
				{Amount: 60, PaidBy: "p1", Beneficiaries: []string{"p1", "p2"}, Split: models.EqualSplit{}},
			},
			validateFunc: func(t *testing.T, settlements []Settlement) {
				if len(settlements) != 1 {
					t.Fatalf("expected 1 aggregated settlement, got %d", len(settlements))
				}
				assertSettlement(t, settlements, "p2", "p1", 50)
			},
		},
		{
			name: "custom split skips the payer and uncharged beneficiaries",
			expenses: []models.Expense{
				{
					Amount: 100, PaidBy: "p1",
					Beneficiaries: []string{"p1", "p2", "p3"},
					Split:         models.CustomSplit{Amounts: map[string]float64{"p2": 70, "p3": 30}},
				},
			},
			validateFunc: func(t *testing.T, settlements []Settlement) {
				if len(settlements) != 2 {
					t.Fatalf("expected 2 settlements, got %d", len(settlements))
				}
				assertSettlement(t, settlements, "p2", "p1", 70)
				assertSettlement(t, settlements, "p3", "p1", 30)
			},
		},
		{
			name: "items split charges per item",
			expenses: []models.Expense{
				{
					Amount: 70, PaidBy: "p1",
					Beneficiaries: []string{"p1", "p2", "p3"},
					Split: models.ItemsSplit{Items: []models.ExpenseItem{
						{Description: "Pizza", Price: 40, AssignedTo: []string{"p1", "p2"}},
						{Description: "Taxi", Price: 30, AssignedTo: []string{"p3"}},
					}},
				},
			},
			validateFunc: func(t *testing.T, settlements []Settlement) {
				if len(settlements) != 2 {
					t.Fatalf("expected 2 settlements, got %d", len(settlements))
				}
				assertSettlement(t, settlements, "p2", "p1", 20)
				assertSettlement(t, settlements, "p3", "p1", 30)
			},
		},
		{
			name: "unknown payer drops the expense",
			expenses: []models.Expense{
				{Amount: 100, PaidBy: "ghost", Beneficiaries: []string{"p1", "p2"}, Split: models.EqualSplit{}},
			},
			validateFunc: func(t *testing.T, settlements []Settlement) {
				if len(settlements) != 0 {
					t.Errorf("expected no settlements, got %v", settlements)
				}
			},
		},
		{
			name: "unknown beneficiary drops only that pair",
			expenses: []models.Expense{
				{Amount: 90, PaidBy: "p1", Beneficiaries: []string{"p1", "p2", "ghost"}, Split: models.EqualSplit{}},
			},
			validateFunc: func(t *testing.T, settlements []Settlement) {
				if len(settlements) != 1 {
					t.Fatalf("expected 1 settlement, got %d", len(settlements))
				}
				assertSettlement(t, settlements, "p2", "p1", 30)
			},
		},
		{
			name: "near-zero aggregates are filtered",
			expenses: []models.Expense{
				{
					Amount: 10, PaidBy: "p1",
					Beneficiaries: []string{"p1", "p2"},
					Split:         models.CustomSplit{Amounts: map[string]float64{"p1": 9.999, "p2": 0.001}},
				},
			},
			validateFunc: func(t *testing.T, settlements []Settlement) {
				if len(settlements) != 0 {
					t.Errorf("expected noise to be filtered, got %v", settlements)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settlements := CalculateTraditionalSettlements(tt.expenses, testParticipants())

			for _, s := range settlements {
				if s.From.ID == s.To.ID {
					t.Errorf("self-settlement emitted for %s", s.From.ID)
				}
				if s.Amount <= 0 {
					t.Errorf("non-positive settlement amount %v", s.Amount)
				}
			}

			tt.validateFunc(t, settlements)
		})
	}
}

func TestCalculateTraditionalSettlements_ClearsBalances(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 90, PaidBy: "p1", Beneficiaries: []string{"p1", "p2", "p3"}, Split: models.EqualSplit{}},
		{Amount: 30, PaidBy: "p2", Beneficiaries: []string{"p1", "p2", "p3"}, Split: models.EqualSplit{}},
		{
			Amount: 70, PaidBy: "p3",
			Beneficiaries: []string{"p1", "p2", "p3"},
			Split: models.ItemsSplit{Items: []models.ExpenseItem{
				{Description: "Pizza", Price: 40, AssignedTo: []string{"p1", "p2"}},
				{Description: "Taxi", Price: 30, AssignedTo: []string{"p2", "p3"}},
			}},
		},
	}

	settlements := CalculateTraditionalSettlements(expenses, testParticipants())
	remaining := applySettlements(CalculateBalances(expenses), settlements)
	for id, b := range remaining {
		if math.Abs(b) > 0.01 {
			t.Errorf("balance[%s] = %v after paying the plan, want ~0", id, b)
		}
	}
}
