package settle

import (
	"math"
	"reflect"
	"testing"

	"github.com/mmynk/settleup/internal/models"
)

func TestOptimizeSettlements_TwoPeople(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 100, PaidBy: "p1", Beneficiaries: []string{"p1", "p2"}, Split: models.EqualSplit{}},
	}

	result := OptimizeSettlements(expenses, testParticipants())

	// With a single debt both plans are identical: Bob pays Alice 50.
	if len(result.Traditional) != 1 || len(result.Optimized) != 1 {
		t.Fatalf("expected 1 settlement in each plan, got %d traditional, %d optimized",
			len(result.Traditional), len(result.Optimized))
	}
	assertSettlement(t, result.Traditional, "p2", "p1", 50)
	assertSettlement(t, result.Optimized, "p2", "p1", 50)

	if result.Savings.TransactionsSaved != 0 {
		t.Errorf("TransactionsSaved = %d, want 0", result.Savings.TransactionsSaved)
	}
	if result.Savings.PercentageReduction != 0 {
		t.Errorf("PercentageReduction = %v, want 0", result.Savings.PercentageReduction)
	}
}

func TestOptimizeSettlements_CycleCollapses(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 90, PaidBy: "p1", Beneficiaries: []string{"p1", "p2", "p3"}, Split: models.EqualSplit{}},
		{Amount: 30, PaidBy: "p2", Beneficiaries: []string{"p1", "p2", "p3"}, Split: models.EqualSplit{}},
	}

	result := OptimizeSettlements(expenses, testParticipants())

	if len(result.Traditional) != 4 {
		t.Errorf("traditional plan has %d settlements, want 4", len(result.Traditional))
	}
	if len(result.Optimized) > 2 {
		t.Errorf("optimized plan has %d settlements, want at most 2", len(result.Optimized))
	}
	if len(result.Optimized) > len(result.Traditional) {
		t.Errorf("optimized plan (%d) larger than traditional (%d)",
			len(result.Optimized), len(result.Traditional))
	}

	if result.Savings.TransactionsSaved != 2 {
		t.Errorf("TransactionsSaved = %d, want 2", result.Savings.TransactionsSaved)
	}
	if math.Abs(result.Savings.PercentageReduction-50) > 0.01 {
		t.Errorf("PercentageReduction = %v, want 50", result.Savings.PercentageReduction)
	}
}

func TestOptimizeSettlements_EmptyInput(t *testing.T) {
	result := OptimizeSettlements(nil, nil)

	if len(result.Traditional) != 0 || len(result.Optimized) != 0 {
		t.Errorf("expected empty plans, got %+v", result)
	}
	if result.Savings.TransactionsSaved != 0 || result.Savings.PercentageReduction != 0 {
		t.Errorf("expected zero savings, got %+v", result.Savings)
	}
	if result.Traditional == nil || result.Optimized == nil {
		t.Error("plans should be empty slices, not nil")
	}
}

func TestOptimizeSettlements_Idempotent(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 90, PaidBy: "p1", Beneficiaries: []string{"p1", "p2", "p3"}, Split: models.EqualSplit{}},
		{Amount: 30, PaidBy: "p2", Beneficiaries: []string{"p1", "p2", "p3"}, Split: models.EqualSplit{}},
		{
			Amount: 100, PaidBy: "p3",
			Beneficiaries: []string{"p1", "p2", "p3"},
			Split:         models.CustomSplit{Amounts: map[string]float64{"p1": 70, "p2": 30}},
		},
	}

	first := OptimizeSettlements(expenses, testParticipants())
	for i := 0; i < 10; i++ {
		again := OptimizeSettlements(expenses, testParticipants())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("results differ between runs:\n%+v\n%+v", first, again)
		}
	}
}

func TestOptimizeSettlements_NeverMutatesInputs(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 90, PaidBy: "p1", Beneficiaries: []string{"p1", "p2", "p3"}, Split: models.EqualSplit{}},
		{
			Amount: 100, PaidBy: "p2",
			Beneficiaries: []string{"p1", "p2"},
			Split:         models.CustomSplit{Amounts: map[string]float64{"p1": 60, "p2": 40}},
		},
	}
	participants := testParticipants()

	snapshot := make([]models.Expense, len(expenses))
	copy(snapshot, expenses)
	originalAmounts := map[string]float64{"p1": 60, "p2": 40}

	OptimizeSettlements(expenses, participants)

	for i := range snapshot {
		if expenses[i].Amount != snapshot[i].Amount || expenses[i].PaidBy != snapshot[i].PaidBy {
			t.Errorf("expense %d mutated: %+v", i, expenses[i])
		}
	}
	custom := expenses[1].Split.(models.CustomSplit)
	if !reflect.DeepEqual(custom.Amounts, originalAmounts) {
		t.Errorf("custom split amounts mutated: %v", custom.Amounts)
	}
}
