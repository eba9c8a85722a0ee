package models

import (
	"strings"
	"testing"
)

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Amount:        100,
		PaidBy:        "p1",
		Beneficiaries: []string{"p1", "p2"},
		Split:         EqualSplit{},
	}

	tests := []struct {
		name    string
		mutate  func(e *Expense)
		wantErr bool
	}{
		{name: "valid expense", mutate: func(e *Expense) {}, wantErr: false},
		{name: "zero amount", mutate: func(e *Expense) { e.Amount = 0 }, wantErr: true},
		{name: "negative amount", mutate: func(e *Expense) { e.Amount = -5 }, wantErr: true},
		{name: "no beneficiaries", mutate: func(e *Expense) { e.Beneficiaries = nil }, wantErr: true},
		{name: "no split", mutate: func(e *Expense) { e.Split = nil }, wantErr: true},
		{name: "no payer", mutate: func(e *Expense) { e.PaidBy = "" }, wantErr: true},
		{
			name:    "empty custom split",
			mutate:  func(e *Expense) { e.Split = CustomSplit{} },
			wantErr: true,
		},
		{
			name: "item without assignees",
			mutate: func(e *Expense) {
				e.Split = ItemsSplit{Items: []ExpenseItem{{Description: "Pizza", Price: 40}}}
			},
			wantErr: true,
		},
		{
			name: "itemized expense with assignees",
			mutate: func(e *Expense) {
				e.Split = ItemsSplit{Items: []ExpenseItem{
					{Description: "Pizza", Price: 40, AssignedTo: []string{"p1"}},
				}}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpenseWarnings(t *testing.T) {
	t.Run("custom splits not summing to amount", func(t *testing.T) {
		e := Expense{
			Amount:        100,
			PaidBy:        "p1",
			Beneficiaries: []string{"p2", "p3"},
			Split:         CustomSplit{Amounts: map[string]float64{"p2": 70, "p3": 20}},
		}
		warnings := e.Warnings()
		if len(warnings) != 1 || !strings.Contains(warnings[0], "90.00") {
			t.Errorf("unexpected warnings %v", warnings)
		}
	})

	t.Run("percentages not summing to 100", func(t *testing.T) {
		e := Expense{
			Amount:        100,
			PaidBy:        "p1",
			Beneficiaries: []string{"p2", "p3"},
			Split:         PercentageSplit{Percentages: map[string]float64{"p2": 60, "p3": 60}},
		}
		if warnings := e.Warnings(); len(warnings) != 1 {
			t.Errorf("unexpected warnings %v", warnings)
		}
	})

	t.Run("consistent splits produce no warnings", func(t *testing.T) {
		e := Expense{
			Amount:        100,
			PaidBy:        "p1",
			Beneficiaries: []string{"p2", "p3"},
			Split:         CustomSplit{Amounts: map[string]float64{"p2": 70, "p3": 30}},
		}
		if warnings := e.Warnings(); len(warnings) != 0 {
			t.Errorf("unexpected warnings %v", warnings)
		}
	})
}
