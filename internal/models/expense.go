package models

import (
	"errors"
	"fmt"
	"math"
)

// SplitType identifies the rule used to divide an expense.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitPercentage SplitType = "percentage"
	SplitCustom     SplitType = "custom"
	SplitItems      SplitType = "items"
)

// Split is the sealed set of rules for dividing an expense among its
// beneficiaries. Every variant knows how to compute per-person shares, so
// the balance and settlement calculators never branch on the split type
// themselves; adding a new variant without a Shares implementation is a
// compile error, not a silently ignored case.
type Split interface {
	// Type returns the split type identifier.
	Type() SplitType

	// Shares maps each charged participant to the amount they owe for an
	// expense of the given total. Participants absent from the returned map
	// owe nothing. A zero-member division (empty beneficiary or assignee
	// list) contributes nothing rather than producing NaN or Inf.
	Shares(amount float64, beneficiaries []string) map[string]float64

	isSplit()
}

// EqualSplit divides the expense amount evenly among all beneficiaries,
// including the payer if the payer is also a beneficiary.
type EqualSplit struct{}

func (EqualSplit) Type() SplitType { return SplitEqual }

func (EqualSplit) Shares(amount float64, beneficiaries []string) map[string]float64 {
	if len(beneficiaries) == 0 {
		return nil
	}
	share := amount / float64(len(beneficiaries))
	shares := make(map[string]float64, len(beneficiaries))
	for _, id := range beneficiaries {
		shares[id] = share
	}
	return shares
}

func (EqualSplit) isSplit() {}

// PercentageSplit charges each participant a percentage (0-100) of the
// expense amount. Participants not listed are not charged.
type PercentageSplit struct {
	// Percentages maps participant ID to their percentage of the total.
	Percentages map[string]float64
}

func (PercentageSplit) Type() SplitType { return SplitPercentage }

func (s PercentageSplit) Shares(amount float64, _ []string) map[string]float64 {
	shares := make(map[string]float64, len(s.Percentages))
	for id, pct := range s.Percentages {
		shares[id] = amount * pct / 100
	}
	return shares
}

func (PercentageSplit) isSplit() {}

// CustomSplit charges each participant a fixed amount. Participants not
// listed are not charged. The amounts should sum to the expense total, but
// the calculators trust the caller; see (*Expense).Warnings.
type CustomSplit struct {
	// Amounts maps participant ID to the exact amount they owe.
	Amounts map[string]float64
}

func (CustomSplit) Type() SplitType { return SplitCustom }

func (s CustomSplit) Shares(_ float64, _ []string) map[string]float64 {
	shares := make(map[string]float64, len(s.Amounts))
	for id, amt := range s.Amounts {
		shares[id] = amt
	}
	return shares
}

func (CustomSplit) isSplit() {}

// ItemsSplit divides the expense line by line: each item's price is split
// evenly among that item's assignees, independent of the other items.
type ItemsSplit struct {
	Items []ExpenseItem
}

// ExpenseItem is a single line item on an itemized expense.
type ExpenseItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Description is the name of the item (e.g., "Pizza", "Taxi").
	Description string

	// Price is the cost of this item.
	Price float64

	// AssignedTo lists the participant IDs splitting this item equally.
	AssignedTo []string
}

func (ItemsSplit) Type() SplitType { return SplitItems }

func (s ItemsSplit) Shares(_ float64, _ []string) map[string]float64 {
	shares := make(map[string]float64)
	for _, item := range s.Items {
		if len(item.AssignedTo) == 0 {
			continue
		}
		perPerson := item.Price / float64(len(item.AssignedTo))
		for _, id := range item.AssignedTo {
			shares[id] += perPerson
		}
	}
	return shares
}

func (ItemsSplit) isSplit() {}

// Expense is the record of one shared payment: the payer fronted the full
// amount, and the beneficiaries owe their shares back per the split rule.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Name is the human-readable description (e.g., "Dinner", "Hotel").
	Name string

	// Amount is the full amount paid, in the group's currency.
	Amount float64

	// PaidBy is the participant ID of whoever paid.
	PaidBy string

	// Beneficiaries lists the participant IDs sharing the cost.
	Beneficiaries []string

	// Split is the rule dividing Amount among the beneficiaries.
	Split Split

	// Category is an optional label (e.g., "food", "transport").
	Category string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

var (
	ErrNonPositiveAmount = errors.New("expense amount must be positive")
	ErrNoBeneficiaries   = errors.New("expense must have at least one beneficiary")
	ErrNoSplit           = errors.New("expense must have a split rule")
)

// Validate checks the invariants the calculators rely on. It is meant to run
// at the data-model boundary (expense creation) so the calculators downstream
// can stay total.
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if len(e.Beneficiaries) == 0 {
		return ErrNoBeneficiaries
	}
	if e.Split == nil {
		return ErrNoSplit
	}
	if err := validateSplit(e.Split); err != nil {
		return err
	}
	if e.PaidBy == "" {
		return fmt.Errorf("expense must have a payer")
	}
	return nil
}

func validateSplit(split Split) error {
	switch s := split.(type) {
	case EqualSplit:
		return nil
	case PercentageSplit:
		if len(s.Percentages) == 0 {
			return fmt.Errorf("percentage split must list at least one participant")
		}
		return nil
	case CustomSplit:
		if len(s.Amounts) == 0 {
			return fmt.Errorf("custom split must list at least one participant")
		}
		return nil
	case ItemsSplit:
		if len(s.Items) == 0 {
			return fmt.Errorf("items split must have at least one item")
		}
		for _, item := range s.Items {
			if len(item.AssignedTo) == 0 {
				return fmt.Errorf("item %q must be assigned to at least one participant", item.Description)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown split type %q", split.Type())
	}
}

// Warnings reports soft inconsistencies that do not block the calculators:
// custom splits that do not sum to the expense amount and percentage splits
// that do not sum to 100. The engine trusts the caller either way; these
// exist for logging and client feedback.
func (e *Expense) Warnings() []string {
	var warnings []string
	switch s := e.Split.(type) {
	case CustomSplit:
		var sum float64
		for _, amt := range s.Amounts {
			sum += amt
		}
		if math.Abs(sum-e.Amount) > 0.01 {
			warnings = append(warnings,
				fmt.Sprintf("custom splits sum to %.2f but expense amount is %.2f", sum, e.Amount))
		}
	case PercentageSplit:
		var sum float64
		for _, pct := range s.Percentages {
			sum += pct
		}
		if math.Abs(sum-100) > 0.01 {
			warnings = append(warnings,
				fmt.Sprintf("percentages sum to %.2f, expected 100", sum))
		}
	}
	return warnings
}
