package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// CreateExpense persists a new expense and its split details.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, name, amount, paid_by, split_type, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Name, expense.Amount,
		expense.PaidBy, string(expense.Split.Type()), expense.Category, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, id := range expense.Beneficiaries {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_beneficiaries (expense_id, participant_id, position) VALUES (?, ?, ?)",
			expense.ID, id, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert beneficiary: %w", err)
		}
	}

	if err := insertSplitDetails(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertSplitDetails(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	switch split := expense.Split.(type) {
	case models.EqualSplit:
		return nil

	case models.PercentageSplit:
		return insertShares(ctx, tx, expense.ID, split.Percentages)

	case models.CustomSplit:
		return insertShares(ctx, tx, expense.ID, split.Amounts)

	case models.ItemsSplit:
		for i := range split.Items {
			item := split.Items[i]
			if item.ID == "" {
				item.ID = uuid.New().String()
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO expense_items (id, expense_id, description, price, position) VALUES (?, ?, ?, ?, ?)",
				item.ID, expense.ID, item.Description, item.Price, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item: %w", err)
			}
			for j, participantID := range item.AssignedTo {
				_, err = tx.ExecContext(ctx,
					"INSERT INTO item_assignments (item_id, participant_id, position) VALUES (?, ?, ?)",
					item.ID, participantID, j,
				)
				if err != nil {
					return fmt.Errorf("failed to insert item assignment: %w", err)
				}
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown split type %q", expense.Split.Type())
	}
}

func insertShares(ctx context.Context, tx *sql.Tx, expenseID string, values map[string]float64) error {
	// Stable insert order keeps transactions reproducible.
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO split_shares (expense_id, participant_id, value) VALUES (?, ?, ?)",
			expenseID, id, values[id],
		)
		if err != nil {
			return fmt.Errorf("failed to insert split share: %w", err)
		}
	}
	return nil
}

// ListExpensesByGroup retrieves all expenses of a group in insertion order,
// with their split details reassembled into the right Split variant.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, name, amount, paid_by, split_type, category, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	var splitTypes []models.SplitType
	for rows.Next() {
		var e models.Expense
		var splitType string
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Name, &e.Amount, &e.PaidBy,
			&splitType, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
		splitTypes = append(splitTypes, models.SplitType(splitType))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		e := &expenses[i]

		beneficiaries, err := s.expenseBeneficiaries(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		e.Beneficiaries = beneficiaries

		split, err := s.loadSplit(ctx, e.ID, splitTypes[i])
		if err != nil {
			return nil, err
		}
		e.Split = split
	}

	return expenses, nil
}

func (s *SQLiteStore) expenseBeneficiaries(ctx context.Context, expenseID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id FROM expense_beneficiaries WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get beneficiaries: %w", err)
	}
	defer rows.Close()

	var beneficiaries []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary: %w", err)
		}
		beneficiaries = append(beneficiaries, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate beneficiaries: %w", err)
	}

	return beneficiaries, nil
}

func (s *SQLiteStore) loadSplit(ctx context.Context, expenseID string, splitType models.SplitType) (models.Split, error) {
	switch splitType {
	case models.SplitEqual:
		return models.EqualSplit{}, nil

	case models.SplitPercentage:
		values, err := s.splitShares(ctx, expenseID)
		if err != nil {
			return nil, err
		}
		return models.PercentageSplit{Percentages: values}, nil

	case models.SplitCustom:
		values, err := s.splitShares(ctx, expenseID)
		if err != nil {
			return nil, err
		}
		return models.CustomSplit{Amounts: values}, nil

	case models.SplitItems:
		items, err := s.expenseItems(ctx, expenseID)
		if err != nil {
			return nil, err
		}
		return models.ItemsSplit{Items: items}, nil

	default:
		return nil, fmt.Errorf("expense %s has unknown split type %q", expenseID, splitType)
	}
}

func (s *SQLiteStore) splitShares(ctx context.Context, expenseID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id, value FROM split_shares WHERE expense_id = ?",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get split shares: %w", err)
	}
	defer rows.Close()

	values := make(map[string]float64)
	for rows.Next() {
		var id string
		var value float64
		if err := rows.Scan(&id, &value); err != nil {
			return nil, fmt.Errorf("failed to scan split share: %w", err)
		}
		values[id] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate split shares: %w", err)
	}

	return values, nil
}

func (s *SQLiteStore) expenseItems(ctx context.Context, expenseID string) ([]models.ExpenseItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, price FROM expense_items WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []models.ExpenseItem
	for rows.Next() {
		var item models.ExpenseItem
		if err := rows.Scan(&item.ID, &item.Description, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	for i := range items {
		assignRows, err := s.db.QueryContext(ctx,
			"SELECT participant_id FROM item_assignments WHERE item_id = ? ORDER BY position",
			items[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get item assignments: %w", err)
		}
		for assignRows.Next() {
			var participantID string
			if err := assignRows.Scan(&participantID); err != nil {
				assignRows.Close()
				return nil, fmt.Errorf("failed to scan assignment: %w", err)
			}
			items[i].AssignedTo = append(items[i].AssignedTo, participantID)
		}
		if err := assignRows.Err(); err != nil {
			assignRows.Close()
			return nil, fmt.Errorf("failed to iterate assignments: %w", err)
		}
		assignRows.Close()
	}

	return items, nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	// Check if expense exists
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM expenses WHERE id = ?", expenseID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check expense existence: %w", err)
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}
