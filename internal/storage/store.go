// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group and expense storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Settlements are deliberately absent: they are derived values, recomputed
// from the stored expenses on every request, never persisted.
type Store interface {
	// CreateGroup persists a new group and its participants.
	// The group.ID field will be populated by the store if empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its participants.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, most recent first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddParticipants adds new members to an existing group.
	// Participant IDs will be populated by the store if empty.
	AddParticipants(ctx context.Context, groupID string, participants []models.Participant) error

	// CreateExpense persists a new expense, including its split details.
	// The expense.ID field will be populated by the store if empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup retrieves all expenses of a group in insertion
	// order, with split details fully reassembled.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// DeleteExpense removes an expense by ID.
	// Returns ErrNotFound if the expense does not exist.
	DeleteExpense(ctx context.Context, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
