// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/devanshg/splitmate/internal/models"
)

// Store defines the interface for expense, group and user persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Concurrent writers are not coordinated: the last write wins. The service
// layer accepts this trade-off.
type Store interface {
	// CreateExpense persists a new expense, assigning ID and CreatedAt.
	CreateExpense(ctx context.Context, e *models.Expense) error

	// GetExpense retrieves an expense by ID, including participants,
	// payers and splits in their stored order.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// UpdateExpense rewrites the stored record from e. ID, Kind, GroupID,
	// CreatedBy and CreatedAt are never changed.
	UpdateExpense(ctx context.Context, e *models.Expense) error

	// DeleteExpense removes an expense. Deleting an unknown ID is an
	// error, not a no-op.
	DeleteExpense(ctx context.Context, id string) error

	// ListGroupExpenses returns a group's expenses ordered by CreatedAt
	// descending.
	ListGroupExpenses(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListPersonalExpenses returns a user's personal expenses ordered by
	// CreatedAt descending.
	ListPersonalExpenses(ctx context.Context, userID string) ([]*models.Expense, error)

	// CreateGroup persists a new group, assigning ID and CreatedAt.
	CreateGroup(ctx context.Context, g *models.Group) error

	// GetGroup retrieves a group with its members in order.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// ListGroupsByMember returns every group whose member list contains
	// name.
	ListGroupsByMember(ctx context.Context, name string) ([]*models.Group, error)

	// AddGroupMembers appends names to a group's member list, skipping
	// names already present.
	AddGroupMembers(ctx context.Context, groupID string, names []string) error

	// DeleteGroup removes a group and, via cascade, its expenses.
	DeleteGroup(ctx context.Context, id string) error

	// CreateUser inserts a new user account.
	CreateUser(ctx context.Context, u *models.User) error

	// GetUserByEmail returns the user with the given email, or nil if no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns the user with the given ID, or nil if no such
	// user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
