package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devanshg/splitmate/internal/apperr"
	"github.com/devanshg/splitmate/internal/models"
)

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID interface{}
	if e.GroupID != "" {
		groupID = e.GroupID
	}
	var paymentMethod, category interface{}
	if e.PaymentMethod != "" {
		paymentMethod = e.PaymentMethod
	}
	if e.Category != "" {
		category = e.Category
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, kind, description, amount, date, paid_by, split_type, group_id, created_by, payment_method, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.Description, e.Amount, e.Date, e.PaidBy, e.SplitType,
		groupID, e.CreatedBy, paymentMethod, category, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertChildren(ctx, tx, e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertChildren writes the participant, payer and split rows for e.
func insertChildren(ctx context.Context, tx *sql.Tx, e *models.Expense) error {
	for i, name := range e.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, position, name) VALUES (?, ?, ?)",
			e.ID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	for i, p := range e.Payers {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_payers (expense_id, position, name, amount_paid) VALUES (?, ?, ?, ?)",
			e.ID, i, p.Name, p.AmountPaid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payer: %w", err)
		}
	}
	for i, sp := range e.Splits {
		var pct interface{}
		if sp.Percentage != nil {
			pct = *sp.Percentage
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, position, participant, amount, percentage) VALUES (?, ?, ?, ?, ?)",
			e.ID, i, sp.Participant, sp.Amount, pct,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}
	return nil
}

// GetExpense retrieves an expense by ID, including participants, payers and
// splits in their stored order.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	e := &models.Expense{}
	var groupID, paymentMethod, category sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, kind, description, amount, date, paid_by, split_type, group_id, created_by, payment_method, category, created_at
		 FROM expenses WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.Kind, &e.Description, &e.Amount, &e.Date, &e.PaidBy,
		&e.SplitType, &groupID, &e.CreatedBy, &paymentMethod, &category, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("expense not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	e.GroupID = groupID.String
	e.PaymentMethod = paymentMethod.String
	e.Category = category.String

	if err := s.loadChildren(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// loadChildren populates Participants, Payers and Splits for e.
func (s *SQLiteStore) loadChildren(ctx context.Context, e *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM expense_participants WHERE expense_id = ? ORDER BY position",
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		e.Participants = append(e.Participants, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	payerRows, err := s.db.QueryContext(ctx,
		"SELECT name, amount_paid FROM expense_payers WHERE expense_id = ? ORDER BY position",
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get payers: %w", err)
	}
	defer payerRows.Close()
	for payerRows.Next() {
		var p models.Payer
		if err := payerRows.Scan(&p.Name, &p.AmountPaid); err != nil {
			return fmt.Errorf("failed to scan payer: %w", err)
		}
		e.Payers = append(e.Payers, p)
	}
	if err := payerRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payers: %w", err)
	}

	splitRows, err := s.db.QueryContext(ctx,
		"SELECT participant, amount, percentage FROM expense_splits WHERE expense_id = ? ORDER BY position",
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer splitRows.Close()
	for splitRows.Next() {
		var sp models.Split
		var pct sql.NullFloat64
		if err := splitRows.Scan(&sp.Participant, &sp.Amount, &pct); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		if pct.Valid {
			v := pct.Float64
			sp.Percentage = &v
		}
		e.Splits = append(e.Splits, sp)
	}
	if err := splitRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}

	return nil
}

// UpdateExpense rewrites the stored record from e: the expense row is
// updated in place and the child rows are replaced wholesale. Kind,
// GroupID, CreatedBy and CreatedAt are never touched.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, e *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET description = ?, amount = ?, date = ?, paid_by = ?, split_type = ?
		 WHERE id = ?`,
		e.Description, e.Amount, e.Date, e.PaidBy, e.SplitType, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return apperr.NotFoundf("expense not found")
	}

	for _, table := range []string{"expense_participants", "expense_payers", "expense_splits"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE expense_id = ?", e.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertChildren(ctx, tx, e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense by ID. Unknown IDs are an error.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM expenses WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return apperr.NotFoundf("expense not found")
	}
	if err != nil {
		return fmt.Errorf("failed to check expense existence: %w", err)
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// ListGroupExpenses returns a group's expenses ordered by created_at
// descending.
func (s *SQLiteStore) ListGroupExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, kind, description, amount, date, paid_by, split_type, group_id, created_by, payment_method, category, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC`,
		groupID,
	)
}

// ListPersonalExpenses returns a user's personal expenses ordered by
// created_at descending.
func (s *SQLiteStore) ListPersonalExpenses(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, kind, description, amount, date, paid_by, split_type, group_id, created_by, payment_method, category, created_at
		 FROM expenses WHERE kind = 'personal' AND created_by = ? ORDER BY created_at DESC`,
		userID,
	)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...interface{}) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		var groupID, paymentMethod, category sql.NullString
		if err := rows.Scan(&e.ID, &e.Kind, &e.Description, &e.Amount, &e.Date, &e.PaidBy,
			&e.SplitType, &groupID, &e.CreatedBy, &paymentMethod, &category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.GroupID = groupID.String
		e.PaymentMethod = paymentMethod.String
		e.Category = category.String
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, e := range expenses {
		if err := s.loadChildren(ctx, e); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}
