package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/devanshg/splitmate/internal/apperr"
	"github.com/devanshg/splitmate/internal/expense"
	"github.com/devanshg/splitmate/internal/models"
	"github.com/devanshg/splitmate/internal/notify"
	"github.com/devanshg/splitmate/internal/storage"
)

var expensesCreated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "splitmate_expenses_created_total",
		Help: "Expenses created, by kind.",
	},
	[]string{"kind"},
)

// ExpenseService orchestrates every expense operation: classify the
// request, authorize against the group roster, reconcile sums, normalize,
// persist, notify. All validation happens before any write.
type ExpenseService struct {
	store    storage.Store
	notifier *notify.Worker
}

// NewExpenseService creates an ExpenseService with the given storage
// backend and notification worker. notifier may be nil.
func NewExpenseService(store storage.Store, notifier *notify.Worker) *ExpenseService {
	return &ExpenseService{store: store, notifier: notifier}
}

// validateID rejects identifiers the storage layer cannot address.
func validateID(id, what string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Validationf("invalid %s ID", what)
	}
	return nil
}

// Create validates, normalizes and persists a creation request of any
// shape - personal, group equal-split or group advanced.
func (s *ExpenseService) Create(ctx context.Context, user models.AuthUser, req *expense.Request) (*models.Expense, error) {
	shape, err := expense.Classify(req)
	if err != nil {
		return nil, err
	}

	var group *models.Group
	if shape != expense.ShapePersonal {
		if err := validateID(req.GroupID, "group"); err != nil {
			return nil, err
		}
		group, err = s.store.GetGroup(ctx, req.GroupID)
		if err != nil {
			return nil, err
		}
		if err := expense.Authorize(user.Name, req, expense.NewRoster(group.Members)); err != nil {
			return nil, err
		}
	}

	res, err := expense.Reconcile(shape, req)
	if err != nil {
		return nil, err
	}

	e, err := expense.Normalize(shape, req, res)
	if err != nil {
		return nil, err
	}
	e.CreatedBy = user.ID

	if err := s.store.CreateExpense(ctx, e); err != nil {
		slog.Error("CreateExpense failed", "kind", e.Kind, "error", err)
		return nil, err
	}
	expensesCreated.WithLabelValues(e.Kind).Inc()
	slog.Info("Expense created", "expense_id", e.ID, "kind", e.Kind, "shape", shape.String(), "amount", e.Amount)

	if shape == expense.ShapeGroupAdvanced && s.notifier != nil {
		s.notifier.Dispatch(notify.Notification{
			Title:     "New Expense Added",
			Body:      fmt.Sprintf("%s added an expense of Rs %v to %s", user.Name, e.Amount, group.Name),
			GroupID:   group.ID,
			GroupName: group.Name,
		})
	}

	return e, nil
}

// GetByID retrieves a single expense.
func (s *ExpenseService) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	if err := validateID(id, "expense"); err != nil {
		return nil, err
	}
	return s.store.GetExpense(ctx, id)
}

// ListPersonal returns the caller's personal expenses, newest first.
func (s *ExpenseService) ListPersonal(ctx context.Context, user models.AuthUser) ([]*models.Expense, error) {
	return s.store.ListPersonalExpenses(ctx, user.ID)
}

// ListByGroup returns a group's expenses, newest first. The caller must be
// a member.
func (s *ExpenseService) ListByGroup(ctx context.Context, user models.AuthUser, groupID string) ([]*models.Expense, error) {
	if err := validateID(groupID, "group"); err != nil {
		return nil, err
	}
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !expense.NewRoster(group.Members).Contains(user.Name) {
		return nil, apperr.Authorizationf("not a group member")
	}
	return s.store.ListGroupExpenses(ctx, groupID)
}

// ListAll merges the expenses of every group the caller belongs to with
// their personal expenses, re-sorted by CreatedAt descending.
func (s *ExpenseService) ListAll(ctx context.Context, user models.AuthUser) ([]*models.Expense, error) {
	groups, err := s.store.ListGroupsByMember(ctx, user.Name)
	if err != nil {
		return nil, err
	}

	var all []*models.Expense
	for _, g := range groups {
		expenses, err := s.store.ListGroupExpenses(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, expenses...)
	}

	personal, err := s.store.ListPersonalExpenses(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	all = append(all, personal...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt > all[j].CreatedAt
	})
	return all, nil
}

// GroupExpenseUpdate carries the mutable fields of a group expense; nil
// means "leave unchanged".
type GroupExpenseUpdate struct {
	Description  *string
	Amount       *float64
	PaidBy       *string
	Participants *[]string
	Splits       *[]models.Split
	Payers       *[]models.Payer
	SplitType    *string
	Date         *string
}

// UpdateGroupExpense applies a partial update to a group expense.
// Authorization is re-checked against the group's current member list;
// unspecified fields are preserved.
func (s *ExpenseService) UpdateGroupExpense(ctx context.Context, user models.AuthUser, id string, upd GroupExpenseUpdate) (*models.Expense, error) {
	if err := validateID(id, "expense"); err != nil {
		return nil, err
	}
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.GroupID == "" {
		return nil, apperr.NotFoundf("group not found")
	}
	group, err := s.store.GetGroup(ctx, e.GroupID)
	if err != nil {
		return nil, err
	}
	roster := expense.NewRoster(group.Members)
	if !roster.Contains(user.Name) {
		return nil, apperr.Authorizationf("not authorized to update this expense")
	}

	if upd.Description != nil {
		e.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Amount != nil {
		if err := validAmount(*upd.Amount); err != nil {
			return nil, err
		}
		e.Amount = *upd.Amount
	}
	if upd.PaidBy != nil {
		paidBy := strings.TrimSpace(*upd.PaidBy)
		if !roster.Contains(paidBy) {
			return nil, apperr.Validationf("payer must be a group member")
		}
		e.PaidBy = paidBy
	}
	if upd.Participants != nil {
		participants := *upd.Participants
		if len(participants) == 0 {
			return nil, apperr.Validationf("at least one participant is required")
		}
		var invalid []string
		trimmed := make([]string, len(participants))
		for i, p := range participants {
			trimmed[i] = strings.TrimSpace(p)
			if !roster.Contains(p) {
				invalid = append(invalid, trimmed[i])
			}
		}
		if len(invalid) > 0 {
			return nil, apperr.Validationf("invalid members: %s", strings.Join(invalid, ", "))
		}
		e.Participants = trimmed
	}
	if upd.Splits != nil {
		e.Splits = *upd.Splits
	}
	if upd.Payers != nil {
		e.Payers = *upd.Payers
	}
	if upd.SplitType != nil {
		e.SplitType = *upd.SplitType
	}
	if upd.Date != nil {
		e.Date = *upd.Date
	}

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", id, "error", err)
		return nil, err
	}
	return e, nil
}

// PersonalExpenseUpdate carries the mutable fields of a personal expense.
type PersonalExpenseUpdate struct {
	Description *string
	Amount      *float64
	Date        *string
}

// UpdatePersonalExpense applies a partial update to a personal expense.
// Only the author may update it.
func (s *ExpenseService) UpdatePersonalExpense(ctx context.Context, user models.AuthUser, id string, upd PersonalExpenseUpdate) (*models.Expense, error) {
	if err := validateID(id, "expense"); err != nil {
		return nil, err
	}
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Kind != models.KindPersonal || e.CreatedBy != user.ID {
		return nil, apperr.Authorizationf("not authorized to update this personal expense")
	}

	if upd.Description != nil {
		desc := strings.TrimSpace(*upd.Description)
		if desc == "" {
			return nil, apperr.Validationf("required fields missing")
		}
		e.Description = desc
	}
	if upd.Amount != nil {
		if err := validAmount(*upd.Amount); err != nil {
			return nil, err
		}
		e.Amount = *upd.Amount
	}
	if upd.Date != nil {
		if *upd.Date == "" {
			return nil, apperr.Validationf("required fields missing")
		}
		e.Date = *upd.Date
	}

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", id, "error", err)
		return nil, err
	}
	return e, nil
}

// DeleteGroupExpense deletes a group expense after re-checking the
// caller's membership. Deletion is permanent.
func (s *ExpenseService) DeleteGroupExpense(ctx context.Context, user models.AuthUser, id string) error {
	if err := validateID(id, "expense"); err != nil {
		return err
	}
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return err
	}
	if e.GroupID == "" {
		return apperr.NotFoundf("group not found")
	}
	group, err := s.store.GetGroup(ctx, e.GroupID)
	if err != nil {
		return err
	}
	if !expense.NewRoster(group.Members).Contains(user.Name) {
		return apperr.Authorizationf("not authorized to delete this expense")
	}
	return s.store.DeleteExpense(ctx, id)
}

// DeletePersonalExpense deletes a personal expense. Only the author may
// delete it.
func (s *ExpenseService) DeletePersonalExpense(ctx context.Context, user models.AuthUser, id string) error {
	if err := validateID(id, "expense"); err != nil {
		return err
	}
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return err
	}
	if e.Kind != models.KindPersonal || e.CreatedBy != user.ID {
		return apperr.Authorizationf("not authorized to delete this personal expense")
	}
	return s.store.DeleteExpense(ctx, id)
}

func validAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return apperr.Validationf("amount must be a valid number greater than 0")
	}
	return nil
}
