package handler

import (
	"github.com/devanshg/splitmate/internal/models"
)

// expenseView is the client-facing shape of an expense.
type expenseView struct {
	ID            string         `json:"id"`
	GroupID       string         `json:"groupId,omitempty"`
	Type          string         `json:"type"`
	Description   string         `json:"description"`
	Amount        float64        `json:"amount"`
	PaidBy        string         `json:"paidBy"`
	Participants  []string       `json:"participants"`
	Splits        []models.Split `json:"splits,omitempty"`
	Payers        []models.Payer `json:"payers,omitempty"`
	SplitType     string         `json:"splitType"`
	Date          string         `json:"date"`
	PaymentMethod string         `json:"paymentMethod,omitempty"`
	Category      string         `json:"category,omitempty"`
	CreatedAt     int64          `json:"createdAt"`
}

func newExpenseView(e *models.Expense) expenseView {
	participants := e.Participants
	if participants == nil {
		participants = []string{}
	}
	return expenseView{
		ID:            e.ID,
		GroupID:       e.GroupID,
		Type:          e.Kind,
		Description:   e.Description,
		Amount:        e.Amount,
		PaidBy:        e.PaidBy,
		Participants:  participants,
		Splits:        e.Splits,
		Payers:        e.Payers,
		SplitType:     e.SplitType,
		Date:          e.Date,
		PaymentMethod: e.PaymentMethod,
		Category:      e.Category,
		CreatedAt:     e.CreatedAt,
	}
}

func newExpenseViews(expenses []*models.Expense) []expenseView {
	views := make([]expenseView, len(expenses))
	for i, e := range expenses {
		views[i] = newExpenseView(e)
	}
	return views
}

// groupView is the client-facing shape of a group.
type groupView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"createdAt"`
}

func newGroupView(g *models.Group) groupView {
	members := g.Members
	if members == nil {
		members = []string{}
	}
	return groupView{ID: g.ID, Name: g.Name, Members: members, CreatedAt: g.CreatedAt}
}

// userView is the client-facing shape of a user; never includes the
// password hash.
type userView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

func newUserView(u *models.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}
