package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devanshg/splitmate/internal/expense"
	"github.com/devanshg/splitmate/internal/middleware"
	"github.com/devanshg/splitmate/internal/models"
	"github.com/devanshg/splitmate/internal/service"
)

// ExpenseHandler exposes the expense operations over HTTP.
type ExpenseHandler struct {
	svc *service.ExpenseService
}

// NewExpenseHandler creates an ExpenseHandler backed by svc.
func NewExpenseHandler(svc *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

type payerDTO struct {
	Name       string  `json:"name"`
	AmountPaid *Amount `json:"amountPaid"`
}

type splitDTO struct {
	Participant string   `json:"participant"`
	Amount      *Amount  `json:"amount"`
	Percentage  *float64 `json:"percentage"`
}

func toPayers(dtos []payerDTO) []models.Payer {
	if dtos == nil {
		return nil
	}
	payers := make([]models.Payer, len(dtos))
	for i, d := range dtos {
		payers[i] = models.Payer{Name: d.Name, AmountPaid: d.AmountPaid.float()}
	}
	return payers
}

func toSplits(dtos []splitDTO) []models.Split {
	if dtos == nil {
		return nil
	}
	splits := make([]models.Split, len(dtos))
	for i, d := range dtos {
		splits[i] = models.Split{Participant: d.Participant, Amount: d.Amount.float(), Percentage: d.Percentage}
	}
	return splits
}

// CreatePersonal handles POST /api/expenses/personal.
func (h *ExpenseHandler) CreatePersonal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description   string   `json:"description"`
		Amount        *Amount  `json:"amount"`
		Date          string   `json:"date"`
		PaidBy        string   `json:"paidBy"`
		Participants  []string `json:"participants"`
		PaymentMethod string   `json:"paymentMethod"`
		Category      string   `json:"category"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	e, err := h.svc.Create(r.Context(), middleware.GetUser(r.Context()), &expense.Request{
		Description:   req.Description,
		Amount:        req.Amount.float(),
		Date:          req.Date,
		PaidBy:        req.PaidBy,
		Participants:  req.Participants,
		PaymentMethod: req.PaymentMethod,
		Category:      req.Category,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, newExpenseView(e))
}

// CreateGroupEqual handles POST /api/expenses: the simple equal-split
// path.
func (h *ExpenseHandler) CreateGroupEqual(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID      string   `json:"groupId"`
		Description  string   `json:"description"`
		Amount       *Amount  `json:"amount"`
		PaidBy       string   `json:"paidBy"`
		Participants []string `json:"participants"`
		Date         string   `json:"date"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.GroupID == "" {
		writeError(w, requiredFieldsErr())
		return
	}

	e, err := h.svc.Create(r.Context(), middleware.GetUser(r.Context()), &expense.Request{
		GroupID:      req.GroupID,
		Description:  req.Description,
		Amount:       req.Amount.float(),
		Date:         req.Date,
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, newExpenseView(e))
}

// CreateAdvanced handles POST /api/expenses/advanced: multi-payer and
// explicit-split expenses.
func (h *ExpenseHandler) CreateAdvanced(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID     string     `json:"groupId"`
		Description string     `json:"description"`
		Amount      *Amount    `json:"amount"`
		Date        string     `json:"date"`
		PaidBy      string     `json:"paidBy"`
		Payers      []payerDTO `json:"payers"`
		Splits      []splitDTO `json:"splits"`
		SplitType   string     `json:"splitType"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.GroupID == "" {
		writeError(w, requiredFieldsErr())
		return
	}

	e, err := h.svc.Create(r.Context(), middleware.GetUser(r.Context()), &expense.Request{
		GroupID:     req.GroupID,
		Description: req.Description,
		Amount:      req.Amount.float(),
		Date:        req.Date,
		PaidBy:      req.PaidBy,
		Payers:      toPayers(req.Payers),
		Splits:      toSplits(req.Splits),
		SplitType:   req.SplitType,
		HasPayers:   req.Payers != nil,
		HasSplits:   req.Splits != nil,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, newExpenseView(e))
}

// ListPersonal handles GET /api/expenses/personal.
func (h *ExpenseHandler) ListPersonal(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListPersonal(r.Context(), middleware.GetUser(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, newExpenseViews(expenses))
}

// ListByGroup handles GET /api/expenses/group/{groupId}.
func (h *ExpenseHandler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListByGroup(r.Context(), middleware.GetUser(r.Context()), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, newExpenseViews(expenses))
}

// ListAll handles GET /api/expenses: the caller's group and personal
// expenses merged, newest first.
func (h *ExpenseHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListAll(r.Context(), middleware.GetUser(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, newExpenseViews(expenses))
}

// Get handles GET /api/expenses/{id}.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, newExpenseView(e))
}

// UpdateGroup handles PUT /api/expenses/{id}: a partial update of a group
// expense.
func (h *ExpenseHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description  *string     `json:"description"`
		Amount       *Amount     `json:"amount"`
		PaidBy       *string     `json:"paidBy"`
		Participants *[]string   `json:"participants"`
		Splits       *[]splitDTO `json:"splits"`
		Payers       *[]payerDTO `json:"payers"`
		SplitType    *string     `json:"splitType"`
		Date         *string     `json:"date"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	upd := service.GroupExpenseUpdate{
		Description:  req.Description,
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
		SplitType:    req.SplitType,
		Date:         req.Date,
	}
	if req.Amount != nil {
		amount := req.Amount.float()
		upd.Amount = &amount
	}
	if req.Splits != nil {
		splits := toSplits(*req.Splits)
		if splits == nil {
			splits = []models.Split{}
		}
		upd.Splits = &splits
	}
	if req.Payers != nil {
		payers := toPayers(*req.Payers)
		if payers == nil {
			payers = []models.Payer{}
		}
		upd.Payers = &payers
	}

	e, err := h.svc.UpdateGroupExpense(r.Context(), middleware.GetUser(r.Context()), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, newExpenseView(e))
}

// UpdatePersonal handles PUT /api/expenses/personal/{id}.
func (h *ExpenseHandler) UpdatePersonal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description *string `json:"description"`
		Amount      *Amount `json:"amount"`
		Date        *string `json:"date"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	upd := service.PersonalExpenseUpdate{
		Description: req.Description,
		Date:        req.Date,
	}
	if req.Amount != nil {
		amount := req.Amount.float()
		upd.Amount = &amount
	}

	e, err := h.svc.UpdatePersonalExpense(r.Context(), middleware.GetUser(r.Context()), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, newExpenseView(e))
}

// DeleteGroup handles DELETE /api/expenses/{id}.
func (h *ExpenseHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteGroupExpense(r.Context(), middleware.GetUser(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Expense deleted successfully")
}

// DeletePersonal handles DELETE /api/expenses/personal/{id}.
func (h *ExpenseHandler) DeletePersonal(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePersonalExpense(r.Context(), middleware.GetUser(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Personal expense deleted successfully")
}
