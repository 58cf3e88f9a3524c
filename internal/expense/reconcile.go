package expense

import (
	"math"
	"strings"

	"github.com/devanshg/splitmate/internal/apperr"
	"github.com/devanshg/splitmate/internal/models"
)

// Allocation is how an expense's amount is divided among participants.
// The two variants are deliberately distinct types: equal-split expenses
// never materialize per-person amounts, advanced expenses always do.
type Allocation interface {
	allocation()
}

// EqualAllocation divides the amount evenly among Participants at read
// time; nothing per-person is stored.
type EqualAllocation struct {
	Participants []string
}

// ExplicitAllocation carries materialized per-participant shares.
type ExplicitAllocation struct {
	Entries []models.Split
}

func (EqualAllocation) allocation()    {}
func (ExplicitAllocation) allocation() {}

// Resolved is the reconciler's output: the payer structure and the
// allocation, both guaranteed to account for the full amount within
// Tolerance.
type Resolved struct {
	// PaidBy is the single canonical payer name, models.PaidByMultiple
	// when several people paid, or empty for a personal expense without a
	// recorded payer.
	PaidBy string

	// Payers is the contribution list. For single-payer group expenses it
	// is the synthesized one-entry list; for personal expenses it is nil.
	Payers []models.Payer

	// Participants is the ordered participant list; for explicit splits
	// it is derived from the split entries.
	Participants []string

	// Allocation is the shape-specific division of the amount.
	Allocation Allocation

	// SplitType is the effective split type after defaulting.
	SplitType string
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func trimAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.TrimSpace(n)
	}
	return out
}

// Reconcile guarantees the amount is fully and consistently accounted for,
// whatever optional structures the request supplied. Monetary comparisons
// use an absolute Tolerance of 0.01, applied independently to the payer
// sum and the split sum.
func Reconcile(shape Shape, r *Request) (*Resolved, error) {
	switch shape {
	case ShapePersonal:
		return reconcilePersonal(r)
	case ShapeGroupEqual:
		return reconcileEqual(r)
	case ShapeGroupAdvanced:
		return reconcileAdvanced(r)
	}
	return nil, apperr.Validationf("unknown expense shape")
}

// reconcilePersonal handles expenses with no group context. Payer and
// participants are optional; no payer list is synthesized.
func reconcilePersonal(r *Request) (*Resolved, error) {
	participants := trimAll(r.Participants)
	return &Resolved{
		PaidBy:       strings.TrimSpace(r.PaidBy),
		Participants: participants,
		Allocation:   EqualAllocation{Participants: participants},
		SplitType:    models.SplitEqual,
	}, nil
}

// reconcileEqual handles the simple group path: one payer, participants
// share evenly, no per-person amounts stored.
func reconcileEqual(r *Request) (*Resolved, error) {
	if len(r.Participants) == 0 {
		return nil, apperr.Validationf("at least one participant is required")
	}
	paidBy := strings.TrimSpace(r.PaidBy)
	if paidBy == "" {
		return nil, apperr.Validationf("payer is required")
	}

	participants := trimAll(r.Participants)
	return &Resolved{
		PaidBy:       paidBy,
		Payers:       []models.Payer{{Name: paidBy, AmountPaid: r.Amount}},
		Participants: participants,
		Allocation:   EqualAllocation{Participants: participants},
		SplitType:    models.SplitEqual,
	}, nil
}

// reconcileAdvanced handles multi-payer and explicit-split expenses.
func reconcileAdvanced(r *Request) (*Resolved, error) {
	// Per-item numeric sanity first, naming the offender.
	for _, p := range r.Payers {
		if !isFinite(p.AmountPaid) {
			return nil, apperr.Validationf("payer amountPaid for %s must be a valid number", strings.TrimSpace(p.Name))
		}
	}
	for _, s := range r.Splits {
		if !isFinite(s.Amount) {
			return nil, apperr.Validationf("split amount for %s must be a valid number", strings.TrimSpace(s.Participant))
		}
	}

	res := &Resolved{SplitType: r.SplitType}
	if res.SplitType == "" {
		res.SplitType = models.SplitUnequal
	}

	// Payer resolution.
	if len(r.Payers) > 0 {
		var totalPaid float64
		payers := make([]models.Payer, len(r.Payers))
		for i, p := range r.Payers {
			payers[i] = models.Payer{Name: strings.TrimSpace(p.Name), AmountPaid: p.AmountPaid}
			totalPaid += p.AmountPaid
		}
		if math.Abs(totalPaid-r.Amount) > Tolerance {
			return nil, apperr.Validationf("total paid amount (%v) must equal expense amount (%v)", totalPaid, r.Amount)
		}
		res.Payers = payers
		if len(payers) == 1 {
			res.PaidBy = payers[0].Name
		} else {
			res.PaidBy = models.PaidByMultiple
		}
	} else {
		paidBy := strings.TrimSpace(r.PaidBy)
		if paidBy == "" {
			return nil, apperr.Validationf("payer is required")
		}
		res.PaidBy = paidBy
		res.Payers = []models.Payer{{Name: paidBy, AmountPaid: r.Amount}}
	}

	// Split resolution: the advanced path always materializes shares.
	if len(r.Splits) == 0 {
		return nil, apperr.Validationf("splits required for advanced expenses")
	}
	var totalSplit float64
	entries := make([]models.Split, len(r.Splits))
	participants := make([]string, len(r.Splits))
	for i, s := range r.Splits {
		name := strings.TrimSpace(s.Participant)
		entries[i] = models.Split{Participant: name, Amount: s.Amount, Percentage: s.Percentage}
		participants[i] = name
		totalSplit += s.Amount
	}
	if math.Abs(totalSplit-r.Amount) > Tolerance {
		return nil, apperr.Validationf("total split amount (%v) must equal expense amount (%v)", totalSplit, r.Amount)
	}
	res.Participants = participants
	res.Allocation = ExplicitAllocation{Entries: entries}

	return res, nil
}
