package expense

import (
	"strings"

	"github.com/devanshg/splitmate/internal/apperr"
	"github.com/devanshg/splitmate/internal/models"
)

// Personal-expense defaults.
const (
	DefaultPaymentMethod = "Cash"
	DefaultCategory      = "Other"
)

func validSplitType(t string) bool {
	switch t {
	case models.SplitEqual, models.SplitUnequal, models.SplitPercentage, models.SplitShares:
		return true
	}
	return false
}

// Normalize turns a classified, reconciled request into the expense record
// to persist: names trimmed, defaults applied, immutable creation fields
// (ID, CreatedAt) left for the store to assign.
func Normalize(shape Shape, r *Request, res *Resolved) (*models.Expense, error) {
	desc := strings.TrimSpace(r.Description)
	if len(desc) > MaxDescriptionLen {
		return nil, apperr.Validationf("description must be at most %d characters", MaxDescriptionLen)
	}
	if !validSplitType(res.SplitType) {
		return nil, apperr.Validationf("invalid split type: %s", res.SplitType)
	}

	e := &models.Expense{
		Description:  desc,
		Amount:       r.Amount,
		Date:         r.Date,
		PaidBy:       res.PaidBy,
		Participants: res.Participants,
		Payers:       res.Payers,
		SplitType:    res.SplitType,
	}

	if alloc, ok := res.Allocation.(ExplicitAllocation); ok {
		e.Splits = alloc.Entries
	}

	switch shape {
	case ShapePersonal:
		e.Kind = models.KindPersonal
		e.PaymentMethod = r.PaymentMethod
		if e.PaymentMethod == "" {
			e.PaymentMethod = DefaultPaymentMethod
		}
		e.Category = r.Category
		if e.Category == "" {
			e.Category = DefaultCategory
		}
	default:
		e.Kind = models.KindGroup
		e.GroupID = r.GroupID
	}

	return e, nil
}
