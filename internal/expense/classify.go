// Package expense is the validation and normalization engine behind every
// expense write. A creation request flows strictly forward through it:
// Classify -> Authorize -> Reconcile -> Normalize. The engine performs no
// I/O; callers fetch the group roster and persist the result.
package expense

import (
	"math"
	"strings"

	"github.com/devanshg/splitmate/internal/apperr"
	"github.com/devanshg/splitmate/internal/models"
)

// Tolerance is the absolute margin allowed when reconciling declared payer
// or split sums against the expense total.
const Tolerance = 0.01

// MaxDescriptionLen is the longest accepted description after trimming.
const MaxDescriptionLen = 200

// Request is a creation request after boundary decoding: amounts are
// already strictly-typed float64s, everything else is as the client sent
// it. HasPayers/HasSplits record whether the arrays were present in the
// body at all, which drives shape classification.
type Request struct {
	GroupID       string
	Description   string
	Amount        float64
	Date          string
	PaidBy        string
	Participants  []string
	Payers        []models.Payer
	Splits        []models.Split
	SplitType     string
	PaymentMethod string
	Category      string

	HasPayers bool
	HasSplits bool
}

// Shape is the structural classification of a creation request.
type Shape int

const (
	// ShapePersonal is an expense with no group context.
	ShapePersonal Shape = iota
	// ShapeGroupEqual is a group expense with only paidBy and
	// participants supplied; shares are derived at read time.
	ShapeGroupEqual
	// ShapeGroupAdvanced is a group expense with explicit payers and/or
	// splits supplied; shares are always materialized.
	ShapeGroupAdvanced
)

func (s Shape) String() string {
	switch s {
	case ShapePersonal:
		return "personal"
	case ShapeGroupEqual:
		return "group-equal"
	case ShapeGroupAdvanced:
		return "group-advanced"
	}
	return "unknown"
}

// Classify decides which shape the request represents and enforces the
// field requirements common to all shapes. It must run before any group
// lookup or persistence.
func Classify(r *Request) (Shape, error) {
	if strings.TrimSpace(r.Description) == "" || r.Date == "" || r.Amount == 0 {
		return 0, apperr.Validationf("required fields missing")
	}
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
		return 0, apperr.Validationf("invalid amount type")
	}
	if r.Amount <= 0 {
		return 0, apperr.Validationf("amount must be positive")
	}

	if r.GroupID == "" {
		return ShapePersonal, nil
	}
	if r.HasPayers || r.HasSplits {
		return ShapeGroupAdvanced, nil
	}
	return ShapeGroupEqual, nil
}
