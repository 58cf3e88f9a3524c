package models

// Expense kinds.
const (
	KindPersonal = "personal"
	KindGroup    = "group"
)

// Split types.
const (
	SplitEqual      = "equal"
	SplitUnequal    = "unequal"
	SplitPercentage = "percentage"
	SplitShares     = "shares"
)

// PaidByMultiple is the sentinel stored in PaidBy when an expense has more
// than one payer.
const PaidByMultiple = "Multiple"

// Payer records one person's contribution toward an expense.
type Payer struct {
	// Name is the member display-name of the contributor.
	Name string `json:"name"`

	// AmountPaid is how much this person put in. Across all payers of an
	// expense these must sum to the expense amount.
	AmountPaid float64 `json:"amountPaid"`
}

// Split allocates part of an expense's amount to one participant.
type Split struct {
	// Participant is the member display-name the share belongs to.
	Participant string `json:"participant"`

	// Amount is this participant's share. Across all splits of an expense
	// these must sum to the expense amount.
	Amount float64 `json:"amount"`

	// Percentage is an optional display hint for percentage splits. It is
	// stored as supplied and never reconciled against Amount.
	Percentage *float64 `json:"percentage,omitempty"`
}

// Expense is the central entity: a single personal or group expense.
//
// Equal-split group expenses carry only Participants; the per-person share
// is derived at read time. Advanced expenses (multi-payer or explicit
// splits) always materialize Splits, and Payers records who actually paid.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	// Assigned at creation, immutable.
	ID string

	// Kind is KindPersonal or KindGroup. Immutable after creation.
	Kind string

	// Description is the human-readable label, trimmed, at most 200
	// characters.
	Description string

	// Amount is the authoritative total, strictly positive.
	Amount float64

	// Date is the calendar date as supplied by the client. It is stored
	// opaquely and never parsed.
	Date string

	// PaidBy is the single canonical payer name, or PaidByMultiple when
	// several people paid.
	PaidBy string

	// Participants is the ordered list of member names sharing the
	// expense. Duplicates are kept as supplied.
	Participants []string

	// Payers lists individual contributions for multi-payer expenses.
	// Single-payer advanced expenses carry the implicit one-entry list.
	Payers []Payer

	// Splits lists per-participant shares for advanced expenses. Empty for
	// equal-split and personal expenses.
	Splits []Split

	// SplitType is one of the Split* constants.
	SplitType string

	// GroupID references the owning group; empty for personal expenses.
	// Immutable after creation.
	GroupID string

	// CreatedBy is the authoring user's ID. Immutable after creation.
	CreatedBy string

	// PaymentMethod and Category apply to personal expenses only.
	PaymentMethod string
	Category      string

	// CreatedAt is the Unix timestamp when the expense was created.
	// Assigned by the store, immutable, used for ordering.
	CreatedAt int64
}
