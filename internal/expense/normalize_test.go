package expense

import (
	"strings"
	"testing"

	"github.com/devanshg/splitmate/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		shape        Shape
		req          Request
		res          Resolved
		wantErr      string
		validateFunc func(t *testing.T, e *models.Expense)
	}{
		{
			name:  "personal defaults applied",
			shape: ShapePersonal,
			req:   Request{Description: " Coffee ", Amount: 4.5, Date: "2025-06-01"},
			res:   Resolved{SplitType: models.SplitEqual},
			validateFunc: func(t *testing.T, e *models.Expense) {
				if e.Kind != models.KindPersonal {
					t.Errorf("Kind = %q, want %q", e.Kind, models.KindPersonal)
				}
				if e.Description != "Coffee" {
					t.Errorf("Description = %q, want trimmed", e.Description)
				}
				if e.PaymentMethod != DefaultPaymentMethod {
					t.Errorf("PaymentMethod = %q, want %q", e.PaymentMethod, DefaultPaymentMethod)
				}
				if e.Category != DefaultCategory {
					t.Errorf("Category = %q, want %q", e.Category, DefaultCategory)
				}
			},
		},
		{
			name:  "personal keeps supplied method and category",
			shape: ShapePersonal,
			req:   Request{Description: "Cab", Amount: 15, Date: "2025-06-01", PaymentMethod: "Card", Category: "Travel"},
			res:   Resolved{SplitType: models.SplitEqual},
			validateFunc: func(t *testing.T, e *models.Expense) {
				if e.PaymentMethod != "Card" || e.Category != "Travel" {
					t.Errorf("got %q/%q, want Card/Travel", e.PaymentMethod, e.Category)
				}
			},
		},
		{
			name:  "group expense carries group id and no personal fields",
			shape: ShapeGroupEqual,
			req:   Request{GroupID: "g1", Description: "Dinner", Amount: 90, Date: "2025-06-01"},
			res: Resolved{
				PaidBy:       "Alice",
				Payers:       []models.Payer{{Name: "Alice", AmountPaid: 90}},
				Participants: []string{"Alice", "Bob"},
				Allocation:   EqualAllocation{Participants: []string{"Alice", "Bob"}},
				SplitType:    models.SplitEqual,
			},
			validateFunc: func(t *testing.T, e *models.Expense) {
				if e.Kind != models.KindGroup || e.GroupID != "g1" {
					t.Errorf("Kind/GroupID = %q/%q, want group/g1", e.Kind, e.GroupID)
				}
				if e.PaymentMethod != "" || e.Category != "" {
					t.Errorf("personal fields set on group expense: %q/%q", e.PaymentMethod, e.Category)
				}
				if e.Splits != nil {
					t.Errorf("Splits = %v, want nil for equal allocation", e.Splits)
				}
			},
		},
		{
			name:  "explicit allocation materializes splits",
			shape: ShapeGroupAdvanced,
			req:   Request{GroupID: "g1", Description: "Trip", Amount: 100, Date: "2025-06-01"},
			res: Resolved{
				PaidBy:       models.PaidByMultiple,
				Payers:       []models.Payer{{Name: "Alice", AmountPaid: 60}, {Name: "Bob", AmountPaid: 40}},
				Participants: []string{"Alice", "Bob"},
				Allocation:   ExplicitAllocation{Entries: []models.Split{{Participant: "Alice", Amount: 50}, {Participant: "Bob", Amount: 50}}},
				SplitType:    models.SplitUnequal,
			},
			validateFunc: func(t *testing.T, e *models.Expense) {
				if len(e.Splits) != 2 {
					t.Fatalf("len(Splits) = %d, want 2", len(e.Splits))
				}
				if e.PaidBy != models.PaidByMultiple {
					t.Errorf("PaidBy = %q, want %q", e.PaidBy, models.PaidByMultiple)
				}
			},
		},
		{
			name:    "description too long",
			shape:   ShapePersonal,
			req:     Request{Description: strings.Repeat("x", MaxDescriptionLen+1), Amount: 10, Date: "2025-06-01"},
			res:     Resolved{SplitType: models.SplitEqual},
			wantErr: "description must be at most 200 characters",
		},
		{
			name:    "invalid split type",
			shape:   ShapeGroupAdvanced,
			req:     Request{GroupID: "g1", Description: "Trip", Amount: 100, Date: "2025-06-01"},
			res:     Resolved{SplitType: "weighted"},
			wantErr: "invalid split type: weighted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Normalize(tt.shape, &tt.req, &tt.res)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("Normalize() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, e)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	roster := NewRoster([]string{"Alice", "Bob", " Carol "})

	if err := Authorize("Alice", &Request{PaidBy: "Bob", Participants: []string{"Alice", "Carol"}}, roster); err != nil {
		t.Fatalf("Authorize() error = %v", err)
	}

	err := Authorize("Mallory", &Request{}, roster)
	if err == nil || err.Error() != "not a group member" {
		t.Fatalf("Authorize() error = %v, want not a group member", err)
	}

	// Every bad name is reported, not just the first.
	err = Authorize("Alice", &Request{
		PaidBy:       "Eve",
		Participants: []string{"Alice", "Trent"},
		Splits:       []models.Split{{Participant: "Oscar", Amount: 10}},
	}, roster)
	if err == nil || err.Error() != "invalid members: Eve, Trent, Oscar" {
		t.Fatalf("Authorize() error = %v, want aggregated invalid members", err)
	}
}
