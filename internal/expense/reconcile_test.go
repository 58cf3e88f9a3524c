package expense

import (
	"math"
	"testing"

	"github.com/devanshg/splitmate/internal/models"
)

func TestReconcileEqual(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{
			name: "valid equal split",
			req:  Request{Amount: 90, PaidBy: "Alice", Participants: []string{"Alice", "Bob", "Carol"}},
		},
		{
			name:    "no participants",
			req:     Request{Amount: 90, PaidBy: "Alice"},
			wantErr: "at least one participant is required",
		},
		{
			name:    "missing payer",
			req:     Request{Amount: 90, PaidBy: "  ", Participants: []string{"Alice"}},
			wantErr: "payer is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Reconcile(ShapeGroupEqual, &tt.req)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("Reconcile() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Reconcile() error = %v", err)
			}
			if res.PaidBy != "Alice" {
				t.Errorf("PaidBy = %q, want Alice", res.PaidBy)
			}
			if len(res.Payers) != 1 || res.Payers[0].AmountPaid != 90 {
				t.Errorf("Payers = %v, want single synthesized payer of 90", res.Payers)
			}
			if _, ok := res.Allocation.(EqualAllocation); !ok {
				t.Errorf("Allocation = %T, want EqualAllocation", res.Allocation)
			}
			if res.SplitType != models.SplitEqual {
				t.Errorf("SplitType = %q, want %q", res.SplitType, models.SplitEqual)
			}
		})
	}
}

func TestReconcileAdvanced(t *testing.T) {
	pct := 50.0
	tests := []struct {
		name         string
		req          Request
		wantErr      string
		validateFunc func(t *testing.T, res *Resolved)
	}{
		{
			name: "multi payer within tolerance",
			req: Request{
				Amount: 100,
				Payers: []models.Payer{{Name: "Alice", AmountPaid: 60}, {Name: "Bob", AmountPaid: 39.995}},
				Splits: []models.Split{{Participant: "Alice", Amount: 50}, {Participant: "Bob", Amount: 50}},
			},
			validateFunc: func(t *testing.T, res *Resolved) {
				if res.PaidBy != models.PaidByMultiple {
					t.Errorf("PaidBy = %q, want %q", res.PaidBy, models.PaidByMultiple)
				}
				if res.SplitType != models.SplitUnequal {
					t.Errorf("SplitType = %q, want %q", res.SplitType, models.SplitUnequal)
				}
			},
		},
		{
			name: "single payer keeps the name",
			req: Request{
				Amount: 100,
				Payers: []models.Payer{{Name: " Alice ", AmountPaid: 100}},
				Splits: []models.Split{{Participant: "Alice", Amount: 40}, {Participant: "Bob", Amount: 60}},
			},
			validateFunc: func(t *testing.T, res *Resolved) {
				if res.PaidBy != "Alice" {
					t.Errorf("PaidBy = %q, want Alice", res.PaidBy)
				}
				want := []string{"Alice", "Bob"}
				for i, p := range res.Participants {
					if p != want[i] {
						t.Errorf("Participants[%d] = %q, want %q", i, p, want[i])
					}
				}
			},
		},
		{
			name: "paidBy fallback when no payer list",
			req: Request{
				Amount:    80,
				PaidBy:    "Carol",
				Splits:    []models.Split{{Participant: "Carol", Amount: 40}, {Participant: "Dan", Amount: 40}},
				HasSplits: true,
			},
			validateFunc: func(t *testing.T, res *Resolved) {
				if res.PaidBy != "Carol" {
					t.Errorf("PaidBy = %q, want Carol", res.PaidBy)
				}
				if len(res.Payers) != 1 || res.Payers[0].AmountPaid != 80 {
					t.Errorf("Payers = %v, want synthesized Carol/80", res.Payers)
				}
			},
		},
		{
			name: "payer sum outside tolerance",
			req: Request{
				Amount: 100,
				Payers: []models.Payer{{Name: "Alice", AmountPaid: 60}, {Name: "Bob", AmountPaid: 39}},
				Splits: []models.Split{{Participant: "Alice", Amount: 100}},
			},
			wantErr: "total paid amount (99) must equal expense amount (100)",
		},
		{
			name: "split sum outside tolerance",
			req: Request{
				Amount: 100,
				Payers: []models.Payer{{Name: "Alice", AmountPaid: 100}},
				Splits: []models.Split{{Participant: "Alice", Amount: 50}, {Participant: "Bob", Amount: 49.5}},
			},
			wantErr: "total split amount (99.5) must equal expense amount (100)",
		},
		{
			name: "split sum exactly at tolerance passes",
			req: Request{
				Amount: 100,
				Payers: []models.Payer{{Name: "Alice", AmountPaid: 100}},
				Splits: []models.Split{{Participant: "Alice", Amount: 50}, {Participant: "Bob", Amount: 49.99}},
			},
		},
		{
			name: "NaN payer amount names the payer",
			req: Request{
				Amount: 100,
				Payers: []models.Payer{{Name: "Bob", AmountPaid: math.NaN()}},
				Splits: []models.Split{{Participant: "Bob", Amount: 100}},
			},
			wantErr: "payer amountPaid for Bob must be a valid number",
		},
		{
			name: "infinite split amount names the participant",
			req: Request{
				Amount: 100,
				Payers: []models.Payer{{Name: "Alice", AmountPaid: 100}},
				Splits: []models.Split{{Participant: "Carol", Amount: math.Inf(1)}},
			},
			wantErr: "split amount for Carol must be a valid number",
		},
		{
			name: "splits required",
			req: Request{
				Amount: 100,
				Payers: []models.Payer{{Name: "Alice", AmountPaid: 100}},
			},
			wantErr: "splits required for advanced expenses",
		},
		{
			name: "percentage carried through unchecked",
			req: Request{
				Amount:    100,
				Payers:    []models.Payer{{Name: "Alice", AmountPaid: 100}},
				Splits:    []models.Split{{Participant: "Alice", Amount: 50, Percentage: &pct}, {Participant: "Bob", Amount: 50, Percentage: &pct}},
				SplitType: models.SplitPercentage,
			},
			validateFunc: func(t *testing.T, res *Resolved) {
				if res.SplitType != models.SplitPercentage {
					t.Errorf("SplitType = %q, want %q", res.SplitType, models.SplitPercentage)
				}
				alloc, ok := res.Allocation.(ExplicitAllocation)
				if !ok {
					t.Fatalf("Allocation = %T, want ExplicitAllocation", res.Allocation)
				}
				if alloc.Entries[0].Percentage == nil || *alloc.Entries[0].Percentage != 50 {
					t.Errorf("Percentage = %v, want 50", alloc.Entries[0].Percentage)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Reconcile(ShapeGroupAdvanced, &tt.req)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("Reconcile() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Reconcile() error = %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, res)
			}
		})
	}
}

func TestReconcilePersonal(t *testing.T) {
	res, err := Reconcile(ShapePersonal, &Request{Amount: 20, PaidBy: " Me ", Participants: []string{" Me "}})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if res.PaidBy != "Me" {
		t.Errorf("PaidBy = %q, want Me", res.PaidBy)
	}
	if res.Payers != nil {
		t.Errorf("Payers = %v, want nil for personal", res.Payers)
	}
	if res.SplitType != models.SplitEqual {
		t.Errorf("SplitType = %q, want %q", res.SplitType, models.SplitEqual)
	}

	// Payer and participants stay optional.
	res, err = Reconcile(ShapePersonal, &Request{Amount: 20})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if res.PaidBy != "" {
		t.Errorf("PaidBy = %q, want empty", res.PaidBy)
	}
}
