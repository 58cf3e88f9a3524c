package expense

import (
	"math"
	"testing"

	"github.com/devanshg/splitmate/internal/apperr"
	"github.com/devanshg/splitmate/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		wantShape Shape
		wantErr   string
	}{
		{
			name:      "personal when no group",
			req:       Request{Description: "Lunch", Amount: 12.5, Date: "2025-06-01"},
			wantShape: ShapePersonal,
		},
		{
			name:      "group equal when only paidBy and participants",
			req:       Request{GroupID: "g1", Description: "Dinner", Amount: 90, Date: "2025-06-01", PaidBy: "Alice", Participants: []string{"Alice", "Bob"}},
			wantShape: ShapeGroupEqual,
		},
		{
			name:      "group advanced when payers present",
			req:       Request{GroupID: "g1", Description: "Trip", Amount: 100, Date: "2025-06-01", Payers: []models.Payer{{Name: "Alice", AmountPaid: 100}}, HasPayers: true},
			wantShape: ShapeGroupAdvanced,
		},
		{
			name:      "group advanced when splits present but empty",
			req:       Request{GroupID: "g1", Description: "Trip", Amount: 100, Date: "2025-06-01", HasSplits: true},
			wantShape: ShapeGroupAdvanced,
		},
		{
			name:    "empty description",
			req:     Request{Description: "   ", Amount: 10, Date: "2025-06-01"},
			wantErr: "required fields missing",
		},
		{
			name:    "missing date",
			req:     Request{Description: "Lunch", Amount: 10},
			wantErr: "required fields missing",
		},
		{
			name:    "zero amount reads as missing",
			req:     Request{Description: "Lunch", Amount: 0, Date: "2025-06-01"},
			wantErr: "required fields missing",
		},
		{
			name:    "negative amount",
			req:     Request{Description: "Lunch", Amount: -5, Date: "2025-06-01"},
			wantErr: "amount must be positive",
		},
		{
			name:    "NaN amount",
			req:     Request{Description: "Lunch", Amount: math.NaN(), Date: "2025-06-01"},
			wantErr: "invalid amount type",
		},
		{
			name:    "infinite amount",
			req:     Request{Description: "Lunch", Amount: math.Inf(1), Date: "2025-06-01"},
			wantErr: "invalid amount type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := Classify(&tt.req)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Classify() error = nil, want %q", tt.wantErr)
				}
				if got := err.Error(); got != tt.wantErr {
					t.Errorf("Classify() error = %q, want %q", got, tt.wantErr)
				}
				if class, ok := apperr.ClassOf(err); !ok || class != apperr.Validation {
					t.Errorf("Classify() error class = %v, want validation", class)
				}
				return
			}
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if shape != tt.wantShape {
				t.Errorf("Classify() = %v, want %v", shape, tt.wantShape)
			}
		})
	}
}
