package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"numeric string", " 99.90 ", 99.9},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
		{"json number", json.Number("42"), 42},
		{"NaN", math.NaN(), 0},
		{"Inf", math.Inf(1), 0},
		{"negative kept", -15.0, -15},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestIncomeFromDoc(t *testing.T) {
	in := IncomeFromDoc(map[string]any{
		"id":      "3",
		"user_id": float64(1),
		"source":  "  Job ",
		"amount":  "2500",
		"date":    "2024-01-15",
	})
	assert.Equal(t, uint(3), in.ID)
	assert.Equal(t, uint(1), in.UserID)
	assert.Equal(t, "Job", in.Source)
	assert.Equal(t, 2500.0, in.Amount)
	assert.Equal(t, "", in.InvoiceURL)
}

func TestExpenseFromDoc_MissingFields(t *testing.T) {
	e := ExpenseFromDoc(map[string]any{"amount": "n/a"})
	assert.Equal(t, 0.0, e.Amount)
	assert.Equal(t, "", e.Category)
	assert.Equal(t, "", e.Date)
}

func TestGoalFromDoc_DefaultCategory(t *testing.T) {
	g := GoalFromDoc(map[string]any{"goal_name": "Laptop", "target_amount": 120000, "current_amount": "30000"})
	assert.Equal(t, DefaultGoalCategory, g.Category)
	assert.Equal(t, 120000.0, g.TargetAmount)
	assert.Equal(t, 30000.0, g.CurrentAmount)
}

func TestReminderFromDoc(t *testing.T) {
	r := ReminderFromDoc(map[string]any{"title": "Rent", "due_date": "2024-02-01", "status": "bogus", "recurring": "weekly"})
	assert.Equal(t, ReminderUpcoming, r.Status)
	assert.Equal(t, RecurNone, r.Recurring)
	assert.Nil(t, r.Amount)

	withAmount := ReminderFromDoc(map[string]any{"title": "Card", "amount": "4500", "status": ReminderPaid})
	if assert.NotNil(t, withAmount.Amount) {
		assert.Equal(t, 4500.0, *withAmount.Amount)
	}
	assert.Equal(t, ReminderPaid, withAmount.Status)
}
