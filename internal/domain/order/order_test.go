package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ============================================
// Status Tests
// ============================================

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), "status %s", s)
	}
	assert.False(t, Status("paid").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatus_Severity(t *testing.T) {
	tests := []struct {
		status   Status
		severity string
	}{
		{StatusPending, "warning"},
		{StatusProcessing, "info"},
		{StatusShipped, "success"},
		{StatusDelivered, "success"},
		{StatusCancelled, "error"},
		{Status("unknown"), "default"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.severity, tt.status.Severity(), "status %s", tt.status)
	}
}

// ============================================
// Action Availability Tests
// ============================================

func TestOrder_CanCancel(t *testing.T) {
	tests := []struct {
		name      string
		status    Status
		isPaid    bool
		canCancel bool
	}{
		{"pending unpaid", StatusPending, false, true},
		{"processing unpaid", StatusProcessing, false, true},
		{"shipped unpaid", StatusShipped, false, true},
		{"delivered unpaid", StatusDelivered, false, false},
		{"cancelled", StatusCancelled, false, false},
		{"pending paid", StatusPending, true, false},
		{"delivered paid", StatusDelivered, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{Status: tt.status, IsPaid: tt.isPaid}
			assert.Equal(t, tt.canCancel, o.CanCancel())
		})
	}
}

func TestOrder_ShowPayNow(t *testing.T) {
	tests := []struct {
		name    string
		status  Status
		isPaid  bool
		visible bool
	}{
		{"pending unpaid", StatusPending, false, true},
		{"processing unpaid", StatusProcessing, false, true},
		{"pending paid", StatusPending, true, false},
		{"cancelled unpaid", StatusCancelled, false, false},
		{"delivered paid", StatusDelivered, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{Status: tt.status, IsPaid: tt.isPaid}
			assert.Equal(t, tt.visible, o.ShowPayNow())
		})
	}
}

func TestItem_LineTotal(t *testing.T) {
	item := Item{UnitPrice: decimal.RequireFromString("19.99"), Quantity: 3}

	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("59.97")))
}
