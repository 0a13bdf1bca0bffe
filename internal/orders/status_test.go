package orders

import (
	"testing"

	"github.com/safar/shophub/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusShipped, false},
		{models.OrderStatusConfirmed, models.OrderStatusShipped, true},
		{models.OrderStatusConfirmed, models.OrderStatusCancelled, true},
		{models.OrderStatusConfirmed, models.OrderStatusPending, false},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
		{"unknown", models.OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s): expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestCursorRoundTrip(t *testing.T) {
	_, hasCursor, err := DecodeCursor("")
	if err != nil || hasCursor {
		t.Errorf("Expected empty cursor to mean first page, got hasCursor=%v err=%v", hasCursor, err)
	}

	if _, _, err := DecodeCursor("%%%not-base64%%%"); err == nil {
		t.Errorf("Expected an error for a malformed cursor")
	}
}
