package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *Order {
	order, err := NewOrder(uuid.New(), uuid.New(), uuid.New(), 2, decimal.NewFromFloat(20.00))
	require.NoError(t, err)
	return order
}

func TestOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OrderStatus
		isValid bool
	}{
		{OrderStatusPending, true},
		{OrderStatusProcessing, true},
		{OrderStatusShipped, true},
		{OrderStatusCompleted, true},
		{OrderStatusCanceled, true},
		{OrderStatus("invalid"), false},
		{OrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		// From pending
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusPending, OrderStatusCanceled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		// From processing
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCanceled, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		// From shipped
		{OrderStatusShipped, OrderStatusCompleted, true},
		{OrderStatusShipped, OrderStatusCanceled, false},
		{OrderStatusShipped, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusProcessing, false},
		// From completed (terminal)
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusProcessing, false},
		{OrderStatusCompleted, OrderStatusShipped, false},
		{OrderStatusCompleted, OrderStatusCanceled, false},
		// From canceled (terminal)
		{OrderStatusCanceled, OrderStatusPending, false},
		{OrderStatusCanceled, OrderStatusProcessing, false},
		{OrderStatusCanceled, OrderStatusShipped, false},
		{OrderStatusCanceled, OrderStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCanceled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusProcessing.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order at pending", func(t *testing.T) {
		order := createTestOrder(t)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.NotEqual(t, uuid.Nil, order.ID)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), uuid.New(), uuid.New(), 0, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative total", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), uuid.New(), uuid.New(), 1, decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("rejects empty buyer", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, uuid.New(), uuid.New(), 1, decimal.NewFromInt(10))
		assert.Error(t, err)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("allows valid transition", func(t *testing.T) {
		order := createTestOrder(t)
		err := order.TransitionTo(OrderStatusProcessing)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusProcessing, order.Status)
	})

	t.Run("rejects invalid transition", func(t *testing.T) {
		order := createTestOrder(t)
		err := order.TransitionTo(OrderStatusShipped)
		assert.Error(t, err)
		assert.Equal(t, OrderStatusPending, order.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		order := createTestOrder(t)
		err := order.TransitionTo(OrderStatus("returned"))
		assert.Error(t, err)
	})

	t.Run("rejects any transition from terminal states", func(t *testing.T) {
		for _, terminal := range []OrderStatus{OrderStatusCompleted, OrderStatusCanceled} {
			for _, target := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusCompleted, OrderStatusCanceled} {
				order := createTestOrder(t)
				order.Status = terminal
				err := order.TransitionTo(target)
				assert.Error(t, err, "expected %s -> %s to fail", terminal, target)
			}
		}
	})
}

func TestOrder_IsParty(t *testing.T) {
	order := createTestOrder(t)
	assert.True(t, order.IsParty(order.BuyerID))
	assert.True(t, order.IsParty(order.SellerID))
	assert.False(t, order.IsParty(uuid.New()))
}
