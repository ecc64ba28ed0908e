package order_test

import (
	"testing"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func validDetails() order.Details {
	limit := 5000.0
	return order.Details{
		Category:      kernel.CategoryTech,
		Subcategory:   "phone",
		Description:   "cracked screen",
		PaymentMethod: order.PaymentOnline,
		PriceLimit:    &limit,
	}
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-20250301-00000001", kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(), validDetails(), now)
	require.NoError(t, err)
	return o
}

func payload(t *testing.T, fields map[string]any) order.Payload {
	t.Helper()
	p, err := order.NewPayload(fields)
	require.NoError(t, err)
	return p
}

// advance walks o along the happy path until it reaches target.
func advance(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	for o.Status() != target {
		next := o.Status().Next()[0]
		p := order.EmptyPayload()
		switch next { //nolint:exhaustive // only the edges that need data
		case order.StatusDiagnosing:
			if o.ServiceID() == nil {
				require.NoError(t, o.ClaimService(kernel.NewUUID(), now))
			}
		case order.StatusPriceProposed:
			p = payload(t, map[string]any{"proposed_price": 1200.0})
		}
		require.NoError(t, o.Transition(next, p, now))
	}
}

func TestNewOrder(t *testing.T) {
	o := newOrder(t)

	require.NoError(t, o.Validate())
	assert.Equal(t, order.StatusCreated, o.Status())
	assert.Nil(t, o.ServiceID())
	assert.Nil(t, o.ReceivedAt())
	assert.Equal(t, now, o.CreatedAt())
	assert.Equal(t, now, o.UpdatedAt())
	assert.Equal(t, "cracked screen", o.Details().Description)
}

func TestNewOrder_Validation(t *testing.T) {
	_, err := order.NewOrder(kernel.NewUUID(), "bad", kernel.UUID{}, kernel.UUID{}, kernel.NewUUID(),
		order.Details{Description: "  "}, now)

	require.Error(t, err)
	for _, param := range []string{"order_number", "client_id", "receive_pvz_id", "category", "payment_method", "description"} {
		assert.Contains(t, err.Error(), param)
	}
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestOrder_Transition_SetsTimestamps(t *testing.T) {
	o := newOrder(t)
	later := now.Add(time.Hour)

	require.NoError(t, o.Transition(order.StatusReceived, order.EmptyPayload(), later))

	assert.Equal(t, order.StatusReceived, o.Status())
	require.NotNil(t, o.ReceivedAt())
	assert.Equal(t, later, *o.ReceivedAt())
	assert.Equal(t, later, o.UpdatedAt())

	advance(t, o, order.StatusReadyForPickup)
	assert.Nil(t, o.DeliveredAt())
	require.NoError(t, o.Transition(order.StatusDelivered, order.EmptyPayload(), later))
	require.NotNil(t, o.DeliveredAt())
}

func TestOrder_Transition_InvalidEdgeLeavesOrderUntouched(t *testing.T) {
	o := newOrder(t)

	err := o.Transition(order.StatusConfirmed, order.EmptyPayload(), now.Add(time.Hour))

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, "invalid transition: from created to confirmed", err.Error())
	assert.Equal(t, order.StatusCreated, o.Status())
	assert.Equal(t, now, o.UpdatedAt())
}

func TestOrder_Transition_TerminalStates(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		o := newOrder(t)
		advance(t, o, order.StatusPriceProposed)
		require.NoError(t, o.Transition(order.StatusRejected, order.EmptyPayload(), now))

		err := o.Transition(order.StatusInWork, order.EmptyPayload(), now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusRejected, o.Status())
	})

	t.Run("delivered", func(t *testing.T) {
		o := newOrder(t)
		advance(t, o, order.StatusDelivered)

		err := o.Transition(order.StatusDelivered, order.EmptyPayload(), now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_Transition_PriceProposal(t *testing.T) {
	o := newOrder(t)
	advance(t, o, order.StatusDiagnosing)

	err := o.Transition(order.StatusPriceProposed, order.EmptyPayload(), now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, order.StatusDiagnosing, o.Status())

	err = o.Transition(order.StatusPriceProposed,
		payload(t, map[string]any{"proposed_price": 2500.0, "final_price": 1.0}), now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Nil(t, o.ProposedPrice())

	err = o.Transition(order.StatusPriceProposed,
		payload(t, map[string]any{"proposed_price": 2500.0, "price_justification": "display module"}), now)
	require.NoError(t, err)
	require.NotNil(t, o.ProposedPrice())
	assert.InDelta(t, 2500.0, *o.ProposedPrice(), 1e-9)
	assert.Equal(t, "display module", *o.PriceJustification())
}

func TestOrder_Transition_ConfirmDefaultsFinalPrice(t *testing.T) {
	t.Run("defaults to proposed", func(t *testing.T) {
		o := newOrder(t)
		advance(t, o, order.StatusPriceProposed)

		require.NoError(t, o.Transition(order.StatusConfirmed, order.EmptyPayload(), now))

		require.NotNil(t, o.FinalPrice())
		assert.InDelta(t, 1200.0, *o.FinalPrice(), 1e-9)
	})

	t.Run("explicit final price", func(t *testing.T) {
		o := newOrder(t)
		advance(t, o, order.StatusPriceProposed)

		require.NoError(t, o.Transition(order.StatusConfirmed, payload(t, map[string]any{"final_price": 1100.0}), now))

		assert.InDelta(t, 1100.0, *o.FinalPrice(), 1e-9)
	})
}

func TestOrder_Transition_DiagnosingNeedsService(t *testing.T) {
	o := newOrder(t)
	advance(t, o, order.StatusSentToService)

	err := o.Transition(order.StatusDiagnosing, order.EmptyPayload(), now)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, order.StatusSentToService, o.Status())
}

func TestOrder_ClaimService(t *testing.T) {
	serviceID := kernel.NewUUID()

	t.Run("only while sent to service", func(t *testing.T) {
		o := newOrder(t)

		err := o.ClaimService(serviceID, now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Nil(t, o.ServiceID())
	})

	t.Run("once", func(t *testing.T) {
		o := newOrder(t)
		advance(t, o, order.StatusSentToService)

		require.NoError(t, o.ClaimService(serviceID, now))
		assert.True(t, o.IsServicedBy(serviceID))

		err := o.ClaimService(kernel.NewUUID(), now)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, o.IsServicedBy(serviceID))
	})
}

func TestOrder_OverrideService(t *testing.T) {
	o := newOrder(t)
	advance(t, o, order.StatusInWork)
	replacement := kernel.NewUUID()

	require.NoError(t, o.OverrideService(replacement, now))
	assert.True(t, o.IsServicedBy(replacement))

	advance(t, o, order.StatusDelivered)
	require.ErrorIs(t, o.OverrideService(kernel.NewUUID(), now), errs.ErrConflict)
}

func TestRestoreOrder(t *testing.T) {
	serviceID := kernel.NewUUID()
	received := now.Add(time.Hour)
	snapshot := order.Snapshot{
		ID:            kernel.NewUUID(),
		Number:        "ORD-20250301-0000000A",
		ClientID:      kernel.NewUUID(),
		ServiceID:     &serviceID,
		ReceivePVZID:  kernel.NewUUID(),
		DeliveryPVZID: kernel.NewUUID(),
		Details:       validDetails(),
		Status:        order.StatusDiagnosing,
		CreatedAt:     now,
		UpdatedAt:     received,
		ReceivedAt:    &received,
		Version:       4,
	}

	o, err := order.RestoreOrder(snapshot)

	require.NoError(t, err)
	assert.Equal(t, order.StatusDiagnosing, o.Status())
	assert.Equal(t, 4, o.Version())
	assert.True(t, o.IsServicedBy(serviceID))

	snapshot.Status = order.StatusUnknown
	_, err = order.RestoreOrder(snapshot)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestOrder_ZeroValue(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}
