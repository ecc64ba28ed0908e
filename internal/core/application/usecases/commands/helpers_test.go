package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/core/domain/model/pickuppoint"

	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func ptr[T any](v T) *T { return &v }

func phone(t *testing.T, raw string) kernel.PhoneNumber {
	t.Helper()
	p, err := kernel.NewPhoneNumber(raw)
	require.NoError(t, err)
	return p
}

func newActor(t *testing.T, role actor.Role) *actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), phone(t, "+7 912 345-67-89"), role, time.Now())
	require.NoError(t, err)
	return a
}

func principalOf(t *testing.T, a *actor.Actor, pvzID, serviceID *kernel.UUID) actor.Principal {
	t.Helper()
	p, err := actor.NewPrincipal(a, pvzID, serviceID)
	require.NoError(t, err)
	return p
}

func newPrincipal(t *testing.T, role actor.Role, pvzID, serviceID *kernel.UUID) actor.Principal {
	t.Helper()
	return principalOf(t, newActor(t, role), pvzID, serviceID)
}

func techDetails() order.Details {
	return order.Details{
		Category:      kernel.CategoryTech,
		Subcategory:   "phone",
		Description:   "cracked screen",
		PaymentMethod: order.PaymentOnline,
	}
}

// orderIn restores an order in the given status with the given parties.
func orderIn(t *testing.T, status order.Status, clientID, receiveID, deliveryID kernel.UUID, serviceID *kernel.UUID) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:            kernel.NewUUID(),
		Number:        "ORD-20250301-0000ABCD",
		ClientID:      clientID,
		ServiceID:     serviceID,
		ReceivePVZID:  receiveID,
		DeliveryPVZID: deliveryID,
		Details:       techDetails(),
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       3,
	})
	require.NoError(t, err)
	return o
}

func newPickupPoint(t *testing.T, ownerID kernel.UUID, accepts ...kernel.Category) *pickuppoint.PickupPoint {
	t.Helper()
	location, err := kernel.NewGeoPoint(55.7558, 37.6173)
	require.NoError(t, err)
	if len(accepts) == 0 {
		accepts = []kernel.Category{kernel.CategoryTech, kernel.CategoryClothes, kernel.CategoryShoes}
	}
	p, err := pickuppoint.NewPickupPoint(kernel.NewUUID(), ownerID, pickuppoint.Profile{
		Name:         "Tverskaya",
		Address:      "Tverskaya st. 1",
		Location:     location,
		WorkingHours: "10:00-20:00",
		Accepts:      accepts,
	}, time.Now())
	require.NoError(t, err)
	return p
}
