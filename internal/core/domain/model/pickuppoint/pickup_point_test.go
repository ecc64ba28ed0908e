package pickuppoint_test

import (
	"testing"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/pickuppoint"
	"repair/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(t *testing.T) pickuppoint.Profile {
	t.Helper()
	loc, err := kernel.NewGeoPoint(55.75, 37.61)
	require.NoError(t, err)
	return pickuppoint.Profile{
		Name:         "  Tverskaya 1 ",
		Address:      "Moscow, Tverskaya st. 1",
		Location:     loc,
		WorkingHours: "10:00-21:00",
		Accepts:      []kernel.Category{kernel.CategoryTech, kernel.CategoryShoes, kernel.CategoryTech},
	}
}

func TestNewPickupPoint(t *testing.T) {
	p, err := pickuppoint.NewPickupPoint(kernel.NewUUID(), kernel.NewUUID(), profile(t), time.Now())

	require.NoError(t, err)
	require.NoError(t, p.Validate())
	assert.True(t, p.IsActive())
	assert.Equal(t, "Tverskaya 1", p.Profile().Name)
	assert.Equal(t, []kernel.Category{kernel.CategoryTech, kernel.CategoryShoes}, p.Profile().Accepts)
	assert.True(t, p.Accepts(kernel.CategoryShoes))
	assert.False(t, p.Accepts(kernel.CategoryClothes))
}

func TestNewPickupPoint_Validation(t *testing.T) {
	_, err := pickuppoint.NewPickupPoint(kernel.NewUUID(), kernel.UUID{}, pickuppoint.Profile{
		Accepts: []kernel.Category{kernel.CategoryUnknown},
	}, time.Now())

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	for _, param := range []string{"owner_id", "name", "address", "geo point", "category"} {
		assert.Contains(t, err.Error(), param)
	}
}

func TestPickupPoint_EnsureCanServe(t *testing.T) {
	p, err := pickuppoint.NewPickupPoint(kernel.NewUUID(), kernel.NewUUID(), profile(t), time.Now())
	require.NoError(t, err)

	require.NoError(t, p.EnsureCanServe("receive_pvz_id", kernel.CategoryTech))
	require.ErrorIs(t, p.EnsureCanServe("receive_pvz_id", kernel.CategoryClothes), errs.ErrValueIsInvalid)

	p.SetActive(false, time.Now())
	err = p.EnsureCanServe("receive_pvz_id", kernel.CategoryTech)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "not active")
}

func TestPickupPoint_DistanceTo(t *testing.T) {
	p, err := pickuppoint.NewPickupPoint(kernel.NewUUID(), kernel.NewUUID(), profile(t), time.Now())
	require.NoError(t, err)
	near, _ := kernel.NewGeoPoint(55.76, 37.62)

	assert.Less(t, p.DistanceTo(near), 2.0)
}
