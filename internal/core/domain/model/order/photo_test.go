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

func TestNewPhoto(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		p, err := order.NewPhoto(kernel.NewUUID(), orderID, order.PhotoStageReceived,
			"https://cdn.example.com/p/1.jpg", time.Now())

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, order.PhotoStageReceived, p.Stage())
		assert.True(t, p.OrderID().IsEqual(orderID))
	})

	t.Run("relative url", func(t *testing.T) {
		_, err := order.NewPhoto(kernel.NewUUID(), orderID, order.PhotoStageInitial, "/uploads/1.jpg", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing url and stage", func(t *testing.T) {
		_, err := order.NewPhoto(kernel.NewUUID(), orderID, order.PhotoStageUnknown, "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParsePhotoStage(t *testing.T) {
	for _, s := range []order.PhotoStage{order.PhotoStageInitial, order.PhotoStageReceived, order.PhotoStageDelivered} {
		parsed, err := order.ParsePhotoStage(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := order.ParsePhotoStage("after")
	require.Error(t, err)
}
