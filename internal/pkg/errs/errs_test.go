package errs_test

import (
	"errors"
	"testing"

	"repair/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause prints only the id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "ORD-20240101-0A1B2C3D")

		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: ORD-20240101-0A1B2C3D", err.Error())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("with cause names the parameter", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("pickup point", "7c1f", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: pickup point, ID is: 7c1f (cause: record not found)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("ids that are not strings use the %s verb", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("review", 42)
		assert.Equal(t, "object not found: %!s(int=42)", err.Error())
	})
}

func TestValueErrors(t *testing.T) {
	cause := errors.New("must be 4 digits")

	cases := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("code"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: code",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("code", cause),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: code (cause: must be 4 digits)",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("phone"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: phone",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("phone", cause),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: phone (cause: must be 4 digits)",
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("rating", 6, 1, 5),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 6 is rating, min value is 1, max value is 5",
		},
		{
			name:     "out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("radius_km", -1.5, 0, 1000, cause),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: -1.5 is radius_km, min value is 0, max value is 1000 (cause: must be 4 digits)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.message, tc.err.Error())
			assert.ErrorIs(t, tc.err, tc.sentinel)
			assert.Equal(t, errs.KindValidation, errs.KindOf(tc.err))
		})
	}
}

func TestValueIsOutOfRangeError_StripsNewlines(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("subcategory", "phone\r\nscreen", 1, 64)

	assert.Contains(t, err.Error(), "phone screen")
	assert.NotContains(t, err.Error(), "\n")
	assert.NotContains(t, err.Error(), "\r")
}

func TestWrappedValueErrorsKeepTheirSentinel(t *testing.T) {
	err := errors.Join(
		errs.NewValueIsRequiredError("receive_pvz_id"),
		errs.NewValueIsInvalidError("delivery_pvz_id"),
	)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
}
