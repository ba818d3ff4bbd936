package errs_test

import (
	"errors"
	"testing"

	"pharmadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("deliveryId", "123")

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("deliveryId", "123", cause)

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: deliveryId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("trackingNumber")

		assert.Equal(t, "trackingNumber", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: trackingNumber", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("trackingNumber", cause)

		assert.Equal(t, "trackingNumber", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: trackingNumber (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 91.0, -90.0, 90.0)

		assert.Equal(t, "latitude", err.ParamName)
		assert.Equal(t, 91.0, err.Value)
		assert.Equal(t, -90.0, err.Min)
		assert.Equal(t, 90.0, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 91 is latitude, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("rating", -5, 0, 5, cause)

		assert.Equal(t, "rating", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is rating, min value is 0, max value is 5 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("street")

		assert.Equal(t, "street", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: street", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("street", cause)

		assert.Equal(t, "street", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: street (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestPartnerNotEligibleError(t *testing.T) {
	t.Run("carries partner id and reason", func(t *testing.T) {
		cause := errors.New("partner is deactivated")
		err := errs.NewPartnerNotEligibleError("partner-42", cause)

		assert.Equal(t, "partner-42", err.PartnerID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "partner is not eligible: partner-42 (cause: partner is deactivated)", err.Error())
		assert.Equal(t, errs.ErrPartnerNotEligible, err.Unwrap())
	})
}

func TestInvalidTransitionError(t *testing.T) {
	t.Run("formats from and to states", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("delivered", "pending")

		assert.Equal(t, "delivered", err.From)
		assert.Equal(t, "pending", err.To)
		assert.Equal(t, "invalid status transition: delivered -> pending", err.Error())
		assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
	})
}

func TestIntegrityCheckFailedError(t *testing.T) {
	t.Run("NewIntegrityCheckFailedError", func(t *testing.T) {
		err := errs.NewIntegrityCheckFailedError("proofOfDelivery")

		assert.Equal(t, "proofOfDelivery", err.ParamName)
		assert.Equal(t, "integrity check failed: proofOfDelivery", err.Error())
		assert.Equal(t, errs.ErrIntegrityCheckFailed, err.Unwrap())
	})

	t.Run("NewIntegrityCheckFailedErrorWithCause", func(t *testing.T) {
		cause := errors.New("checksum mismatch")
		err := errs.NewIntegrityCheckFailedErrorWithCause("proofOfDelivery", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "integrity check failed: proofOfDelivery (cause: checksum mismatch)", err.Error())
	})
}

func TestTransientProviderError(t *testing.T) {
	t.Run("records operation and attempts", func(t *testing.T) {
		cause := errors.New("context deadline exceeded")
		err := errs.NewTransientProviderError("dispatch notify", 4, cause)

		assert.Equal(t, "dispatch notify", err.Op)
		assert.Equal(t, 4, err.Attempts)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"transient provider error: dispatch notify after 4 attempts (cause: context deadline exceeded)",
			err.Error())
		assert.Equal(t, errs.ErrTransientProvider, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "partner is not eligible", errs.ErrPartnerNotEligible.Error())
		assert.Equal(t, "invalid status transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "integrity check failed", errs.ErrIntegrityCheckFailed.Error())
		assert.Equal(t, "transient provider error", errs.ErrTransientProvider.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("deliveryId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("weight"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("lat", 91.0, -90.0, 90.0), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("street"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewPartnerNotEligibleError("p1", nil), errs.ErrPartnerNotEligible)
		require.ErrorIs(t, errs.NewInvalidTransitionError("pending", "delivered"), errs.ErrInvalidTransition)
		require.ErrorIs(t, errs.NewIntegrityCheckFailedError("proof"), errs.ErrIntegrityCheckFailed)
		require.ErrorIs(t, errs.NewTransientProviderError("notify", 3, errors.New("x")), errs.ErrTransientProvider)
	})
}
