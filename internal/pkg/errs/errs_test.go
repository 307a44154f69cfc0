package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	orderID := "c56a4180-65aa-42ec-a945-5fd21dec0538"

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", orderID)

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, orderID, err.ID)
		assert.Nil(t, err.Cause)
		assert.Equal(t, fmt.Sprintf("object not found: %s", orderID), err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("order", orderID, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			fmt.Sprintf("object not found: param is: order, ID is: %s (cause: connection reset)", orderID),
			err.Error())
	})

	t.Run("non-string id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shipment", 3)
		assert.Equal(t, "object not found: %!s(int=3)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "quantity", err.ParamName)
		assert.Nil(t, err.Cause)
		assert.Equal(t, "value is invalid: quantity", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("must be greater than 0")
		err := errs.NewValueIsInvalidErrorWithCause("quantity", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: quantity (cause: must be greater than 0)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, 999)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 999, err.Max)
		assert.Equal(t, "value is invalid: 0 is quantity, min value is 1, max value is 999", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("rejected by catalog")
		err := errs.NewValueIsOutOfRangeErrorWithCause("unit price", -100, 0, 100000, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -100 is unit price, min value is 0, max value is 100000 (cause: rejected by catalog)",
			err.Error())
	})

	t.Run("newlines in values are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("discount code", "SUMMER\nSALE", 0, 10)

		assert.Contains(t, err.Error(), "SUMMER SALE")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("shipping address")

		assert.Equal(t, "shipping address", err.ParamName)
		assert.Nil(t, err.Cause)
		assert.Equal(t, "value is required: shipping address", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("street is empty")
		err := errs.NewValueIsRequiredErrorWithCause("shipping address", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: shipping address (cause: street is empty)", err.Error())
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("optimistic lock conflict")
		err := errs.NewVersionIsInvalidError("order version", cause)

		assert.Equal(t, "order version", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "version is invalid: order version (cause: optimistic lock conflict)", err.Error())
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidErrorWithCause("order version")

		assert.Nil(t, err.Cause)
		assert.Equal(t, "version is invalid: order version", err.Error())
	})
}

func TestUnwrapToSentinels(t *testing.T) {
	// every constructed error classifies against its sentinel through
	// errors.Is, with or without a cause attached
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"object not found", errs.NewObjectNotFoundError("order", "o-1"), errs.ErrObjectNotFound},
		{"object not found with cause", errs.NewObjectNotFoundErrorWithCause("order", "o-1", cause), errs.ErrObjectNotFound},
		{"value is invalid", errs.NewValueIsInvalidError("quantity"), errs.ErrValueIsInvalid},
		{"value is out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, 999), errs.ErrValueIsOutOfRange},
		{"value is required", errs.NewValueIsRequiredError("customer"), errs.ErrValueIsRequired},
		{"value is required with cause", errs.NewValueIsRequiredErrorWithCause("customer", cause), errs.ErrValueIsRequired},
		{"version is invalid", errs.NewVersionIsInvalidError("order version", cause), errs.ErrVersionIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestSentinelMessages(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
}
