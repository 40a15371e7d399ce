package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsUnwrap(t *testing.T) {
	base := errors.New("connection refused")
	err := fmt.Errorf("create order: %w", &TransportError{Op: "POST /orders", Err: base})

	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.ErrorIs(t, err, base)
	require.Equal(t, "POST /orders: connection refused", te.Error())
}

func TestContractErrorMessage(t *testing.T) {
	err := &ContractError{Op: "POST /orders", Field: "id"}
	require.Equal(t, "POST /orders: response has no id", err.Error())

	err = &ContractError{Op: "POST /orders", Field: "id", Message: "Order creation failed."}
	require.Equal(t, "Order creation failed.", err.Error())
}

func TestValidation(t *testing.T) {
	err := Validation("phone", "Phone number is required.")

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "phone", fe.Field)
	require.Equal(t, "Phone number is required.", err.Error())
}
