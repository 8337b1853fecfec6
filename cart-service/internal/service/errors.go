package service

import (
	"errors"
	"fmt"

	"github.com/fjod/go_cart/pricing/cart-service/internal/domain"
)

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrBelowMinimumOrder = errors.New("order value is below the checkout minimum")
	ErrUnknownOp         = errors.New("unknown scenario operation")
)

// StepError ties a failure to the scenario step that caused it.
type StepError struct {
	Index int
	Op    domain.Op
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
