package checkout

import "errors"

var (
	// ErrEmptyCart aborts checkout before any gateway call is made.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrInvalidSignature means the confirmation triple failed the HMAC
	// check. Terminal: the caller must not retry it.
	ErrInvalidSignature = errors.New("payment signature verification failed")

	// ErrGatewayUnavailable wraps intent-creation failures. No local state
	// is mutated on this path, so the caller may retry.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrInvalidAmount rejects donations outside the configured bounds.
	ErrInvalidAmount = errors.New("donation amount out of range")
)
