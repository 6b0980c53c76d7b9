package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// The two supported checkout providers. Clients select one with the
// numeric `method` field (1 = Paystack, 2 = Korapay).
const (
	MethodPaystack = 1
	MethodKorapay  = 2

	ProviderPaystack = "paystack"
	ProviderKorapay  = "korapay"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

var ErrInvalidMethod = errors.New("invalid payment method")

type Customer struct {
	Name  string
	Email string
}

type InitializeRequest struct {
	Amount    float64
	Currency  string
	Customer  Customer
	Reference string
	Narration string
}

// InitializeResult is the normalized outcome of starting a remote charge.
// AccessData is the provider-specific payload (authorization_url,
// access_code, checkout_url, ...) the client needs to finish paying.
type InitializeResult struct {
	Reference  string
	AccessData map[string]any
}

// VerifyResult is the provider's ground truth for one charge, normalized.
// Amount is always in major currency units regardless of provider.
type VerifyResult struct {
	Status string
	Amount float64
	PaidAt string
	Raw    map[string]any
}

// Gateway is implemented once per provider. The workflow only ever sees
// this contract; unit scaling, auth headers and payload shapes stay inside
// the implementations.
type Gateway interface {
	Provider() string
	InitializeCharge(ctx context.Context, req InitializeRequest) (*InitializeResult, error)
	VerifyCharge(ctx context.Context, reference string) (*VerifyResult, error)
}

// Error wraps any transport failure or provider-side rejection, keeping
// the provider's own message when one was returned.
type Error struct {
	Provider string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Registry resolves the adapter variant for a client-supplied method.
type Registry struct {
	byMethod map[int]Gateway
}

func NewRegistry(paystack, korapay Gateway) *Registry {
	return &Registry{byMethod: map[int]Gateway{
		MethodPaystack: paystack,
		MethodKorapay:  korapay,
	}}
}

func (r *Registry) ForMethod(method int) (Gateway, error) {
	g, ok := r.byMethod[method]
	if !ok {
		return nil, ErrInvalidMethod
	}
	return g, nil
}

// ProviderForMethod maps a method selector to its provider identifier
// without needing adapter instances (used for record lookups).
func ProviderForMethod(method int) (string, error) {
	switch method {
	case MethodPaystack:
		return ProviderPaystack, nil
	case MethodKorapay:
		return ProviderKorapay, nil
	default:
		return "", ErrInvalidMethod
	}
}

// NewKorapayReference builds the locally generated reference Korapay
// charges are initialized with.
func NewKorapayReference() string {
	return fmt.Sprintf("KORA-%d-%sPAY", time.Now().UnixMilli(), uuid.NewString()[:8])
}
