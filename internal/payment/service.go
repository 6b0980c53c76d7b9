package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sneakhub/sneaker-shop-backend/internal/cart"
	"github.com/sneakhub/sneaker-shop-backend/internal/email"
	"github.com/sneakhub/sneaker-shop-backend/internal/gateway"
	"github.com/sneakhub/sneaker-shop-backend/internal/order"
	"github.com/sneakhub/sneaker-shop-backend/internal/user"
)

var ErrVerificationFailed = errors.New("payment verification failed")

// AmountMismatchError reports the total the live cart actually holds so
// the client can correct the request.
type AmountMismatchError struct {
	Expected float64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("payment amount does not match cart total (%.2f)", e.Expected)
}

// Service is the order/payment reconciliation workflow: it is the only
// place that moves an order between initialized, payment-confirmed and
// payment-failed, and the only place a cart is destroyed.
type Service struct {
	repo     Repository
	orders   order.ServiceInterface
	carts    cart.ServiceInterface
	users    user.ServiceInterface
	gateways *gateway.Registry
	sender   email.Sender
	timeout  time.Duration
	logf     func(format string, args ...any)
}

func NewService(repo Repository, orders order.ServiceInterface, carts cart.ServiceInterface, users user.ServiceInterface, gateways *gateway.Registry, sender email.Sender, timeout time.Duration) *Service {
	return &Service{
		repo:     repo,
		orders:   orders,
		carts:    carts,
		users:    users,
		gateways: gateways,
		sender:   sender,
		timeout:  timeout,
		logf:     func(format string, args ...any) { fmt.Printf(format+"\n", args...) },
	}
}

type InitializeResult struct {
	AccessData map[string]any `json:"accessData"`
	PaymentID  int            `json:"paymentId"`
	Method     int            `json:"method"`
}

// InitializePayment starts a remote charge for an existing order. The
// claimed amount must equal the caller's current live cart total; the
// order's frozen snapshot is deliberately not consulted here.
func (s *Service) InitializePayment(ctx context.Context, userID, orderID int, amount float64, method int, emailAddr string) (*InitializeResult, error) {
	gw, err := s.gateways.ForMethod(method)
	if err != nil {
		return nil, err
	}

	ord, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord.UserID != userID {
		return nil, order.ErrForbidden
	}

	crt, err := s.carts.Get(userID)
	if err != nil {
		return nil, err
	}
	if amount != crt.Total {
		return nil, &AmountMismatchError{Expected: crt.Total}
	}

	buyer, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if emailAddr == "" {
		emailAddr = buyer.Email
	}

	var reference string
	if gw.Provider() == gateway.ProviderKorapay {
		reference = gateway.NewKorapayReference()
	}

	gwCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, err := gw.InitializeCharge(gwCtx, gateway.InitializeRequest{
		Amount:    amount,
		Currency:  "NGN",
		Customer:  gateway.Customer{Name: buyer.FirstName + " " + buyer.LastName, Email: emailAddr},
		Reference: reference,
		Narration: fmt.Sprintf("Payment for order #%s", ord.OrderNumber),
	})
	if err != nil {
		// no payment record on gateway failure: the order stays
		// initialized with no partial artifact
		return nil, err
	}

	created, err := s.repo.Create(Payment{
		OrderID:   orderID,
		UserName:  buyer.FirstName + " " + buyer.LastName,
		UserEmail: emailAddr,
		Provider:  gw.Provider(),
		Reference: result.Reference,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	return &InitializeResult{AccessData: result.AccessData, PaymentID: created.ID, Method: method}, nil
}

type VerifyOutcome struct {
	Payment Payment                `json:"payment"`
	Order   order.Order            `json:"order"`
	Result  *gateway.VerifyResult  `json:"result,omitempty"`
}

// VerifyPayment reconciles local state against the provider's ground
// truth. Success settles the payment record, confirms the order, notifies
// the buyer and destroys the cart; failure settles both records as failed
// and keeps the cart so the buyer can retry. Re-verifying an
// already-settled success is a read-only no-op.
func (s *Service) VerifyPayment(ctx context.Context, reference string, method int) (*VerifyOutcome, error) {
	provider, err := gateway.ProviderForMethod(method)
	if err != nil {
		return nil, err
	}
	gw, _ := s.gateways.ForMethod(method)

	gwCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, err := gw.VerifyCharge(gwCtx, reference)
	if err != nil {
		return nil, err
	}

	pay, err := s.repo.GetByProviderReference(provider, reference)
	if err != nil {
		// the provider confirmed a charge this system never initiated
		return nil, err
	}

	ord, err := s.orders.GetByID(pay.OrderID)
	if err != nil {
		return nil, err
	}

	// duplicate confirmation (client retry or webhook replay): treat as
	// already applied, re-run no side effects
	if pay.Status == StatusSuccess {
		return &VerifyOutcome{Payment: pay, Order: ord, Result: result}, nil
	}

	if result.Status == gateway.StatusSuccess {
		return s.settleSuccess(pay, ord, result)
	}
	return s.settleFailure(pay, ord)
}

func (s *Service) settleSuccess(pay Payment, ord order.Order, result *gateway.VerifyResult) (*VerifyOutcome, error) {
	won, err := s.repo.MarkStatusIfPending(pay.Provider, pay.Reference, StatusSuccess)
	if err != nil {
		return nil, err
	}
	pay.Status = StatusSuccess
	if !won {
		// a concurrent verification settled it first; its side effects
		// already ran
		ord, err = s.orders.GetByID(pay.OrderID)
		if err != nil {
			return nil, err
		}
		return &VerifyOutcome{Payment: pay, Order: ord, Result: result}, nil
	}

	paidAt := result.PaidAt
	if paidAt == "" {
		paidAt = time.Now().UTC().Format(time.RFC3339)
	}
	ord.PaymentData = &order.PaymentData{
		Reference:  pay.Reference,
		Provider:   pay.Provider,
		Status:     StatusSuccess,
		AmountPaid: pay.Amount,
		PaidAt:     paidAt,
	}
	ord.Status = order.StatusPaymentConfirmed
	ord.AppendActivity(order.StatusPaymentConfirmed, "Payment has been successfully verified.")

	updated, err := s.orders.ApplyPaymentResult(ord)
	if err != nil {
		return nil, err
	}

	// notification is fire-and-forget relative to the state transition
	if err := s.sender.Send(
		updated.UserData.Email,
		"Order Confirmation",
		email.OrderConfirmationHTML(updated.OrderNumber, updated.UserData.FirstName, updated.CartData.Items, updated.CartData.TotalAmount),
	); err != nil {
		s.logf("warning: confirmation email for order %s failed: %v", updated.OrderNumber, err)
	}

	// the cart-to-order handoff point: the only place a cart is destroyed
	if err := s.carts.Clear(updated.UserID); err != nil {
		s.logf("warning: could not clear cart for user %d: %v", updated.UserID, err)
	}

	return &VerifyOutcome{Payment: pay, Order: updated, Result: result}, nil
}

func (s *Service) settleFailure(pay Payment, ord order.Order) (*VerifyOutcome, error) {
	if _, err := s.repo.MarkStatusIfPending(pay.Provider, pay.Reference, StatusFailed); err != nil {
		return nil, err
	}
	pay.Status = StatusFailed

	ord.Status = order.StatusPaymentFailed
	ord.AppendActivity(order.StatusPaymentFailed, "Payment verification failed. Please retry.")
	if _, err := s.orders.ApplyPaymentResult(ord); err != nil {
		return nil, err
	}

	// cart intentionally kept: the buyer may retry with a new attempt
	return nil, ErrVerificationFailed
}
