package order

import (
	"errors"
	"time"

	"github.com/sneakhub/sneaker-shop-backend/internal/address"
	"github.com/sneakhub/sneaker-shop-backend/internal/cart"
	"github.com/sneakhub/sneaker-shop-backend/internal/user"
)

var (
	ErrForbidden         = errors.New("order does not belong to caller")
	ErrInvalidTransition = errors.New("illegal order status transition")
)

// ServiceInterface is consumed by the payment workflow.
type ServiceInterface interface {
	GetByID(orderID int) (Order, error)
	ApplyPaymentResult(ord Order) (Order, error)
}

type Service struct {
	repo      Repository
	users     user.ServiceInterface
	addresses address.ServiceInterface
	carts     cart.ServiceInterface
}

func NewService(repo Repository, users user.ServiceInterface, addresses address.ServiceInterface, carts cart.ServiceInterface) *Service {
	return &Service{repo: repo, users: users, addresses: addresses, carts: carts}
}

// Initialize creates one order in `initialized`, snapshotting the buyer,
// the resolved address and the cart as they stand right now. The live
// cart is left untouched; it is only destroyed when a payment confirms.
func (s *Service) Initialize(userID, addressID, deliveryMode int) (Order, error) {
	buyer, err := s.users.GetByID(userID)
	if err != nil {
		return Order{}, err
	}

	addr, err := s.addresses.GetByID(userID, addressID)
	if err != nil {
		return Order{}, err
	}

	// an empty cart still yields a valid zero-item snapshot; payment
	// initialization will reject it later unless the cart totals match
	crt, err := s.carts.Get(userID)
	if err != nil {
		return Order{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	ord := Order{
		OrderNumber: NewOrderNumber(),
		UserID:      userID,
		UserData: UserData{
			FirstName: buyer.FirstName,
			LastName:  buyer.LastName,
			Email:     buyer.Email,
			Phone:     buyer.Phone,
		},
		ShippingData: ShippingData{
			Address:        addr.Address,
			City:           addr.City,
			State:          addr.State,
			PostalCode:     addr.PostalCode,
			DeliveryStatus: DeliveryPending,
		},
		CartData: CartData{
			Items:       crt.Items,
			TotalAmount: crt.Total,
		},
		DeliveryMode: deliveryMode,
		Status:       StatusInitialized,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	ord.AppendActivity(StatusInitialized, "order created, awaiting payment")

	return s.repo.Create(ord)
}

func (s *Service) GetByID(orderID int) (Order, error) {
	if orderID <= 0 {
		return Order{}, ErrNotFound
	}
	return s.repo.GetByID(orderID)
}

// GetForUser is the ownership-checked read used by the HTTP layer.
func (s *Service) GetForUser(userID, orderID int) (Order, error) {
	ord, err := s.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrForbidden
	}
	return ord, nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(userID)
}

// ApplyPaymentResult persists an order mutated by the payment workflow,
// refusing transitions the state machine does not allow.
func (s *Service) ApplyPaymentResult(ord Order) (Order, error) {
	current, err := s.repo.GetByID(ord.ID)
	if err != nil {
		return Order{}, err
	}
	if current.Status != ord.Status && !CanTransition(current.Status, ord.Status) {
		return Order{}, ErrInvalidTransition
	}
	ord.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(ord)
}

// UpdateDeliveryStatus advances the independent delivery sub-state.
func (s *Service) UpdateDeliveryStatus(orderID int, next DeliveryStatus) (Order, error) {
	ord, err := s.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if !CanTransitionDelivery(ord.ShippingData.DeliveryStatus, next) {
		return Order{}, ErrInvalidTransition
	}
	ord.ShippingData.DeliveryStatus = next
	ord.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(ord)
}
