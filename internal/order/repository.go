package order

import (
	"errors"
	"sync"

	"github.com/sneakhub/sneaker-shop-backend/internal/cart"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	// Update persists status, activity log, payment and shipping data.
	Update(ord Order) (Order, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[int]Order
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: map[int]Order{}, nextID: 1}
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.ID = r.nextID
	r.nextID++
	r.orders[ord.ID] = cloneOrder(ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ord, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return cloneOrder(ord), nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for id := 1; id < r.nextID; id++ {
		if ord, ok := r.orders[id]; ok && ord.UserID == userID {
			out = append(out, cloneOrder(ord))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Update(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[ord.ID]; !ok {
		return Order{}, ErrNotFound
	}
	r.orders[ord.ID] = cloneOrder(ord)
	return ord, nil
}

// cloneOrder keeps stored snapshots isolated from caller mutation.
func cloneOrder(ord Order) Order {
	activities := make([]Activity, len(ord.Activities))
	copy(activities, ord.Activities)
	ord.Activities = activities

	items := make([]cart.Item, len(ord.CartData.Items))
	copy(items, ord.CartData.Items)
	ord.CartData.Items = items

	if ord.PaymentData != nil {
		pd := *ord.PaymentData
		ord.PaymentData = &pd
	}
	return ord
}
