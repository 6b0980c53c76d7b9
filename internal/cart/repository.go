package cart

import (
	"errors"
	"sync"
)

var (
	ErrNotFound     = errors.New("cart not found")
	ErrItemNotFound = errors.New("product not in cart")
)

// Repository stores at most one cart per user.
type Repository interface {
	Get(userID int) (Cart, error)
	Save(cart Cart) error
	Delete(userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int]Cart
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: map[int]Cart{}}
}

func (r *InMemoryRepository) Get(userID int) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[userID]
	if !ok {
		return Cart{}, ErrNotFound
	}
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c, nil
}

func (r *InMemoryRepository) Save(c Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	r.carts[c.UserID] = c
	return nil
}

func (r *InMemoryRepository) Delete(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}
