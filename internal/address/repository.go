package address

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("address not found")

type Repository interface {
	ListByUser(userID int) ([]Address, error)
	// GetByID only returns addresses owned by userID; anything else is ErrNotFound.
	GetByID(userID, addressID int) (Address, error)
	Create(addr Address) (Address, error)
	Update(userID, addressID int, addr Address) (Address, error)
	Delete(userID, addressID int) error
}

// InMemoryRepository for tests
type InMemoryRepository struct {
	mu     sync.RWMutex
	data   map[int][]Address // keyed by userID
	nextID int
}

func NewInMemoryRepository(seed map[int][]Address) *InMemoryRepository {
	r := &InMemoryRepository{data: map[int][]Address{}, nextID: 1}
	for userID, addrs := range seed {
		r.data[userID] = append(r.data[userID], addrs...)
		for _, a := range addrs {
			if a.AddressID >= r.nextID {
				r.nextID = a.AddressID + 1
			}
		}
	}
	return r
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Address, len(r.data[userID]))
	copy(out, r.data[userID])
	return out, nil
}

func (r *InMemoryRepository) GetByID(userID, addressID int) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.data[userID] {
		if a.AddressID == addressID {
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Create(addr Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addr.AddressID = r.nextID
	r.nextID++
	r.data[addr.UserID] = append(r.data[addr.UserID], addr)
	return addr, nil
}

func (r *InMemoryRepository) Update(userID, addressID int, update Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.data[userID] {
		if a.AddressID == addressID {
			update.AddressID = addressID
			update.UserID = userID
			r.data[userID][i] = update
			return update, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(userID, addressID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	addrs := r.data[userID]
	for i, a := range addrs {
		if a.AddressID == addressID {
			r.data[userID] = append(addrs[:i], addrs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
