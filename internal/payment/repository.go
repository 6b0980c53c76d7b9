package payment

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("payment record not found")

type Repository interface {
	Create(p Payment) (Payment, error)
	// Lookups always use the compound key: two providers could issue the
	// same reference string.
	GetByProviderReference(provider, reference string) (Payment, error)
	// MarkStatusIfPending is a compare-and-set: it reports whether this
	// caller moved the record out of `pending`. Concurrent verifications
	// race here and exactly one wins.
	MarkStatusIfPending(provider, reference, status string) (bool, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.Mutex
	payments []Payment
	nextID   int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(p Payment) (Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	r.payments = append(r.payments, p)
	return p, nil
}

func (r *InMemoryRepository) GetByProviderReference(provider, reference string) (Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.payments {
		if p.Provider == provider && p.Reference == reference {
			return p, nil
		}
	}
	return Payment{}, ErrNotFound
}

func (r *InMemoryRepository) MarkStatusIfPending(provider, reference, status string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.payments {
		if p.Provider == provider && p.Reference == reference {
			if p.Status != StatusPending {
				return false, nil
			}
			r.payments[i].Status = status
			return true, nil
		}
	}
	return false, ErrNotFound
}
