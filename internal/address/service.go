package address

import (
	"errors"
	"time"
)

// ServiceInterface is the lookup contract consumed by the order workflow.
type ServiceInterface interface {
	GetByID(userID, addressID int) (Address, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByUser(userID int) ([]Address, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(userID)
}

func (s *Service) GetByID(userID, addressID int) (Address, error) {
	if userID <= 0 || addressID <= 0 {
		return Address{}, ErrNotFound
	}
	return s.repo.GetByID(userID, addressID)
}

func (s *Service) Create(a Address) (Address, error) {
	if a.UserID <= 0 {
		return Address{}, ErrNotFound
	}
	if a.Address == "" || a.City == "" || a.State == "" || a.PostalCode == "" {
		return Address{}, errors.New("address, city, state and postalCode are required")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.repo.Create(a)
}

func (s *Service) Update(userID, addressID int, a Address) (Address, error) {
	if userID <= 0 || addressID <= 0 {
		return Address{}, ErrNotFound
	}
	if a.Address == "" || a.City == "" || a.State == "" || a.PostalCode == "" {
		return Address{}, errors.New("address, city, state and postalCode are required")
	}
	a.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(userID, addressID, a)
}

func (s *Service) Delete(userID, addressID int) error {
	if userID <= 0 || addressID <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(userID, addressID)
}
