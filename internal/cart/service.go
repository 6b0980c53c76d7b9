package cart

import (
	"errors"
	"fmt"

	"github.com/sneakhub/sneaker-shop-backend/internal/product"
)

var (
	ErrInvalidSize       = errors.New("invalid size selection")
	ErrInsufficientStock = errors.New("not enough stock for this size")
)

// ServiceInterface is the cart contract the order and payment workflows
// consume: they read the live cart and, exactly once, destroy it.
type ServiceInterface interface {
	Get(userID int) (Cart, error)
	Clear(userID int) error
}

type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

// Get returns the user's cart. A user with no cart yet gets an empty one
// rather than an error.
func (s *Service) Get(userID int) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	c, err := s.repo.Get(userID)
	if err == ErrNotFound {
		return Cart{UserID: userID, Items: []Item{}}, nil
	}
	return c, err
}

func (s *Service) AddItem(userID, productID int, sizeID string, qty int) (Cart, error) {
	if qty < 1 {
		return Cart{}, fmt.Errorf("quantity must be at least 1")
	}

	p, err := s.products.GetByID(productID)
	if err != nil {
		return Cart{}, err
	}
	size, ok := p.FindSize(sizeID)
	if !ok {
		return Cart{}, ErrInvalidSize
	}

	c, err := s.Get(userID)
	if err != nil {
		return Cart{}, err
	}

	if i := c.findItem(productID, sizeID); i >= 0 {
		if c.Items[i].Quantity+qty > size.Stock {
			return Cart{}, fmt.Errorf("%w: only %d left", ErrInsufficientStock, size.Stock)
		}
		c.Items[i].Quantity += qty
	} else {
		if qty > size.Stock {
			return Cart{}, fmt.Errorf("%w: only %d left", ErrInsufficientStock, size.Stock)
		}
		c.Items = append(c.Items, Item{
			ProductID:   productID,
			SizeInfo:    SizeInfo{SizeID: size.SizeID, US: size.US, UK: size.UK, Price: size.Price},
			Quantity:    qty,
			UnitPrice:   size.Price,
			Images:      p.Images,
			Category:    p.Category,
			Brand:       p.Brand,
			ProductType: p.ProductType,
		})
	}

	c.Recalculate()
	if err := s.repo.Save(c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) IncreaseItem(userID, productID int, sizeID string) (Cart, error) {
	return s.adjustItem(userID, productID, sizeID, 1)
}

// DecreaseItem lowers the quantity by one and drops the line entirely when
// it reaches zero.
func (s *Service) DecreaseItem(userID, productID int, sizeID string) (Cart, error) {
	return s.adjustItem(userID, productID, sizeID, -1)
}

func (s *Service) adjustItem(userID, productID int, sizeID string, delta int) (Cart, error) {
	c, err := s.repo.Get(userID)
	if err != nil {
		return Cart{}, err
	}

	i := c.findItem(productID, sizeID)
	if i < 0 {
		return Cart{}, ErrItemNotFound
	}

	c.Items[i].Quantity += delta
	if c.Items[i].Quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}

	c.Recalculate()
	if err := s.repo.Save(c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) RemoveItem(userID, productID int, sizeID string) (Cart, error) {
	c, err := s.repo.Get(userID)
	if err != nil {
		return Cart{}, err
	}

	i := c.findItem(productID, sizeID)
	if i < 0 {
		return Cart{}, ErrItemNotFound
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)

	c.Recalculate()
	if err := s.repo.Save(c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) Clear(userID int) error {
	if userID <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(userID)
}
