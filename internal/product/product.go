package product

// Size is one purchasable variant of a sneaker. Prices live on the size,
// not the product, because the same model sells at different prices per size.
type Size struct {
	SizeID string  `json:"sizeId"`
	US     float64 `json:"us"`
	UK     float64 `json:"uk"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

type Product struct {
	ID          int      `json:"productId"`
	Name        string   `json:"productName"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	ProductType string   `json:"productType"`
	Description string   `json:"productDesc,omitempty"`
	Images      []string `json:"images,omitempty"`
	Sizes       []Size   `json:"sizes"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// FindSize returns the size entry matching sizeID, or false when the
// product does not carry that variant.
func (p Product) FindSize(sizeID string) (Size, bool) {
	for _, s := range p.Sizes {
		if s.SizeID == sizeID {
			return s, true
		}
	}
	return Size{}, false
}
