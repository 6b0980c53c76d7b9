package cart

// SizeInfo freezes the variant the shopper picked; the price here is the
// size's price at the time the item entered the cart.
type SizeInfo struct {
	SizeID string  `json:"sizeId"`
	US     float64 `json:"us"`
	UK     float64 `json:"uk"`
	Price  float64 `json:"price"`
}

type Item struct {
	ProductID   int      `json:"productId"`
	SizeInfo    SizeInfo `json:"sizeInfo"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unitPrice"`
	TotalPrice  float64  `json:"totalPrice"`
	Images      []string `json:"image,omitempty"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	ProductType string   `json:"productType,omitempty"`
}

type Cart struct {
	UserID int     `json:"userId"`
	Items  []Item  `json:"items"`
	Total  float64 `json:"total"`
}

// Recalculate restores the invariant total == sum(quantity * unitPrice).
// Every mutation goes through this; the total is never adjusted in place.
func (c *Cart) Recalculate() {
	total := 0.0
	for i := range c.Items {
		c.Items[i].TotalPrice = float64(c.Items[i].Quantity) * c.Items[i].UnitPrice
		total += c.Items[i].TotalPrice
	}
	c.Total = total
}

func (c *Cart) findItem(productID int, sizeID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.SizeInfo.SizeID == sizeID {
			return i
		}
	}
	return -1
}
