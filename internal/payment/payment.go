package payment

// Payment is one attempt to collect money via one provider, correlated to
// exactly one order. An order accumulates a new record per attempt.
type Payment struct {
	ID        int     `json:"paymentId"`
	OrderID   int     `json:"orderId"`
	UserName  string  `json:"userName"`
	UserEmail string  `json:"userEmail"`
	Provider  string  `json:"provider"`
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
