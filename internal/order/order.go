package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sneakhub/sneaker-shop-backend/internal/cart"
)

type Status string

const (
	StatusInitialized      Status = "initialized"
	StatusPaymentConfirmed Status = "payment-confirmed"
	StatusPaymentFailed    Status = "payment-failed"
	StatusProcessing       Status = "processing-order"
	StatusReadyForPickup   Status = "ready-for-pickup"
	StatusOnDelivery       Status = "on-delivery"
	StatusDelivered        Status = "delivered"
	StatusCancelled        Status = "cancelled"
	StatusReturned         Status = "returned"
)

// payment-failed loops back: a fresh payment attempt against the same
// order may still confirm it.
var validNext = map[Status]map[Status]bool{
	StatusInitialized:      {StatusPaymentConfirmed: true, StatusPaymentFailed: true, StatusCancelled: true},
	StatusPaymentFailed:    {StatusPaymentConfirmed: true, StatusPaymentFailed: true, StatusCancelled: true},
	StatusPaymentConfirmed: {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing:       {StatusReadyForPickup: true, StatusOnDelivery: true, StatusCancelled: true},
	StatusReadyForPickup:   {StatusOnDelivery: true},
	StatusOnDelivery:       {StatusDelivered: true},
	StatusDelivered:        {StatusReturned: true},
	StatusCancelled:        {},
	StatusReturned:         {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

type DeliveryStatus string

const (
	DeliveryPending        DeliveryStatus = "pending"
	DeliveryShipped        DeliveryStatus = "shipped"
	DeliveryOutForDelivery DeliveryStatus = "out-for-delivery"
	DeliveryDelivered      DeliveryStatus = "delivered"
)

var validNextDelivery = map[DeliveryStatus]map[DeliveryStatus]bool{
	DeliveryPending:        {DeliveryShipped: true},
	DeliveryShipped:        {DeliveryOutForDelivery: true},
	DeliveryOutForDelivery: {DeliveryDelivered: true},
	DeliveryDelivered:      {},
}

func CanTransitionDelivery(from, to DeliveryStatus) bool {
	return validNextDelivery[from][to]
}

// UserData is a snapshot of the buyer taken at order creation. The order
// stays readable as-is even if the user record changes afterwards.
type UserData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ShippingData is the frozen copy of the chosen delivery address.
type ShippingData struct {
	Address        string         `json:"address"`
	City           string         `json:"city"`
	State          string         `json:"state"`
	PostalCode     string         `json:"postalCode"`
	DeliveryStatus DeliveryStatus `json:"deliveryStatus"`
	TrackingNumber string         `json:"trackingNumber,omitempty"`
}

// CartData is the cart as it stood when the order was initialized. It is
// never recomputed from the live cart.
type CartData struct {
	Items       []cart.Item `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
}

// PaymentData stays nil until a payment attempt completes.
type PaymentData struct {
	Reference  string  `json:"reference"`
	Provider   string  `json:"provider"`
	Status     string  `json:"status"`
	AmountPaid float64 `json:"amountPaid"`
	PaidAt     string  `json:"paymentDate"`
}

type Activity struct {
	Status    Status `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type Order struct {
	ID           int          `json:"orderId"`
	OrderNumber  string       `json:"orderNumber"`
	UserID       int          `json:"userId"`
	UserData     UserData     `json:"userData"`
	ShippingData ShippingData `json:"shippingData"`
	CartData     CartData     `json:"cartData"`
	PaymentData  *PaymentData `json:"paymentData,omitempty"`
	DeliveryMode int          `json:"deliveryMode"`
	Status       Status       `json:"status"`
	Activities   []Activity   `json:"orderActivities"`
	IsRefunded   bool         `json:"isRefunded"`
	IsCancelled  bool         `json:"isCancelled"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
}

// AppendActivity grows the append-only log; entries are never edited or
// reordered.
func (o *Order) AppendActivity(status Status, message string) {
	o.Activities = append(o.Activities, Activity{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// NewOrderNumber builds the human-diagnosable order identity: creation
// time plus a random tail.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
