package payment

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sneakhub/sneaker-shop-backend/internal/gateway"
	"github.com/sneakhub/sneaker-shop-backend/internal/order"
	"github.com/sneakhub/sneaker-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/payments/initialize", h.initializePayment)
	app.Get("/api/v1/payments/verify", h.verifyPayment)
}

type initializeRequest struct {
	OrderID int     `json:"orderId"`
	Amount  float64 `json:"amount"`
	Method  int     `json:"method"`
	Email   string  `json:"email"`
}

func (h *Handler) initializePayment(c *fiber.Ctx) error {
	payload := new(initializeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.OrderID <= 0 || payload.Amount <= 0 || payload.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email, amount and orderId are required"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	result, err := h.service.InitializePayment(c.Context(), userID, payload.OrderID, payload.Amount, payload.Method, payload.Email)
	if err != nil {
		return paymentError(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "data": result})
}

func (h *Handler) verifyPayment(c *fiber.Ctx) error {
	reference := c.Query("reference")
	methodStr := c.Query("method")
	if reference == "" || methodStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "reference and payment method are required"})
	}
	method, err := strconv.Atoi(methodStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid payment method"})
	}

	if _, err := user.GetUserIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	outcome, err := h.service.VerifyPayment(c.Context(), reference, method)
	if err != nil {
		return paymentError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Payment verified and order updated",
		"data":    outcome,
	})
}

func paymentError(c *fiber.Ctx, err error) error {
	var mismatch *AmountMismatchError
	var gwErr *gateway.Error

	switch {
	case err == gateway.ErrInvalidMethod:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid payment method"})
	case errors.As(err, &mismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": mismatch.Error()})
	case err == ErrVerificationFailed:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Payment verification failed"})
	case err == ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Payment record not found"})
	case err == order.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	case err == user.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	case err == order.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
	case errors.As(err, &gwErr):
		// third-party unavailability reads differently in the logs than
		// caller mistakes, but the client still gets a 400-class reply
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": gwErr.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
