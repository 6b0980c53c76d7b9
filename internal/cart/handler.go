package cart

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sneakhub/sneaker-shop-backend/internal/product"
	"github.com/sneakhub/sneaker-shop-backend/internal/user"
)

// Handler delegates cart operations to the cart service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Patch("/api/v1/cart/increase", h.increaseItem)
	app.Patch("/api/v1/cart/decrease", h.decreaseItem)
	app.Delete("/api/v1/cart/item", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type cartItemRequest struct {
	ProductID int    `json:"productId"`
	SizeID    string `json:"sizeId"`
	Quantity  int    `json:"quantity,omitempty"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"cart": crt, "length": len(crt.Items)})
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(cartItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 || payload.SizeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId and sizeId are required"})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.AddItem(userID, payload.ProductID, payload.SizeID, payload.Quantity)
	if err != nil {
		return cartError(c, err)
	}

	return c.JSON(fiber.Map{"cart": crt, "length": len(crt.Items)})
}

func (h *Handler) increaseItem(c *fiber.Ctx) error {
	return h.adjust(c, h.service.IncreaseItem)
}

func (h *Handler) decreaseItem(c *fiber.Ctx) error {
	return h.adjust(c, h.service.DecreaseItem)
}

func (h *Handler) adjust(c *fiber.Ctx, op func(int, int, string) (Cart, error)) error {
	payload := new(cartItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 || payload.SizeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId and sizeId are required"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := op(userID, payload.ProductID, payload.SizeID)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(fiber.Map{"cart": crt, "length": len(crt.Items)})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	payload := new(cartItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.RemoveItem(userID, payload.ProductID, payload.SizeID)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(fiber.Map{"cart": crt, "length": len(crt.Items)})
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.service.Clear(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func cartError(c *fiber.Ctx, err error) error {
	switch {
	case err == ErrNotFound, err == ErrItemNotFound, err == product.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case err == ErrInvalidSize, errors.Is(err, ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
