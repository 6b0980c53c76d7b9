package order

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-User-ID"); id != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestInitializeOrderHandler(t *testing.T) {
	fx := newOrderFixture(t)
	app := newTestApp(NewHandler(fx.svc))

	payload, _ := json.Marshal(map[string]int{"addressId": 3, "deliveryMode": 1})
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/orders/initialize", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	var ord Order
	require.NoError(t, json.NewDecoder(res.Body).Decode(&ord))
	assert.Equal(t, StatusInitialized, ord.Status)
	assert.Equal(t, 7, ord.UserID)
	assert.NotEmpty(t, ord.OrderNumber)
}

func TestInitializeOrderHandlerValidation(t *testing.T) {
	fx := newOrderFixture(t)
	app := newTestApp(NewHandler(fx.svc))

	// addressId missing
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/orders/initialize", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	// address owned by someone else
	payload, _ := json.Marshal(map[string]int{"addressId": 3})
	req = httptest.NewRequest(fiber.MethodPost, "/api/v1/orders/initialize", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "8")
	res, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestGetOrderHandler(t *testing.T) {
	fx := newOrderFixture(t)
	_, err := fx.svc.Initialize(7, 3, 1)
	require.NoError(t, err)
	app := newTestApp(NewHandler(fx.svc))

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/orders/1", nil)
	req.Header.Set("X-User-ID", "7")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	// someone else's order
	req = httptest.NewRequest(fiber.MethodGet, "/api/v1/orders/1", nil)
	req.Header.Set("X-User-ID", "8")
	res, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)

	// unknown order
	req = httptest.NewRequest(fiber.MethodGet, "/api/v1/orders/99", nil)
	req.Header.Set("X-User-ID", "7")
	res, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestListOrdersHandler(t *testing.T) {
	fx := newOrderFixture(t)
	_, err := fx.svc.Initialize(7, 3, 1)
	require.NoError(t, err)
	app := newTestApp(NewHandler(fx.svc))

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "7")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var orders []Order
	require.NoError(t, json.NewDecoder(res.Body).Decode(&orders))
	assert.Len(t, orders, 1)

	req = httptest.NewRequest(fiber.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "8")
	res, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	require.NoError(t, json.NewDecoder(res.Body).Decode(&orders))
	assert.Empty(t, orders)
}
