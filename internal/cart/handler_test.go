package cart

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

type cartResponse struct {
	Cart   Cart `json:"cart"`
	Length int  `json:"length"`
}

func doCart(t *testing.T, app *fiber.App, method, target string, payload any) (*cartResponse, int) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, target, body)
	if payload != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("X-User-ID", "7")

	res, err := app.Test(r, -1)
	require.NoError(t, err)
	if res.StatusCode == fiber.StatusNoContent {
		return nil, res.StatusCode
	}

	out := new(cartResponse)
	if res.Header.Get("Content-Type") != "" {
		_ = json.NewDecoder(res.Body).Decode(out)
	}
	return out, res.StatusCode
}

func TestCartHandlerLifecycle(t *testing.T) {
	app := newTestApp(NewHandler(newCartService(t)))

	// empty cart for a fresh user
	out, code := doCart(t, app, fiber.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Zero(t, out.Length)

	out, code = doCart(t, app, fiber.MethodPost, "/api/v1/cart", map[string]any{
		"productId": 1, "sizeId": "42", "quantity": 2,
	})
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 1, out.Length)
	assert.Equal(t, 90000.0, out.Cart.Total)

	out, code = doCart(t, app, fiber.MethodPatch, "/api/v1/cart/decrease", map[string]any{
		"productId": 1, "sizeId": "42",
	})
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 45000.0, out.Cart.Total)

	_, code = doCart(t, app, fiber.MethodDelete, "/api/v1/cart", nil)
	assert.Equal(t, fiber.StatusNoContent, code)

	out, code = doCart(t, app, fiber.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Zero(t, out.Length)
}

func TestCartHandlerErrors(t *testing.T) {
	app := newTestApp(NewHandler(newCartService(t)))

	// unknown size
	_, code := doCart(t, app, fiber.MethodPost, "/api/v1/cart", map[string]any{
		"productId": 1, "sizeId": "48",
	})
	assert.Equal(t, fiber.StatusBadRequest, code)

	// over stock
	_, code = doCart(t, app, fiber.MethodPost, "/api/v1/cart", map[string]any{
		"productId": 1, "sizeId": "42", "quantity": 99,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)

	// adjusting a line that was never added
	_, code = doCart(t, app, fiber.MethodPatch, "/api/v1/cart/increase", map[string]any{
		"productId": 1, "sizeId": "42",
	})
	assert.Equal(t, fiber.StatusNotFound, code)

	// missing identity fields
	_, code = doCart(t, app, fiber.MethodPost, "/api/v1/cart", map[string]any{"quantity": 1})
	assert.Equal(t, fiber.StatusBadRequest, code)
}
