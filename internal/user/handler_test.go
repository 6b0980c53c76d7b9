package user

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func newTestApp(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)

	// stand-in for the JWT middleware: X-User-ID becomes the user_id claim
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-User-ID"); id != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	app := newTestApp(NewHandler(svc, "test-secret"))

	payload, _ := json.Marshal(map[string]string{
		"email":     "ada@example.com",
		"password":  "correct horse",
		"firstName": "Ada",
		"lastName":  "Obi",
		"phone":     "08012345678",
	})
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/sign-up", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("sign-up status = %d, want 201", res.StatusCode)
	}

	var created User
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Password != "" {
		t.Error("response must not leak the password hash")
	}

	// duplicate email
	req = httptest.NewRequest(fiber.MethodPost, "/api/v1/sign-up", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusConflict {
		t.Errorf("duplicate sign-up status = %d, want 409", res.StatusCode)
	}

	login, _ := json.Marshal(map[string]string{"email": "ada@example.com", "password": "correct horse"})
	req = httptest.NewRequest(fiber.MethodPost, "/api/v1/sign-in", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")
	res, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("sign-in status = %d, want 200", res.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Token == "" {
		t.Error("sign-in response missing token")
	}

	tok, err := jwt.Parse(body.Token, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	if err != nil || !tok.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if int(claims["user_id"].(float64)) != body.User.ID {
		t.Errorf("token user_id = %v, want %d", claims["user_id"], body.User.ID)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	if _, err := svc.Register(User{Email: "ada@example.com", Password: "pw", FirstName: "Ada", LastName: "Obi", Phone: "0801"}); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(NewHandler(svc, "test-secret"))

	login, _ := json.Marshal(map[string]string{"email": "ada@example.com", "password": "nope"})
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/sign-in", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", res.StatusCode)
	}
}

func TestSignUpMissingFields(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	app := newTestApp(NewHandler(svc, "test-secret"))

	payload, _ := json.Marshal(map[string]string{"email": "ada@example.com"})
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/sign-up", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", res.StatusCode)
	}
}

func TestGetProfile(t *testing.T) {
	svc := NewService(NewInMemoryRepository([]User{{ID: 7, Email: "ada@example.com", FirstName: "Ada", LastName: "Obi"}}))
	app := newTestApp(NewHandler(svc, "test-secret"))

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("X-User-ID", "7")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var u User
	if err := json.NewDecoder(res.Body).Decode(&u); err != nil {
		t.Fatal(err)
	}
	if u.Email != "ada@example.com" {
		t.Errorf("email = %q", u.Email)
	}

	// no claim at all
	req = httptest.NewRequest(fiber.MethodGet, "/api/v1/profile", nil)
	res, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status without token = %d, want 401", res.StatusCode)
	}
}
