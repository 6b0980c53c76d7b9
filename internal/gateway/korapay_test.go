package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKorapayForTest(t *testing.T, handler http.HandlerFunc) *Korapay {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	k := NewKorapay("sk_test_kora", "https://shop.test/checkout/complete", srv.Client())
	k.baseURL = srv.URL
	return k
}

// Korapay keeps amounts in major units and takes the reference from us.
func TestKorapayInitializePayload(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	k := newKorapayForTest(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"checkout_url": "https://checkout.korapay.com/xyz",
				"reference":    gotBody["reference"],
			},
		})
	})

	res, err := k.InitializeCharge(context.Background(), InitializeRequest{
		Amount:    90000,
		Currency:  "NGN",
		Customer:  Customer{Name: "Ada Obi", Email: "ada@example.com"},
		Reference: "KORA-1756461600000-0a1b2c3dPAY",
		Narration: "Payment for order #ORD-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "/merchant/api/v1/charges/initialize", gotPath)
	assert.Equal(t, 90000.0, gotBody["amount"])
	assert.Equal(t, "KORA-1756461600000-0a1b2c3dPAY", gotBody["reference"])
	assert.Equal(t, "https://shop.test/checkout/complete", gotBody["redirect_url"])
	assert.Contains(t, gotBody["channels"], "card")

	customer, ok := gotBody["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", customer["email"])

	assert.Equal(t, "KORA-1756461600000-0a1b2c3dPAY", res.Reference)
	assert.Equal(t, "https://checkout.korapay.com/xyz", res.AccessData["checkout_url"])
}

func TestKorapayVerify(t *testing.T) {
	var gotPath, gotAuth string
	k := newKorapayForTest(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"status":           "success",
				"amount":           90000,
				"transaction_date": "2026-08-29T10:00:00Z",
			},
		})
	})

	res, err := k.VerifyCharge(context.Background(), "KORA-1-0a1b2c3dPAY")
	require.NoError(t, err)

	assert.Equal(t, "/merchant/api/v1/charges/KORA-1-0a1b2c3dPAY", gotPath)
	assert.Equal(t, "Bearer sk_test_kora", gotAuth)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 90000.0, res.Amount)
	assert.Equal(t, "2026-08-29T10:00:00Z", res.PaidAt)
}

func TestKorapayErrorEnvelope(t *testing.T) {
	k := newKorapayForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Charge not found",
		})
	})

	_, err := k.VerifyCharge(context.Background(), "KORA-0-deadbeefPAY")
	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, ProviderKorapay, gwErr.Provider)
	assert.Equal(t, "Charge not found", gwErr.Message)
}
