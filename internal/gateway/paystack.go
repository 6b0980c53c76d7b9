package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Paystack talks to api.paystack.co. Paystack expects amounts in minor
// currency units (kobo), so this adapter scales by 100 on the way out and
// back; it also issues its own reference during initialization.
type Paystack struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewPaystack(secretKey string, client *http.Client) *Paystack {
	return &Paystack{
		baseURL:   "https://api.paystack.co",
		secretKey: secretKey,
		client:    client,
	}
}

func (p *Paystack) Provider() string { return ProviderPaystack }

type paystackEnvelope struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func (p *Paystack) InitializeCharge(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	body, err := json.Marshal(map[string]any{
		"email":  req.Customer.Email,
		"amount": int64(req.Amount * 100),
	})
	if err != nil {
		return nil, &Error{Provider: ProviderPaystack, Err: err}
	}

	env, err := p.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	reference, _ := env.Data["reference"].(string)
	if reference == "" {
		return nil, &Error{Provider: ProviderPaystack, Message: "initialize response missing reference"}
	}

	return &InitializeResult{Reference: reference, AccessData: env.Data}, nil
}

func (p *Paystack) VerifyCharge(ctx context.Context, reference string) (*VerifyResult, error) {
	env, err := p.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	status, _ := env.Data["status"].(string)
	if strings.ToLower(status) != StatusSuccess {
		status = StatusFailed
	}
	amount, _ := env.Data["amount"].(float64)
	paidAt, _ := env.Data["paid_at"].(string)

	return &VerifyResult{
		Status: status,
		Amount: amount / 100,
		PaidAt: paidAt,
		Raw:    env.Data,
	}, nil
}

func (p *Paystack) do(ctx context.Context, method, path string, body *bytes.Reader) (*paystackEnvelope, error) {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		reqBody = body
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reqBody)
	if err != nil {
		return nil, &Error{Provider: ProviderPaystack, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, &Error{Provider: ProviderPaystack, Err: err}
	}
	defer res.Body.Close()

	var env paystackEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, &Error{Provider: ProviderPaystack, Err: err}
	}
	if res.StatusCode >= 400 || !env.Status {
		return nil, &Error{Provider: ProviderPaystack, Message: env.Message}
	}
	return &env, nil
}
