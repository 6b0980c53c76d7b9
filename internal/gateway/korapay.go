package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Korapay talks to api.korapay.com checkout-standard charges. Unlike
// Paystack, Korapay takes amounts in major units and requires the caller
// to supply the charge reference.
type Korapay struct {
	baseURL     string
	secretKey   string
	redirectURL string
	client      *http.Client
}

func NewKorapay(secretKey, redirectURL string, client *http.Client) *Korapay {
	return &Korapay{
		baseURL:     "https://api.korapay.com",
		secretKey:   secretKey,
		redirectURL: redirectURL,
		client:      client,
	}
}

func (k *Korapay) Provider() string { return ProviderKorapay }

type korapayEnvelope struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func (k *Korapay) InitializeCharge(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	reference := req.Reference
	if reference == "" {
		reference = NewKorapayReference()
	}

	body, err := json.Marshal(map[string]any{
		"amount":    req.Amount,
		"reference": reference,
		"currency":  req.Currency,
		"customer": map[string]string{
			"name":  req.Customer.Name,
			"email": req.Customer.Email,
		},
		"channels":        []string{"card", "bank_transfer", "pay_with_bank", "mobile_money"},
		"default_channel": "card",
		"narration":       req.Narration,
		"redirect_url":    k.redirectURL,
	})
	if err != nil {
		return nil, &Error{Provider: ProviderKorapay, Err: err}
	}

	env, err := k.do(ctx, http.MethodPost, "/merchant/api/v1/charges/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if ref, ok := env.Data["reference"].(string); ok && ref != "" {
		reference = ref
	}

	return &InitializeResult{Reference: reference, AccessData: env.Data}, nil
}

func (k *Korapay) VerifyCharge(ctx context.Context, reference string) (*VerifyResult, error) {
	env, err := k.do(ctx, http.MethodGet, "/merchant/api/v1/charges/"+reference, nil)
	if err != nil {
		return nil, err
	}

	status, _ := env.Data["status"].(string)
	if strings.ToLower(status) != StatusSuccess {
		status = StatusFailed
	}
	amount, _ := env.Data["amount"].(float64)
	paidAt, _ := env.Data["transaction_date"].(string)

	return &VerifyResult{
		Status: status,
		Amount: amount,
		PaidAt: paidAt,
		Raw:    env.Data,
	}, nil
}

func (k *Korapay) do(ctx context.Context, method, path string, body *bytes.Reader) (*korapayEnvelope, error) {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		reqBody = body
	}
	req, err := http.NewRequestWithContext(ctx, method, k.baseURL+path, reqBody)
	if err != nil {
		return nil, &Error{Provider: ProviderKorapay, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+k.secretKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := k.client.Do(req)
	if err != nil {
		return nil, &Error{Provider: ProviderKorapay, Err: err}
	}
	defer res.Body.Close()

	var env korapayEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, &Error{Provider: ProviderKorapay, Err: err}
	}
	if res.StatusCode >= 400 || !env.Status {
		return nil, &Error{Provider: ProviderKorapay, Message: env.Message}
	}
	return &env, nil
}
