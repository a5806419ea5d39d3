package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"propmart/config"
)

// EcoCashClient talks to the EcoCash merchant API over HTTP.
type EcoCashClient struct {
	HTTPClient *http.Client
}

func NewEcoCashClient() *EcoCashClient {
	return &EcoCashClient{
		HTTPClient: &http.Client{Timeout: initiateTimeout},
	}
}

type ecoCashInitiateRequest struct {
	MerchantCode string  `json:"merchantCode"`
	Reference    string  `json:"reference"`
	Phone        string  `json:"phone"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	CallbackURL  string  `json:"callbackUrl"`
}

type ecoCashInitiateResponse struct {
	Status  string `json:"status"` // "accepted" | "rejected"
	Message string `json:"message"`
}

// Initiate asks the processor to push a payment prompt to the buyer's phone.
// Acceptance only means the prompt went out; the result arrives later on the
// callback URL.
func (c *EcoCashClient) Initiate(ctx context.Context, reference, phone string, amount float64, callbackURL string) error {
	payload := ecoCashInitiateRequest{
		MerchantCode: config.AppConfig.EcoCashMerchantCode,
		Reference:    reference,
		Phone:        phone,
		Amount:       amount,
		Currency:     config.AppConfig.Currency,
		CallbackURL:  callbackURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ecocash initiate: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.AppConfig.EcoCashAPIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ecocash initiate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.AppConfig.EcoCashAPIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("ecocash initiate: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("ecocash initiate: unexpected status %d", resp.StatusCode)
	}

	var decoded ecoCashInitiateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("ecocash initiate: decode response: %w", err)
	}
	if decoded.Status != "accepted" {
		return fmt.Errorf("ecocash initiate: processor rejected request: %s", decoded.Message)
	}
	return nil
}

var _ Processor = (*EcoCashClient)(nil)
