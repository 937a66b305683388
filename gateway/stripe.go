package gateway

import (
	"encoding/json"
	"fmt"
	"log"

	"ledgerline/config"

	"github.com/go-resty/resty/v2"
)

// Intent is the slice of a gateway payment intent the workflow cares about.
type Intent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Metadata     map[string]string `json:"metadata"`
}

// PaymentGateway creates and retrieves charge intents. The purchase
// workflow only ever talks to this interface; tests use an in-memory fake.
type PaymentGateway interface {
	CreateIntent(amount int64, currency string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(intentID string) (*Intent, error)
}

// StripeGateway talks to the Stripe PaymentIntents REST API with
// form-encoded requests. Amounts are in minor units (paise).
type StripeGateway struct {
	client    *resty.Client
	secretKey string
	baseURL   string
}

func NewStripeGateway(cfg *config.Config) *StripeGateway {
	return &StripeGateway{
		client:    resty.New(),
		secretKey: cfg.StripeSecretKey,
		baseURL:   cfg.StripeApiURL,
	}
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *StripeGateway) CreateIntent(amount int64, currency string, metadata map[string]string) (*Intent, error) {
	form := map[string]string{
		"amount":                             fmt.Sprintf("%d", amount),
		"currency":                           currency,
		"automatic_payment_methods[enabled]": "true",
	}
	for k, v := range metadata {
		form[fmt.Sprintf("metadata[%s]", k)] = v
	}

	resp, err := g.client.R().
		SetAuthToken(g.secretKey).
		SetFormData(form).
		Post(g.baseURL + "/payment_intents")
	if err != nil {
		log.Printf("Failed to create payment intent: %v", err)
		return nil, err
	}

	return g.parseIntent(resp.StatusCode(), resp.Body())
}

func (g *StripeGateway) RetrieveIntent(intentID string) (*Intent, error) {
	resp, err := g.client.R().
		SetAuthToken(g.secretKey).
		Get(g.baseURL + "/payment_intents/" + intentID)
	if err != nil {
		log.Printf("Failed to retrieve payment intent %s: %v", intentID, err)
		return nil, err
	}

	return g.parseIntent(resp.StatusCode(), resp.Body())
}

func (g *StripeGateway) parseIntent(statusCode int, body []byte) (*Intent, error) {
	if statusCode != 200 {
		var apiErr stripeError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe: unexpected status %d", statusCode)
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("stripe: invalid response: %w", err)
	}
	return &intent, nil
}
