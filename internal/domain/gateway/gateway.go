package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// IntentStatus is the gateway-side payment intent status.
type IntentStatus string

const (
	IntentRequiresPayment IntentStatus = "requires_payment_method"
	IntentProcessing      IntentStatus = "processing"
	IntentSucceeded       IntentStatus = "succeeded"
	IntentCanceled        IntentStatus = "canceled"
)

// Intent is the gateway's view of an in-progress charge. The client
// secret is only present right after creation and is never persisted.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       decimal.Decimal
	Currency     string
	Status       IntentStatus
}

// PaymentGateway is the external payment provider. Card data never
// touches this application; clients confirm directly with the gateway
// and the server re-fetches the intent to verify the outcome.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, intentID string) (*Intent, error)
}
