package payment

import (
	"context"

	"github.com/pkg/errors"
	razorpay "github.com/razorpay/razorpay-go"
)

// Intent is a pending gateway payment the buyer still has to complete.
type Intent struct {
	GatewayOrderID string
	Amount         int64
	Currency       string
}

// Gateway creates payment intents with the external processor.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Intent, error)
}

type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, secret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, secret)}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Intent, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create razorpay order")
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, errors.New("razorpay order response missing id")
	}

	return &Intent{
		GatewayOrderID: id,
		Amount:         amountMinor,
		Currency:       currency,
	}, nil
}
