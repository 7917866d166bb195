package services

import (
	"context"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surajjj07/Ecommerce-website/models"
	"github.com/surajjj07/Ecommerce-website/payment"
	"github.com/surajjj07/Ecommerce-website/repository"
)

// PaymentService creates gateway payment intents and turns verified
// gateway callbacks into paid orders.
type PaymentService struct {
	orders   *OrderService
	settings repository.SettingsStore
	gateway  payment.Gateway
	keyID    string
	secret   string
	logger   *slog.Logger
}

func NewPaymentService(orders *OrderService, settings repository.SettingsStore, gateway payment.Gateway, keyID, secret string, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		orders:   orders,
		settings: settings,
		gateway:  gateway,
		keyID:    keyID,
		secret:   secret,
		logger:   logger,
	}
}

func (s *PaymentService) configured() bool {
	return s.gateway != nil && s.keyID != "" && s.secret != ""
}

// Intent is what the storefront needs to open the gateway checkout.
type Intent struct {
	GatewayOrderID string  `json:"gatewayOrderId"`
	Amount         int64   `json:"amount"`
	Currency       string  `json:"currency"`
	Key            string  `json:"key"`
	TotalAmount    float64 `json:"totalAmount"`
}

// CreateIntent prices the requested items server-side and asks the
// gateway for a payment intent over round(total × 100) minor units.
// Nothing is persisted yet.
func (s *PaymentService) CreateIntent(ctx context.Context, items []OrderItemRequest, shippingAddress string) (*Intent, error) {
	if !s.configured() {
		return nil, ErrPaymentNotConfigured
	}
	if len(items) == 0 {
		return nil, ErrProductsRequired
	}

	settings, err := s.settings.GetSingleton(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.OnlinePaymentEnabled {
		return nil, ErrOnlinePaymentDisabled
	}

	_, total, err := s.orders.PriceItems(ctx, items)
	if err != nil {
		return nil, err
	}

	amountMinor := int64(math.Round(total * 100))
	gatewayOrder, err := s.gateway.CreateOrder(ctx, amountMinor, "INR", uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &Intent{
		GatewayOrderID: gatewayOrder.GatewayOrderID,
		Amount:         gatewayOrder.Amount,
		Currency:       gatewayOrder.Currency,
		Key:            s.keyID,
		TotalAmount:    total,
	}, nil
}

// VerifyAndCreateOrder checks the gateway signature over
// "<gatewayOrderId>|<paymentId>" and, only on a match, materializes the
// order as paid. Items and total come from the catalog again, never
// from anything the client echoed back.
func (s *PaymentService) VerifyAndCreateOrder(ctx context.Context, userID primitive.ObjectID, items []OrderItemRequest, shippingAddress, gatewayOrderID, paymentID, signature string) (*models.Order, error) {
	if s.secret == "" {
		return nil, ErrPaymentNotConfigured
	}
	if len(items) == 0 {
		return nil, ErrProductsRequired
	}
	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		return nil, ErrPaymentVerification
	}

	if !payment.VerifySignature(gatewayOrderID, paymentID, signature, s.secret) {
		s.logger.Warn("payment signature mismatch", "gatewayOrderId", gatewayOrderID)
		return nil, ErrPaymentVerification
	}

	return s.orders.CreatePaidOrder(ctx, userID, items, shippingAddress, PaymentDetails{
		PaymentID:      paymentID,
		GatewayOrderID: gatewayOrderID,
		Signature:      signature,
	})
}
