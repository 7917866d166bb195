package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surajjj07/Ecommerce-website/mocks"
	"github.com/surajjj07/Ecommerce-website/models"
	"github.com/surajjj07/Ecommerce-website/payment"
)

func newPaymentFixture(gateway payment.Gateway, secret string) (*PaymentService, *mocks.MockProductStore, *mocks.MockOrderStore, *mocks.MockSettingsStore) {
	products := new(mocks.MockProductStore)
	orders := new(mocks.MockOrderStore)
	settings := new(mocks.MockSettingsStore)
	orderSvc := NewOrderService(products, orders, settings, nil, testLogger())
	keyID := "rzp_test_key"
	if secret == "" {
		keyID = ""
	}
	svc := NewPaymentService(orderSvc, settings, gateway, keyID, secret, testLogger())
	return svc, products, orders, settings
}

func TestCreateIntentNotConfigured(t *testing.T) {
	svc, _, _, _ := newPaymentFixture(nil, "")

	intent, err := svc.CreateIntent(context.Background(), []OrderItemRequest{
		{Product: primitive.NewObjectID().Hex(), Quantity: 1},
	}, "addr")

	assert.Nil(t, intent)
	assert.ErrorIs(t, err, ErrPaymentNotConfigured)
}

func TestCreateIntentOnlineDisabled(t *testing.T) {
	gateway := new(mocks.MockGateway)
	svc, _, _, settings := newPaymentFixture(gateway, "s3cr3t")

	s := models.DefaultSettings()
	s.OnlinePaymentEnabled = false
	settings.On("GetSingleton", mock.Anything).Return(&s, nil)

	intent, err := svc.CreateIntent(context.Background(), []OrderItemRequest{
		{Product: primitive.NewObjectID().Hex(), Quantity: 1},
	}, "addr")

	assert.Nil(t, intent)
	assert.ErrorIs(t, err, ErrOnlinePaymentDisabled)
	gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateIntentAmountInMinorUnits(t *testing.T) {
	gateway := new(mocks.MockGateway)
	svc, products, _, settings := newPaymentFixture(gateway, "s3cr3t")

	productID := primitive.NewObjectID()
	s := models.DefaultSettings()
	settings.On("GetSingleton", mock.Anything).Return(&s, nil)
	products.On("FindByID", mock.Anything, productID).Return(activeProduct(productID, "P1", 499.99, 5), nil)

	// round(999.98 × 100) = 99998 paise.
	gateway.On("CreateOrder", mock.Anything, int64(99998), "INR", mock.AnythingOfType("string")).
		Return(&payment.Intent{GatewayOrderID: "order_abc", Amount: 99998, Currency: "INR"}, nil)

	intent, err := svc.CreateIntent(context.Background(), []OrderItemRequest{
		{Product: productID.Hex(), Quantity: 2},
	}, "addr")

	assert.NoError(t, err)
	assert.Equal(t, "order_abc", intent.GatewayOrderID)
	assert.Equal(t, int64(99998), intent.Amount)
	assert.Equal(t, "INR", intent.Currency)
	assert.Equal(t, "rzp_test_key", intent.Key)
	assert.InDelta(t, 999.98, intent.TotalAmount, 0.0001)
	gateway.AssertExpectations(t)
}

func TestVerifyAndCreateOrderAcceptsValidSignature(t *testing.T) {
	svc, products, orders, _ := newPaymentFixture(new(mocks.MockGateway), "s3cr3t")

	productID := primitive.NewObjectID()
	products.On("FindByID", mock.Anything, productID).Return(activeProduct(productID, "P1", 500, 5), nil)
	products.On("DecrementStock", mock.Anything, productID, 2).Return(true, nil)
	orders.On("Insert", mock.Anything, mock.Anything).Return(nil)

	signature := payment.SignPayment("order_abc", "pay_123", "s3cr3t")
	order, err := svc.VerifyAndCreateOrder(
		context.Background(),
		primitive.NewObjectID(),
		[]OrderItemRequest{{Product: productID.Hex(), Quantity: 2}},
		"addr",
		"order_abc", "pay_123", signature,
	)

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	assert.Equal(t, "order_abc", order.PaymentGatewayOrderID)
	assert.Equal(t, "pay_123", order.PaymentID)
	assert.Equal(t, 1000.0, order.TotalAmount)
}

func TestVerifyAndCreateOrderRejectsBadSignature(t *testing.T) {
	tests := []struct {
		name      string
		signature string
	}{
		{"garbage signature", "deadbeef"},
		{"signature for other payment", payment.SignPayment("order_abc", "pay_999", "s3cr3t")},
		{"signature under wrong secret", payment.SignPayment("order_abc", "pay_123", "wrong")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, products, orders, _ := newPaymentFixture(new(mocks.MockGateway), "s3cr3t")

			order, err := svc.VerifyAndCreateOrder(
				context.Background(),
				primitive.NewObjectID(),
				[]OrderItemRequest{{Product: primitive.NewObjectID().Hex(), Quantity: 1}},
				"addr",
				"order_abc", "pay_123", tt.signature,
			)

			assert.Nil(t, order)
			assert.ErrorIs(t, err, ErrPaymentVerification)
			products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
			orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestVerifyAndCreateOrderMissingFields(t *testing.T) {
	svc, _, orders, _ := newPaymentFixture(new(mocks.MockGateway), "s3cr3t")
	items := []OrderItemRequest{{Product: primitive.NewObjectID().Hex(), Quantity: 1}}

	for _, tt := range []struct {
		name                          string
		gatewayOrder, payID, signature string
	}{
		{"missing gateway order id", "", "pay_123", "sig"},
		{"missing payment id", "order_abc", "", "sig"},
		{"missing signature", "order_abc", "pay_123", ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			order, err := svc.VerifyAndCreateOrder(context.Background(), primitive.NewObjectID(), items, "addr", tt.gatewayOrder, tt.payID, tt.signature)
			assert.Nil(t, order)
			assert.ErrorIs(t, err, ErrPaymentVerification)
		})
	}
	orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestVerifyAndCreateOrderWithoutSecret(t *testing.T) {
	svc, _, _, _ := newPaymentFixture(nil, "")

	order, err := svc.VerifyAndCreateOrder(
		context.Background(),
		primitive.NewObjectID(),
		[]OrderItemRequest{{Product: primitive.NewObjectID().Hex(), Quantity: 1}},
		"addr",
		"order_abc", "pay_123", "sig",
	)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrPaymentNotConfigured)
}
