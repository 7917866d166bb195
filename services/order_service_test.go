package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surajjj07/Ecommerce-website/mocks"
	"github.com/surajjj07/Ecommerce-website/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func activeProduct(id primitive.ObjectID, name string, price float64, stock int) *models.Product {
	return &models.Product{
		ID:       id,
		Name:     name,
		SKU:      "SKU-" + name,
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}
}

func enabledSettings() *models.Settings {
	s := models.DefaultSettings()
	return &s
}

func TestCreateOrderCODDefaults(t *testing.T) {
	products := new(mocks.MockProductStore)
	orders := new(mocks.MockOrderStore)
	settings := new(mocks.MockSettingsStore)
	svc := NewOrderService(products, orders, settings, nil, testLogger())

	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	settings.On("GetSingleton", mock.Anything).Return(enabledSettings(), nil)
	products.On("FindByID", mock.Anything, productID).Return(activeProduct(productID, "P1", 500, 5), nil)
	products.On("DecrementStock", mock.Anything, productID, 2).Return(true, nil)

	var inserted *models.Order
	orders.On("Insert", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(*models.Order) }).
		Return(nil)

	order, err := svc.CreateOrder(context.Background(), userID, []OrderItemRequest{
		{Product: productID.Hex(), Quantity: 2},
	}, "12 Main Street", "")

	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, inserted, order)
	assert.Equal(t, 1000.0, order.TotalAmount)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, userID, order.UserID)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 500.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, strings.HasPrefix(order.OrderID, "ORD-"))

	products.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestCreateOrderValidation(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	tests := []struct {
		name    string
		items   []OrderItemRequest
		address string
		method  string
		setup   func(products *mocks.MockProductStore, settings *mocks.MockSettingsStore)
		wantErr error
	}{
		{
			name:    "empty items",
			items:   nil,
			address: "addr",
			setup: func(_ *mocks.MockProductStore, settings *mocks.MockSettingsStore) {
				settings.On("GetSingleton", mock.Anything).Return(enabledSettings(), nil)
			},
			wantErr: ErrProductsRequired,
		},
		{
			name:    "blank shipping address",
			items:   []OrderItemRequest{{Product: productID.Hex(), Quantity: 1}},
			address: "   ",
			setup: func(_ *mocks.MockProductStore, settings *mocks.MockSettingsStore) {
				settings.On("GetSingleton", mock.Anything).Return(enabledSettings(), nil)
			},
			wantErr: ErrShippingAddressRequired,
		},
		{
			name:    "zero quantity",
			items:   []OrderItemRequest{{Product: productID.Hex(), Quantity: 0}},
			address: "addr",
			setup: func(_ *mocks.MockProductStore, settings *mocks.MockSettingsStore) {
				settings.On("GetSingleton", mock.Anything).Return(enabledSettings(), nil)
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "unknown payment method",
			items:   []OrderItemRequest{{Product: productID.Hex(), Quantity: 1}},
			address: "addr",
			method:  "crypto",
			setup:   func(_ *mocks.MockProductStore, _ *mocks.MockSettingsStore) {},
			wantErr: ErrInvalidPaymentMethod,
		},
		{
			name:    "cod disabled",
			items:   []OrderItemRequest{{Product: productID.Hex(), Quantity: 1}},
			address: "addr",
			method:  models.PaymentMethodCOD,
			setup: func(_ *mocks.MockProductStore, settings *mocks.MockSettingsStore) {
				s := enabledSettings()
				s.CODEnabled = false
				settings.On("GetSingleton", mock.Anything).Return(s, nil)
			},
			wantErr: ErrCODDisabled,
		},
		{
			name:    "online disabled",
			items:   []OrderItemRequest{{Product: productID.Hex(), Quantity: 1}},
			address: "addr",
			method:  models.PaymentMethodOnline,
			setup: func(_ *mocks.MockProductStore, settings *mocks.MockSettingsStore) {
				s := enabledSettings()
				s.OnlinePaymentEnabled = false
				settings.On("GetSingleton", mock.Anything).Return(s, nil)
			},
			wantErr: ErrOnlinePaymentDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(mocks.MockProductStore)
			orders := new(mocks.MockOrderStore)
			settings := new(mocks.MockSettingsStore)
			tt.setup(products, settings)
			svc := NewOrderService(products, orders, settings, nil, testLogger())

			order, err := svc.CreateOrder(context.Background(), userID, tt.items, tt.address, tt.method)

			assert.Nil(t, order)
			assert.ErrorIs(t, err, tt.wantErr)
			orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrderUnavailableProduct(t *testing.T) {
	userID := primitive.NewObjectID()
	missingID := primitive.NewObjectID()
	inactiveID := primitive.NewObjectID()

	tests := []struct {
		name  string
		ref   string
		setup func(products *mocks.MockProductStore)
	}{
		{
			name:  "malformed product id",
			ref:   "not-a-hex-id",
			setup: func(_ *mocks.MockProductStore) {},
		},
		{
			name: "missing product",
			ref:  missingID.Hex(),
			setup: func(products *mocks.MockProductStore) {
				products.On("FindByID", mock.Anything, missingID).Return(nil, nil)
			},
		},
		{
			name: "inactive product",
			ref:  inactiveID.Hex(),
			setup: func(products *mocks.MockProductStore) {
				p := activeProduct(inactiveID, "Ghost", 100, 5)
				p.IsActive = false
				products.On("FindByID", mock.Anything, inactiveID).Return(p, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(mocks.MockProductStore)
			orders := new(mocks.MockOrderStore)
			settings := new(mocks.MockSettingsStore)
			settings.On("GetSingleton", mock.Anything).Return(enabledSettings(), nil)
			tt.setup(products)
			svc := NewOrderService(products, orders, settings, nil, testLogger())

			order, err := svc.CreateOrder(context.Background(), userID, []OrderItemRequest{
				{Product: tt.ref, Quantity: 1},
			}, "addr", "")

			assert.Nil(t, order)
			var unavailable *ProductUnavailableError
			assert.ErrorAs(t, err, &unavailable)
			assert.Equal(t, "Product "+tt.ref+" not found or inactive", err.Error())
			orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrderAllOrNothing(t *testing.T) {
	// Second line references a missing product; the whole order fails and
	// nothing touches stock.
	products := new(mocks.MockProductStore)
	orders := new(mocks.MockOrderStore)
	settings := new(mocks.MockSettingsStore)
	svc := NewOrderService(products, orders, settings, nil, testLogger())

	goodID := primitive.NewObjectID()
	badID := primitive.NewObjectID()

	settings.On("GetSingleton", mock.Anything).Return(enabledSettings(), nil)
	products.On("FindByID", mock.Anything, goodID).Return(activeProduct(goodID, "Good", 250, 10), nil)
	products.On("FindByID", mock.Anything, badID).Return(nil, nil)

	order, err := svc.CreateOrder(context.Background(), primitive.NewObjectID(), []OrderItemRequest{
		{Product: goodID.Hex(), Quantity: 1},
		{Product: badID.Hex(), Quantity: 1},
	}, "addr", "")

	assert.Nil(t, order)
	var unavailable *ProductUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	products := new(mocks.MockProductStore)
	orders := new(mocks.MockOrderStore)
	settings := new(mocks.MockSettingsStore)
	svc := NewOrderService(products, orders, settings, nil, testLogger())

	productID := primitive.NewObjectID()
	settings.On("GetSingleton", mock.Anything).Return(enabledSettings(), nil)
	products.On("FindByID", mock.Anything, productID).Return(activeProduct(productID, "Hoodie", 900, 1), nil)

	order, err := svc.CreateOrder(context.Background(), primitive.NewObjectID(), []OrderItemRequest{
		{Product: productID.Hex(), Quantity: 2},
	}, "addr", "")

	assert.Nil(t, order)
	assert.EqualError(t, err, "Insufficient stock for Hoodie")
	orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateOrderStockRaceRollsBack(t *testing.T) {
	// Stock for the second line is consumed between pricing and the
	// decrement; the first line's reservation must be released.
	products := new(mocks.MockProductStore)
	orders := new(mocks.MockOrderStore)
	settings := new(mocks.MockSettingsStore)
	svc := NewOrderService(products, orders, settings, nil, testLogger())

	firstID := primitive.NewObjectID()
	secondID := primitive.NewObjectID()

	settings.On("GetSingleton", mock.Anything).Return(enabledSettings(), nil)
	products.On("FindByID", mock.Anything, firstID).Return(activeProduct(firstID, "First", 100, 5), nil)
	products.On("FindByID", mock.Anything, secondID).Return(activeProduct(secondID, "Second", 200, 5), nil)
	products.On("DecrementStock", mock.Anything, firstID, 1).Return(true, nil)
	products.On("DecrementStock", mock.Anything, secondID, 3).Return(false, nil)
	products.On("IncrementStock", mock.Anything, firstID, 1).Return(nil)

	order, err := svc.CreateOrder(context.Background(), primitive.NewObjectID(), []OrderItemRequest{
		{Product: firstID.Hex(), Quantity: 1},
		{Product: secondID.Hex(), Quantity: 3},
	}, "addr", "")

	assert.Nil(t, order)
	assert.EqualError(t, err, "Insufficient stock for Second")
	products.AssertCalled(t, "IncrementStock", mock.Anything, firstID, 1)
	orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateOrderInsertFailureReleasesStock(t *testing.T) {
	products := new(mocks.MockProductStore)
	orders := new(mocks.MockOrderStore)
	settings := new(mocks.MockSettingsStore)
	svc := NewOrderService(products, orders, settings, nil, testLogger())

	productID := primitive.NewObjectID()
	settings.On("GetSingleton", mock.Anything).Return(enabledSettings(), nil)
	products.On("FindByID", mock.Anything, productID).Return(activeProduct(productID, "P1", 500, 5), nil)
	products.On("DecrementStock", mock.Anything, productID, 2).Return(true, nil)
	products.On("IncrementStock", mock.Anything, productID, 2).Return(nil)
	orders.On("Insert", mock.Anything, mock.Anything).Return(errors.New("write failed"))

	order, err := svc.CreateOrder(context.Background(), primitive.NewObjectID(), []OrderItemRequest{
		{Product: productID.Hex(), Quantity: 2},
	}, "addr", "")

	assert.Nil(t, order)
	assert.Error(t, err)
	products.AssertCalled(t, "IncrementStock", mock.Anything, productID, 2)
}

func TestCreatePaidOrderMarksPaymentCaptured(t *testing.T) {
	products := new(mocks.MockProductStore)
	orders := new(mocks.MockOrderStore)
	settings := new(mocks.MockSettingsStore)
	svc := NewOrderService(products, orders, settings, nil, testLogger())

	productID := primitive.NewObjectID()
	products.On("FindByID", mock.Anything, productID).Return(activeProduct(productID, "P1", 500, 5), nil)
	products.On("DecrementStock", mock.Anything, productID, 2).Return(true, nil)
	orders.On("Insert", mock.Anything, mock.Anything).Return(nil)

	order, err := svc.CreatePaidOrder(context.Background(), primitive.NewObjectID(), []OrderItemRequest{
		{Product: productID.Hex(), Quantity: 2},
	}, "addr", PaymentDetails{
		PaymentID:      "pay_123",
		GatewayOrderID: "order_abc",
		Signature:      "sig",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentMethodOnline, order.PaymentMethod)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	assert.Equal(t, "pay_123", order.PaymentID)
	assert.Equal(t, "order_abc", order.PaymentGatewayOrderID)
	assert.Equal(t, 1000.0, order.TotalAmount)
}

func TestPriceItemsDoesNotPersist(t *testing.T) {
	products := new(mocks.MockProductStore)
	orders := new(mocks.MockOrderStore)
	settings := new(mocks.MockSettingsStore)
	svc := NewOrderService(products, orders, settings, nil, testLogger())

	productID := primitive.NewObjectID()
	products.On("FindByID", mock.Anything, productID).Return(activeProduct(productID, "P1", 499.99, 5), nil)

	items, total, err := svc.PriceItems(context.Background(), []OrderItemRequest{
		{Product: productID.Hex(), Quantity: 2},
	})

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.InDelta(t, 999.98, total, 0.0001)
	products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUpdateStatus(t *testing.T) {
	orderID := primitive.NewObjectID()

	tests := []struct {
		name        string
		id          string
		status      string
		setup       func(orders *mocks.MockOrderStore)
		wantChanged bool
		wantErr     string
	}{
		{
			name:    "malformed id",
			id:      "nope",
			status:  models.StatusProcessing,
			setup:   func(_ *mocks.MockOrderStore) {},
			wantErr: ErrInvalidOrderID.Error(),
		},
		{
			name:    "unknown status",
			id:      orderID.Hex(),
			status:  "teleported",
			setup:   func(_ *mocks.MockOrderStore) {},
			wantErr: ErrInvalidOrderStatus.Error(),
		},
		{
			name:   "order not found",
			id:     orderID.Hex(),
			status: models.StatusProcessing,
			setup: func(orders *mocks.MockOrderStore) {
				orders.On("FindByID", mock.Anything, orderID).Return(nil, nil)
			},
			wantErr: ErrOrderNotFound.Error(),
		},
		{
			name:   "idempotent same status",
			id:     orderID.Hex(),
			status: models.StatusPending,
			setup: func(orders *mocks.MockOrderStore) {
				orders.On("FindByID", mock.Anything, orderID).
					Return(&models.Order{ID: orderID, Status: models.StatusPending}, nil)
			},
			wantChanged: false,
		},
		{
			name:   "pending straight to shipped rejected",
			id:     orderID.Hex(),
			status: models.StatusShipped,
			setup: func(orders *mocks.MockOrderStore) {
				orders.On("FindByID", mock.Anything, orderID).
					Return(&models.Order{ID: orderID, Status: models.StatusPending}, nil)
			},
			wantErr: `Cannot change status from "pending" to "shipped"`,
		},
		{
			name:   "delivered is terminal",
			id:     orderID.Hex(),
			status: models.StatusCancelled,
			setup: func(orders *mocks.MockOrderStore) {
				orders.On("FindByID", mock.Anything, orderID).
					Return(&models.Order{ID: orderID, Status: models.StatusDelivered}, nil)
			},
			wantErr: `Cannot change status from "delivered" to "cancelled"`,
		},
		{
			name:   "pending to processing",
			id:     orderID.Hex(),
			status: models.StatusProcessing,
			setup: func(orders *mocks.MockOrderStore) {
				orders.On("FindByID", mock.Anything, orderID).
					Return(&models.Order{ID: orderID, Status: models.StatusPending}, nil)
				orders.On("UpdateStatus", mock.Anything, orderID, models.StatusProcessing).
					Return(&models.Order{ID: orderID, Status: models.StatusProcessing}, nil)
			},
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(mocks.MockProductStore)
			orders := new(mocks.MockOrderStore)
			settings := new(mocks.MockSettingsStore)
			tt.setup(orders)
			svc := NewOrderService(products, orders, settings, nil, testLogger())

			order, changed, err := svc.UpdateStatus(context.Background(), tt.id, tt.status)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Nil(t, order)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, order)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestUpdateStatusFullLifecycle(t *testing.T) {
	orderID := primitive.NewObjectID()
	products := new(mocks.MockProductStore)
	orders := new(mocks.MockOrderStore)
	settings := new(mocks.MockSettingsStore)
	svc := NewOrderService(products, orders, settings, nil, testLogger())

	steps := []struct {
		from string
		to   string
	}{
		{models.StatusPending, models.StatusProcessing},
		{models.StatusProcessing, models.StatusShipped},
		{models.StatusShipped, models.StatusDelivered},
	}

	for _, step := range steps {
		orders.On("FindByID", mock.Anything, orderID).
			Return(&models.Order{ID: orderID, Status: step.from}, nil).Once()
		orders.On("UpdateStatus", mock.Anything, orderID, step.to).
			Return(&models.Order{ID: orderID, Status: step.to}, nil).Once()
	}

	for _, step := range steps {
		order, changed, err := svc.UpdateStatus(context.Background(), orderID.Hex(), step.to)
		assert.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, step.to, order.Status)
	}

	orders.AssertExpectations(t)
}
