package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surajjj07/Ecommerce-website/models"
	"github.com/surajjj07/Ecommerce-website/notify"
	"github.com/surajjj07/Ecommerce-website/repository"
)

// OrderItemRequest is one requested line: a product reference and a
// quantity. Prices are never taken from the client.
type OrderItemRequest struct {
	Product  string `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// PaymentDetails are the gateway identifiers attached to an order
// created through a verified online payment.
type PaymentDetails struct {
	PaymentID      string
	GatewayOrderID string
	Signature      string
}

type OrderService struct {
	products repository.ProductStore
	orders   repository.OrderStore
	settings repository.SettingsStore
	notifier *notify.Service
	logger   *slog.Logger
}

func NewOrderService(products repository.ProductStore, orders repository.OrderStore, settings repository.SettingsStore, notifier *notify.Service, logger *slog.Logger) *OrderService {
	return &OrderService{
		products: products,
		orders:   orders,
		settings: settings,
		notifier: notifier,
		logger:   logger,
	}
}

type pricedLine struct {
	item models.OrderItem
	name string
}

// priceLines validates every requested line against the live catalog
// and snapshots current prices. Any bad line fails the whole request.
func (s *OrderService) priceLines(ctx context.Context, items []OrderItemRequest) ([]pricedLine, float64, error) {
	if len(items) == 0 {
		return nil, 0, ErrProductsRequired
	}

	var lines []pricedLine
	var total float64

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, 0, ErrInvalidQuantity
		}

		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			return nil, 0, &ProductUnavailableError{Ref: item.Product}
		}

		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return nil, 0, err
		}
		if product == nil || !product.IsActive {
			return nil, 0, &ProductUnavailableError{Ref: item.Product}
		}
		if product.Stock < item.Quantity {
			return nil, 0, &InsufficientStockError{Name: product.Name}
		}

		lines = append(lines, pricedLine{
			item: models.OrderItem{
				ProductID: productID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			},
			name: product.Name,
		})
		total += product.Price * float64(item.Quantity)
	}

	return lines, total, nil
}

// PriceItems computes the authoritative order total from current
// catalog state without persisting anything. Payment intents use it so
// the gateway amount can never be tampered with client-side.
func (s *OrderService) PriceItems(ctx context.Context, items []OrderItemRequest) ([]models.OrderItem, float64, error) {
	lines, total, err := s.priceLines(ctx, items)
	if err != nil {
		return nil, 0, err
	}

	snapshot := make([]models.OrderItem, len(lines))
	for i, line := range lines {
		snapshot[i] = line.item
	}
	return snapshot, total, nil
}

// CreateOrder places a cash-on-delivery or not-yet-paid online order.
func (s *OrderService) CreateOrder(ctx context.Context, userID primitive.ObjectID, items []OrderItemRequest, shippingAddress, paymentMethod string) (*models.Order, error) {
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCOD
	}
	if paymentMethod != models.PaymentMethodCOD && paymentMethod != models.PaymentMethodOnline {
		return nil, ErrInvalidPaymentMethod
	}

	settings, err := s.settings.GetSingleton(ctx)
	if err != nil {
		return nil, err
	}
	if paymentMethod == models.PaymentMethodCOD && !settings.CODEnabled {
		return nil, ErrCODDisabled
	}
	if paymentMethod == models.PaymentMethodOnline && !settings.OnlinePaymentEnabled {
		return nil, ErrOnlinePaymentDisabled
	}

	return s.create(ctx, userID, items, shippingAddress, paymentMethod, nil)
}

// CreatePaidOrder persists an order whose online payment has already
// been verified. Items and total are still re-derived from the catalog.
func (s *OrderService) CreatePaidOrder(ctx context.Context, userID primitive.ObjectID, items []OrderItemRequest, shippingAddress string, details PaymentDetails) (*models.Order, error) {
	return s.create(ctx, userID, items, shippingAddress, models.PaymentMethodOnline, &details)
}

func (s *OrderService) create(ctx context.Context, userID primitive.ObjectID, items []OrderItemRequest, shippingAddress, paymentMethod string, paid *PaymentDetails) (*models.Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, ErrShippingAddressRequired
	}

	lines, total, err := s.priceLines(ctx, items)
	if err != nil {
		return nil, err
	}

	reserved, err := s.reserveStock(ctx, lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		OrderID:         newOrderID(),
		UserID:          userID,
		Items:           make([]models.OrderItem, len(lines)),
		TotalAmount:     total,
		Status:          models.StatusPending,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   models.PaymentPending,
		ShippingAddress: strings.TrimSpace(shippingAddress),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i, line := range lines {
		order.Items[i] = line.item
	}
	if paid != nil {
		order.PaymentStatus = models.PaymentPaid
		order.PaymentID = paid.PaymentID
		order.PaymentGatewayOrderID = paid.GatewayOrderID
		order.PaymentSignature = paid.Signature
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.releaseStock(ctx, reserved)
		return nil, err
	}

	s.notifyAsync(order, func(ctx context.Context) {
		s.notifier.OrderPlaced(ctx, order)
	})

	return order, nil
}

// reserveStock decrements every line atomically (decrement only while
// stock >= quantity). A failed line rolls back the lines reserved
// before it, so an order never partially consumes inventory.
func (s *OrderService) reserveStock(ctx context.Context, lines []pricedLine) ([]pricedLine, error) {
	var reserved []pricedLine
	for _, line := range lines {
		ok, err := s.products.DecrementStock(ctx, line.item.ProductID, line.item.Quantity)
		if err != nil {
			s.releaseStock(ctx, reserved)
			return nil, err
		}
		if !ok {
			s.releaseStock(ctx, reserved)
			return nil, &InsufficientStockError{Name: line.name}
		}
		reserved = append(reserved, line)
	}
	return reserved, nil
}

func (s *OrderService) releaseStock(ctx context.Context, reserved []pricedLine) {
	for _, line := range reserved {
		if err := s.products.IncrementStock(ctx, line.item.ProductID, line.item.Quantity); err != nil {
			s.logger.Error("stock rollback failed", "productId", line.item.ProductID.Hex(), "error", err)
		}
	}
}

// UpdateStatus drives the order state machine. Returns the order and
// whether the status actually changed (re-applying the current status
// is a successful no-op).
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, bool, error) {
	objID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, false, ErrInvalidOrderID
	}
	if !models.ValidOrderStatus(status) {
		return nil, false, ErrInvalidOrderStatus
	}

	order, err := s.orders.FindByID(ctx, objID)
	if err != nil {
		return nil, false, err
	}
	if order == nil {
		return nil, false, ErrOrderNotFound
	}

	if order.Status == status {
		return order, false, nil
	}
	if !CanTransition(order.Status, status) {
		return nil, false, &InvalidTransitionError{From: order.Status, To: status}
	}

	updated, err := s.orders.UpdateStatus(ctx, objID, status)
	if err != nil {
		return nil, false, err
	}
	if updated == nil {
		return nil, false, ErrOrderNotFound
	}

	if status == models.StatusShipped || status == models.StatusDelivered {
		s.notifyAsync(updated, func(ctx context.Context) {
			s.notifier.OrderStatusChanged(ctx, updated, status)
		})
	}

	return updated, true, nil
}

func (s *OrderService) UserOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// ActiveOrders lists everything an admin still has to act on; delivered
// orders drop out of this view.
func (s *OrderService) ActiveOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindActive(ctx)
}

func (s *OrderService) CompletedOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindCompleted(ctx)
}

func (s *OrderService) CompletedCountLastMonth(ctx context.Context) (int64, error) {
	return s.orders.CountCompletedSince(ctx, time.Now().AddDate(0, -1, 0))
}

func (s *OrderService) ProfitLastMonth(ctx context.Context) (float64, error) {
	return s.orders.ProfitSince(ctx, time.Now().AddDate(0, -1, 0))
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	objID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, ErrInvalidOrderID
	}
	order, err := s.orders.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// notifyAsync runs a notification outside the request path with its own
// deadline; delivery failures never reach the caller.
func (s *OrderService) notifyAsync(order *models.Order, fn func(ctx context.Context)) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		fn(ctx)
	}()
}

// newOrderID builds the human-readable id: millisecond timestamp plus a
// four digit suffix. The unique index on orderId backstops the
// improbable collision.
func newOrderID() string {
	return fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), rand.Intn(9000)+1000)
}
