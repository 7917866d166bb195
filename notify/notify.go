package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/surajjj07/Ecommerce-website/models"
	"github.com/surajjj07/Ecommerce-website/repository"
)

// Mailer delivers a single email. Implementations are fire-and-forget
// collaborators; the caller never retries.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers a single text message.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// Service dispatches order notifications gated by the store settings.
// Every failure here is logged and swallowed: notifications are a side
// effect, never part of the order's transactional boundary.
type Service struct {
	settings repository.SettingsStore
	users    repository.UserStore
	mailer   Mailer
	sms      SMSSender
	logger   *slog.Logger
}

func NewService(settings repository.SettingsStore, users repository.UserStore, mailer Mailer, sms SMSSender, logger *slog.Logger) *Service {
	return &Service{
		settings: settings,
		users:    users,
		mailer:   mailer,
		sms:      sms,
		logger:   logger,
	}
}

func (s *Service) OrderPlaced(ctx context.Context, order *models.Order) {
	subject := fmt.Sprintf("Order Confirmed - %s", order.OrderID)
	emailBody := fmt.Sprintf(
		"Thank you for your order!\nOrder ID: %s\nTotal: ₹%.2f\nWe will notify you once it is shipped.",
		order.OrderID, order.TotalAmount,
	)
	smsBody := fmt.Sprintf("Order %s confirmed. Total ₹%.2f.", order.OrderID, order.TotalAmount)

	s.dispatch(ctx, order, subject, emailBody, smsBody)
}

func (s *Service) OrderStatusChanged(ctx context.Context, order *models.Order, status string) {
	subject := fmt.Sprintf("Order %s - %s", order.OrderID, status)
	body := fmt.Sprintf("Your order status is now %q. Order ID: %s", status, order.OrderID)

	s.dispatch(ctx, order, subject, body, body)
}

func (s *Service) dispatch(ctx context.Context, order *models.Order, subject, emailBody, smsBody string) {
	settings, err := s.settings.GetSingleton(ctx)
	if err != nil {
		s.logger.Error("notification skipped: settings unavailable", "orderId", order.OrderID, "error", err)
		return
	}
	if !settings.OrderEmailNotify && !settings.OrderSMSNotify {
		return
	}

	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil || user == nil {
		s.logger.Error("notification skipped: user lookup failed", "orderId", order.OrderID, "error", err)
		return
	}

	if settings.OrderEmailNotify && user.Email != "" && s.mailer != nil {
		if err := s.mailer.Send(ctx, user.Email, subject, emailBody); err != nil {
			s.logger.Error("order email failed", "orderId", order.OrderID, "to", user.Email, "error", err)
		}
	}

	if settings.OrderSMSNotify && user.Phone != "" && s.sms != nil {
		if err := s.sms.Send(ctx, user.Phone, smsBody); err != nil {
			s.logger.Error("order sms failed", "orderId", order.OrderID, "to", user.Phone, "error", err)
		}
	}
}
