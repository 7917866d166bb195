package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
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

func fixture() (*Service, *mocks.MockSettingsStore, *mocks.MockUserStore, *mocks.MockMailer, *mocks.MockSMSSender) {
	settings := new(mocks.MockSettingsStore)
	users := new(mocks.MockUserStore)
	mailer := new(mocks.MockMailer)
	sms := new(mocks.MockSMSSender)
	svc := NewService(settings, users, mailer, sms, testLogger())
	return svc, settings, users, mailer, sms
}

func testOrder(userID primitive.ObjectID) *models.Order {
	return &models.Order{
		OrderID:     "ORD-1700000000000-4242",
		UserID:      userID,
		TotalAmount: 1000,
		Status:      models.StatusPending,
	}
}

func settingsWith(email, sms bool) *models.Settings {
	s := models.DefaultSettings()
	s.OrderEmailNotify = email
	s.OrderSMSNotify = sms
	return &s
}

func TestOrderPlacedChannelGating(t *testing.T) {
	userID := primitive.NewObjectID()
	user := &models.User{ID: userID, Email: "buyer@example.com", Phone: "+911234567890"}

	tests := []struct {
		name      string
		settings  *models.Settings
		wantEmail bool
		wantSMS   bool
	}{
		{"email only", settingsWith(true, false), true, false},
		{"sms only", settingsWith(false, true), false, true},
		{"both channels", settingsWith(true, true), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, settings, users, mailer, sms := fixture()
			settings.On("GetSingleton", mock.Anything).Return(tt.settings, nil)
			users.On("FindByID", mock.Anything, userID).Return(user, nil)
			if tt.wantEmail {
				mailer.On("Send", mock.Anything, user.Email, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
			}
			if tt.wantSMS {
				sms.On("Send", mock.Anything, user.Phone, mock.AnythingOfType("string")).Return(nil)
			}

			svc.OrderPlaced(context.Background(), testOrder(userID))

			mailer.AssertExpectations(t)
			sms.AssertExpectations(t)
			if !tt.wantEmail {
				mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			if !tt.wantSMS {
				sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOrderPlacedBothChannelsOff(t *testing.T) {
	svc, settings, users, mailer, sms := fixture()
	settings.On("GetSingleton", mock.Anything).Return(settingsWith(false, false), nil)

	svc.OrderPlaced(context.Background(), testOrder(primitive.NewObjectID()))

	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderPlacedSkipsMissingContactFields(t *testing.T) {
	userID := primitive.NewObjectID()

	svc, settings, users, mailer, sms := fixture()
	settings.On("GetSingleton", mock.Anything).Return(settingsWith(true, true), nil)
	users.On("FindByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)

	svc.OrderPlaced(context.Background(), testOrder(userID))

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderPlacedSwallowsDeliveryFailures(t *testing.T) {
	userID := primitive.NewObjectID()
	user := &models.User{ID: userID, Email: "buyer@example.com", Phone: "+911234567890"}

	svc, settings, users, mailer, sms := fixture()
	settings.On("GetSingleton", mock.Anything).Return(settingsWith(true, true), nil)
	users.On("FindByID", mock.Anything, userID).Return(user, nil)
	mailer.On("Send", mock.Anything, user.Email, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	sms.On("Send", mock.Anything, user.Phone, mock.Anything).Return(errors.New("gateway down"))

	assert.NotPanics(t, func() {
		svc.OrderPlaced(context.Background(), testOrder(userID))
	})

	// Email failure must not stop the SMS attempt.
	sms.AssertCalled(t, "Send", mock.Anything, user.Phone, mock.Anything)
}

func TestOrderPlacedSkipsWhenSettingsUnavailable(t *testing.T) {
	svc, settings, users, mailer, _ := fixture()
	settings.On("GetSingleton", mock.Anything).Return(nil, errors.New("db down"))

	assert.NotPanics(t, func() {
		svc.OrderPlaced(context.Background(), testOrder(primitive.NewObjectID()))
	})

	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderStatusChangedMentionsStatus(t *testing.T) {
	userID := primitive.NewObjectID()
	user := &models.User{ID: userID, Email: "buyer@example.com"}

	svc, settings, users, mailer, _ := fixture()
	settings.On("GetSingleton", mock.Anything).Return(settingsWith(true, false), nil)
	users.On("FindByID", mock.Anything, userID).Return(user, nil)

	var subject string
	mailer.On("Send", mock.Anything, user.Email, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { subject = args.String(2) }).
		Return(nil)

	order := testOrder(userID)
	svc.OrderStatusChanged(context.Background(), order, models.StatusShipped)

	assert.Contains(t, subject, order.OrderID)
	assert.Contains(t, subject, models.StatusShipped)
}
