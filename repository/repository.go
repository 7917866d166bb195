package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surajjj07/Ecommerce-website/models"
)

// ProductStore is the read/adjust surface of the catalog consumed by
// the order workflow. FindByID returns (nil, nil) for unknown ids.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// DecrementStock subtracts qty only while stock >= qty and reports
	// whether a document was actually updated.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindActive(ctx context.Context) ([]models.Order, error)
	FindCompleted(ctx context.Context) ([]models.Order, error)
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
	ProfitSince(ctx context.Context, since time.Time) (float64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
}

// SettingsStore hands out the single store-wide settings document,
// creating it with defaults when absent.
type SettingsStore interface {
	GetSingleton(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, fields map[string]interface{}) (*models.Settings, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}
