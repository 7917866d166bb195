package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/surajjj07/Ecommerce-website/models"
)

type SettingsStore struct {
	col *mongo.Collection
}

func NewSettingsStore(col *mongo.Collection) *SettingsStore {
	return &SettingsStore{col: col}
}

// GetSingleton upserts against the fixed settings key, so concurrent
// first reads all converge on the same document.
func (s *SettingsStore) GetSingleton(ctx context.Context) (*models.Settings, error) {
	defaults := models.DefaultSettings()
	update := bson.M{"$setOnInsert": defaults}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var settings models.Settings
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": models.SettingsID}, update, opts).Decode(&settings)
	if err != nil {
		return nil, errors.Wrap(err, "load settings")
	}
	return &settings, nil
}

func (s *SettingsStore) Update(ctx context.Context, fields map[string]interface{}) (*models.Settings, error) {
	if _, err := s.GetSingleton(ctx); err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	for key, value := range fields {
		set[key] = value
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var settings models.Settings
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": models.SettingsID}, bson.M{"$set": set}, opts).Decode(&settings)
	if err != nil {
		return nil, errors.Wrap(err, "update settings")
	}
	return &settings, nil
}
