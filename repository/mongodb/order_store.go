package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/surajjj07/Ecommerce-website/models"
)

type OrderStore struct {
	col *mongo.Collection
}

func NewOrderStore(col *mongo.Collection) *OrderStore {
	return &OrderStore{col: col}
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, order)
	return errors.Wrap(err, "insert order")
}

func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find order")
	}
	return &order, nil
}

func (s *OrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"userId": userID})
}

func (s *OrderStore) FindActive(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{"status": bson.M{"$ne": models.StatusDelivered}})
}

func (s *OrderStore) FindCompleted(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{"status": models.StatusDelivered})
}

func (s *OrderStore) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find orders")
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	return orders, nil
}

func (s *OrderStore) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{
		"status":    models.StatusDelivered,
		"createdAt": bson.M{"$gte": since},
	})
	return count, errors.Wrap(err, "count completed orders")
}

func (s *OrderStore) ProfitSince(ctx context.Context, since time.Time) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    models.StatusDelivered,
			"createdAt": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"totalProfit": bson.M{"$sum": "$totalAmount"},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, errors.Wrap(err, "aggregate profit")
	}

	var results []struct {
		TotalProfit float64 `bson:"totalProfit"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, errors.Wrap(err, "decode profit")
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].TotalProfit, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Order
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "update order status")
	}
	return &updated, nil
}
