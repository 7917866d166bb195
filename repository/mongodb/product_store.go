package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/surajjj07/Ecommerce-website/models"
)

type ProductStore struct {
	col *mongo.Collection
}

func NewProductStore(col *mongo.Collection) *ProductStore {
	return &ProductStore{col: col}
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find product")
	}
	return &product, nil
}

func (s *ProductStore) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	result, err := s.col.UpdateOne(
		ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return false, errors.Wrap(err, "decrement stock")
	}
	return result.ModifiedCount > 0, nil
}

func (s *ProductStore) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := s.col.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": qty}},
	)
	return errors.Wrap(err, "increment stock")
}
