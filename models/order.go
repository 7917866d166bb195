package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

const (
	PaymentMethodOnline = "online"
	PaymentMethodCOD    = "cod"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

type Order struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID               string             `bson:"orderId" json:"orderId"`
	UserID                primitive.ObjectID `bson:"userId" json:"userId"`
	Items                 []OrderItem        `bson:"items" json:"items"`
	TotalAmount           float64            `bson:"totalAmount" json:"totalAmount"`
	Status                string             `bson:"status" json:"status"`
	PaymentMethod         string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus         string             `bson:"paymentStatus" json:"paymentStatus"`
	PaymentID             string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	PaymentGatewayOrderID string             `bson:"paymentGatewayOrderId,omitempty" json:"paymentGatewayOrderId,omitempty"`
	PaymentSignature      string             `bson:"paymentSignature,omitempty" json:"paymentSignature,omitempty"`
	ShippingAddress       string             `bson:"shippingAddress" json:"shippingAddress"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderItem snapshots the unit price at order time; it is never
// re-read from the catalog afterwards.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

func ValidOrderStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
