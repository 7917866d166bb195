package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/surajjj07/Ecommerce-website/database"
	"github.com/surajjj07/Ecommerce-website/models"
)

// unitPrice is what the storefront charges: the discount price when one
// is set, the list price otherwise.
func unitPrice(p models.Product) float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

func AddToCart(c *gin.Context) {
	var body struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	userId, _ := c.Get("userId")
	objUserID, _ := primitive.ObjectIDFromHex(userId.(string))
	objProductID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid productId"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	err = database.ProductCollection.FindOne(ctx, bson.M{"_id": objProductID}).Decode(&product)
	if err != nil || !product.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	if body.Quantity > product.Stock {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity exceeds available stock"})
		return
	}

	// One cart row per (user, product): adding again replaces quantity.
	filter := bson.M{"userId": objUserID, "productId": objProductID}
	update := bson.M{
		"$set":         bson.M{"quantity": body.Quantity},
		"$setOnInsert": bson.M{"userId": objUserID, "productId": objProductID, "createdAt": time.Now()},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := database.CartCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Added to cart",
		"data": gin.H{
			"productId": objProductID.Hex(),
			"quantity":  body.Quantity,
			"product": gin.H{
				"name":  product.Name,
				"price": unitPrice(product),
				"stock": product.Stock,
			},
			"subtotal": float64(body.Quantity) * unitPrice(product),
		},
	})
}

func GetCart(c *gin.Context) {
	userId, _ := c.Get("userId")
	objUserID, _ := primitive.ObjectIDFromHex(userId.(string))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.CartCollection.Find(ctx, bson.M{"userId": objUserID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cart"})
		return
	}

	var cartItems []models.CartItem
	if err := cursor.All(ctx, &cartItems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cart"})
		return
	}

	items := []gin.H{}
	var total float64
	for _, item := range cartItems {
		var product models.Product
		err := database.ProductCollection.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if err != nil || !product.IsActive {
			continue
		}

		subtotal := float64(item.Quantity) * unitPrice(product)
		total += subtotal
		items = append(items, gin.H{
			"productId":   item.ProductID.Hex(),
			"productName": product.Name,
			"price":       unitPrice(product),
			"quantity":    item.Quantity,
			"stock":       product.Stock,
			"subtotal":    subtotal,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

func UpdateCart(c *gin.Context) {
	userIDHex := c.MustGet("userId").(string)
	userID, _ := primitive.ObjectIDFromHex(userIDHex)

	productId := c.Param("productId")
	productObjID, err := primitive.ObjectIDFromHex(productId)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid productId"})
		return
	}

	var body struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || *body.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid quantity"})
		return
	}
	quantity := *body.Quantity

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cartItem models.CartItem
	err = database.CartCollection.FindOne(ctx, bson.M{"userId": userID, "productId": productObjID}).Decode(&cartItem)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found in cart"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cart"})
		}
		return
	}

	if quantity == 0 {
		if _, err := database.CartCollection.DeleteOne(ctx, bson.M{"userId": userID, "productId": productObjID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove product from cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart"})
		return
	}

	var product models.Product
	if err := database.ProductCollection.FindOne(ctx, bson.M{"_id": productObjID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	if quantity > product.Stock {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity exceeds available stock"})
		return
	}

	filter := bson.M{"userId": userID, "productId": productObjID}
	update := bson.M{"$set": bson.M{"quantity": quantity}}

	if _, err := database.CartCollection.UpdateOne(ctx, filter, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data": gin.H{
			"productId": productObjID.Hex(),
			"quantity":  quantity,
			"subtotal":  float64(quantity) * unitPrice(product),
		},
	})
}

func RemoveFromCart(c *gin.Context) {
	userIDHex := c.MustGet("userId").(string)
	userID, _ := primitive.ObjectIDFromHex(userIDHex)

	productId := c.Param("productId")
	productObjID, err := primitive.ObjectIDFromHex(productId)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid productId"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.CartCollection.DeleteOne(ctx, bson.M{
		"userId":    userID,
		"productId": productObjID,
	})
	if err != nil || result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found in cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart", "productId": productObjID.Hex()})
}
