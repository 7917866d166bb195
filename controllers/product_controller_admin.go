package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/surajjj07/Ecommerce-website/database"
	"github.com/surajjj07/Ecommerce-website/models"
)

type productInput struct {
	Name          string   `json:"name"`
	SKU           string   `json:"sku"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discountPrice"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand"`
	Stock         int      `json:"stock"`
	Sizes         []string `json:"sizes"`
	Images        []string `json:"images"`
	Featured      bool     `json:"featured"`
	Bestseller    bool     `json:"bestseller"`
}

func AddProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if len(input.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "At least one product image is required"})
		return
	}

	sizes, invalidSizes := models.NormalizeSizes(input.Sizes)
	if len(invalidSizes) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Invalid sizes: %s", strings.Join(invalidSizes, ", ")),
		})
		return
	}

	now := time.Now()
	product := models.Product{
		ID:            primitive.NewObjectID(),
		Name:          strings.TrimSpace(input.Name),
		SKU:           models.NormalizeSKU(input.SKU),
		Description:   input.Description,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Category:      strings.TrimSpace(input.Category),
		Brand:         strings.TrimSpace(input.Brand),
		Stock:         input.Stock,
		Sizes:         sizes,
		Images:        input.Images,
		Featured:      input.Featured,
		Bestseller:    input.Bestseller,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := product.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.ProductCollection.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "SKU already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product added successfully", "product": product})
}

func GetProductsAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.ProductCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Fetch products success",
		"count":    len(products),
		"products": products,
	})
}

func UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	var body struct {
		Name          *string   `json:"name"`
		SKU           *string   `json:"sku"`
		Description   *string   `json:"description"`
		Price         *float64  `json:"price"`
		DiscountPrice *float64  `json:"discountPrice"`
		Category      *string   `json:"category"`
		Brand         *string   `json:"brand"`
		Stock         *int      `json:"stock"`
		Sizes         *[]string `json:"sizes"`
		Images        *[]string `json:"images"`
		Featured      *bool     `json:"featured"`
		Bestseller    *bool     `json:"bestseller"`
		IsActive      *bool     `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing models.Product
	if err := database.ProductCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	// Apply the patch to the loaded document first so the price and
	// discount invariant is checked against the final values.
	if body.Name != nil {
		existing.Name = strings.TrimSpace(*body.Name)
	}
	if body.SKU != nil {
		existing.SKU = models.NormalizeSKU(*body.SKU)
	}
	if body.Description != nil {
		existing.Description = *body.Description
	}
	if body.Price != nil {
		existing.Price = *body.Price
	}
	if body.DiscountPrice != nil {
		existing.DiscountPrice = *body.DiscountPrice
	}
	if body.Category != nil {
		existing.Category = strings.TrimSpace(*body.Category)
	}
	if body.Brand != nil {
		existing.Brand = strings.TrimSpace(*body.Brand)
	}
	if body.Stock != nil {
		existing.Stock = *body.Stock
	}
	if body.Featured != nil {
		existing.Featured = *body.Featured
	}
	if body.Bestseller != nil {
		existing.Bestseller = *body.Bestseller
	}
	if body.IsActive != nil {
		existing.IsActive = *body.IsActive
	}
	if body.Images != nil {
		if len(*body.Images) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "At least one product image is required"})
			return
		}
		existing.Images = *body.Images
	}
	if body.Sizes != nil {
		sizes, invalidSizes := models.NormalizeSizes(*body.Sizes)
		if len(invalidSizes) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": fmt.Sprintf("Invalid sizes: %s", strings.Join(invalidSizes, ", ")),
			})
			return
		}
		existing.Sizes = sizes
	}

	if err := existing.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	existing.UpdatedAt = time.Now()

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var updated models.Product
	err = database.ProductCollection.FindOneAndReplace(ctx, bson.M{"_id": objID}, existing, opts).Decode(&updated)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "SKU already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": updated})
}

// DeleteProduct soft-deletes: the product disappears from the
// storefront but order history keeps resolving its id.
func DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
	result, err := database.ProductCollection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted", "id": id})
}
