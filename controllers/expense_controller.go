package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/surajjj07/Ecommerce-website/database"
	"github.com/surajjj07/Ecommerce-website/models"
)

func AddExpense(c *gin.Context) {
	var body struct {
		Title  string   `json:"title"`
		Amount *float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || *body.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid amount is required"})
		return
	}

	expense := models.Expense{
		ID:        primitive.NewObjectID(),
		Title:     strings.TrimSpace(body.Title),
		Amount:    *body.Amount,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.ExpenseCollection.InsertOne(ctx, expense); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add expense"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "expense": expense})
}

func GetExpenses(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.ExpenseCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch expenses"})
		return
	}

	expenses := []models.Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch expenses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "expenses": expenses})
}

// GetAdminDashboard sums revenue over orders that brought money in and
// nets it against the expense ledger.
func GetAdminDashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	revenuePipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": []bson.M{
			{"paymentStatus": models.PaymentPaid},
			{"status": bson.M{"$in": []string{models.StatusShipped, models.StatusDelivered}}},
		}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalRevenue": bson.M{"$sum": "$totalAmount"},
		}}},
	}

	totalRevenue, err := sumPipeline(ctx, database.OrderCollection, revenuePipeline, "totalRevenue")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Dashboard data fetch failed"})
		return
	}

	expensePipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalExpenses": bson.M{"$sum": "$amount"},
		}}},
	}

	totalExpenses, err := sumPipeline(ctx, database.ExpenseCollection, expensePipeline, "totalExpenses")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Dashboard data fetch failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"totalRevenue":  totalRevenue,
			"totalExpenses": totalExpenses,
			"profit":        totalRevenue - totalExpenses,
		},
	})
}

func sumPipeline(ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline, field string) (float64, error) {
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}

	switch v := results[0][field].(type) {
	case float64:
		return v, nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, nil
}
