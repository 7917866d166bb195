package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surajjj07/Ecommerce-website/services"
)

type OrderHandler struct {
	svc    *services.OrderService
	logger *slog.Logger
}

func NewOrderHandler(svc *services.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, logger: logger}
}

type createOrderRequest struct {
	Products        []services.OrderItemRequest `json:"products"`
	ShippingAddress string                      `json:"shippingAddress"`
	PaymentMethod   string                      `json:"paymentMethod"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userIDHex, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token required"})
		return
	}
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	var body createOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": services.ErrProductsRequired.Error()})
		return
	}

	order, err := h.svc.CreateOrder(c.Request.Context(), userID, body.Products, body.ShippingAddress, body.PaymentMethod)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": order})
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	userIDHex, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token required"})
		return
	}
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	orders, err := h.svc.UserOrders(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) AllOrders(c *gin.Context) {
	orders, err := h.svc.ActiveOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) CompletedOrders(c *gin.Context) {
	orders, err := h.svc.CompletedOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) CompletedOrdersCountLastMonth(c *gin.Context) {
	count, err := h.svc.CompletedCountLastMonth(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *OrderHandler) ProfitLastMonth(c *gin.Context) {
	totalProfit, err := h.svc.ProfitLastMonth(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"totalProfit": totalProfit})
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": services.ErrInvalidOrderStatus.Error()})
		return
	}

	order, changed, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	message := "Order status updated"
	if !changed {
		message = "Order status unchanged"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "order": order})
}
