package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surajjj07/Ecommerce-website/services"
)

type PaymentHandler struct {
	svc    *services.PaymentService
	logger *slog.Logger
}

func NewPaymentHandler(svc *services.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, logger: logger}
}

// CreateRazorpayOrder prices the cart server-side and opens a gateway
// payment intent; nothing is persisted until verification.
func (h *PaymentHandler) CreateRazorpayOrder(c *gin.Context) {
	var body createOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": services.ErrProductsRequired.Error()})
		return
	}

	intent, err := h.svc.CreateIntent(c.Request.Context(), body.Products, body.ShippingAddress)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": intent})
}

func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
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

	var body struct {
		Products          []services.OrderItemRequest `json:"products"`
		ShippingAddress   string                      `json:"shippingAddress"`
		RazorpayOrderID   string                      `json:"razorpay_order_id"`
		RazorpayPaymentID string                      `json:"razorpay_payment_id"`
		RazorpaySignature string                      `json:"razorpay_signature"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": services.ErrPaymentVerification.Error()})
		return
	}

	order, err := h.svc.VerifyAndCreateOrder(
		c.Request.Context(),
		userID,
		body.Products,
		body.ShippingAddress,
		body.RazorpayOrderID,
		body.RazorpayPaymentID,
		body.RazorpaySignature,
	)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Payment verified and order created", "order": order})
}
