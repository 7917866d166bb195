package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surajjj07/Ecommerce-website/invoice"
	"github.com/surajjj07/Ecommerce-website/repository"
	"github.com/surajjj07/Ecommerce-website/services"
)

type InvoiceHandler struct {
	orders   *services.OrderService
	products repository.ProductStore
	users    repository.UserStore
	settings repository.SettingsStore
	logger   *slog.Logger
}

func NewInvoiceHandler(orders *services.OrderService, products repository.ProductStore, users repository.UserStore, settings repository.SettingsStore, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		orders:   orders,
		products: products,
		users:    users,
		settings: settings,
		logger:   logger,
	}
}

// GenerateInvoicePDF streams a PDF invoice. Non-admin callers may only
// invoice their own orders.
func (h *InvoiceHandler) GenerateInvoicePDF(c *gin.Context) {
	ctx := c.Request.Context()

	order, err := h.orders.GetOrder(ctx, c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	role, _ := c.Get("role")
	if role != "admin" {
		userIDHex, ok := currentUserID(c)
		if !ok || order.UserID.Hex() != userIDHex {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}
	}

	user, err := h.users.FindByID(ctx, order.UserID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	settings, err := h.settings.GetSingleton(ctx)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	names := map[string]string{}
	for _, item := range order.Items {
		product, err := h.products.FindByID(ctx, item.ProductID)
		if err != nil || product == nil {
			continue
		}
		names[item.ProductID.Hex()] = product.Name
	}

	pdf, err := invoice.Render(order, user, settings, names)
	if err != nil {
		h.logger.Error("invoice render failed", "orderId", order.OrderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate invoice"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoice-`+order.OrderID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
