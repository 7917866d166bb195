package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surajjj07/Ecommerce-website/repository"
)

type SettingsHandler struct {
	store repository.SettingsStore
}

func NewSettingsHandler(store repository.SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.store.GetSingleton(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var body struct {
		StoreName            *string `json:"storeName"`
		StoreEmail           *string `json:"storeEmail"`
		Phone                *string `json:"phone"`
		CODEnabled           *bool   `json:"codEnabled"`
		OnlinePaymentEnabled *bool   `json:"onlinePaymentEnabled"`
		OrderEmailNotify     *bool   `json:"orderEmailNotify"`
		OrderSMSNotify       *bool   `json:"orderSmsNotify"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	fields := map[string]interface{}{}
	if body.StoreName != nil {
		fields["storeName"] = *body.StoreName
	}
	if body.StoreEmail != nil {
		fields["storeEmail"] = *body.StoreEmail
	}
	if body.Phone != nil {
		fields["phone"] = *body.Phone
	}
	if body.CODEnabled != nil {
		fields["codEnabled"] = *body.CODEnabled
	}
	if body.OnlinePaymentEnabled != nil {
		fields["onlinePaymentEnabled"] = *body.OnlinePaymentEnabled
	}
	if body.OrderEmailNotify != nil {
		fields["orderEmailNotify"] = *body.OrderEmailNotify
	}
	if body.OrderSMSNotify != nil {
		fields["orderSmsNotify"] = *body.OrderSMSNotify
	}

	settings, err := h.store.Update(c.Request.Context(), fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings updated successfully", "settings": settings})
}
