package models

import "time"

// SettingsID is the fixed document key of the one settings document.
const SettingsID = "store-settings"

type Settings struct {
	ID                   string    `bson:"_id" json:"id"`
	StoreName            string    `bson:"storeName" json:"storeName"`
	StoreEmail           string    `bson:"storeEmail" json:"storeEmail"`
	Phone                string    `bson:"phone" json:"phone"`
	CODEnabled           bool      `bson:"codEnabled" json:"codEnabled"`
	OnlinePaymentEnabled bool      `bson:"onlinePaymentEnabled" json:"onlinePaymentEnabled"`
	OrderEmailNotify     bool      `bson:"orderEmailNotify" json:"orderEmailNotify"`
	OrderSMSNotify       bool      `bson:"orderSmsNotify" json:"orderSmsNotify"`
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time `bson:"updatedAt" json:"updatedAt"`
}

func DefaultSettings() Settings {
	now := time.Now()
	return Settings{
		ID:                   SettingsID,
		CODEnabled:           true,
		OnlinePaymentEnabled: true,
		OrderEmailNotify:     true,
		OrderSMSNotify:       false,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}
