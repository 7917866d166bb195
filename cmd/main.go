package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/surajjj07/Ecommerce-website/config"
	"github.com/surajjj07/Ecommerce-website/controllers"
	"github.com/surajjj07/Ecommerce-website/database"
	"github.com/surajjj07/Ecommerce-website/notify"
	"github.com/surajjj07/Ecommerce-website/payment"
	"github.com/surajjj07/Ecommerce-website/repository/mongodb"
	"github.com/surajjj07/Ecommerce-website/routes"
	"github.com/surajjj07/Ecommerce-website/services"
)

func main() {
	config.LoadEnv()
	logger := config.NewLogger()
	slog.SetDefault(logger)

	database.ConnectMongo()
	database.InitCollections()
	database.EnsureIndexes()

	productStore := mongodb.NewProductStore(database.ProductCollection)
	orderStore := mongodb.NewOrderStore(database.OrderCollection)
	settingsStore := mongodb.NewSettingsStore(database.SettingsCollection)
	userStore := mongodb.NewUserStore(database.UserCollection)

	notifier := notify.NewService(
		settingsStore,
		userStore,
		notify.NewSMTPMailer(config.SMTP()),
		notify.NewHTTPSMSSender(config.SMS()),
		logger,
	)

	orderService := services.NewOrderService(productStore, orderStore, settingsStore, notifier, logger)

	keyID, secret := config.RazorpayKeys()
	var gateway payment.Gateway
	if keyID != "" && secret != "" {
		gateway = payment.NewRazorpayGateway(keyID, secret)
	} else {
		logger.Warn("razorpay keys not set, online payments disabled")
	}
	paymentService := services.NewPaymentService(orderService, settingsStore, gateway, keyID, secret, logger)

	r := gin.Default()
	r.SetTrustedProxies(nil)

	routes.RegisterRoutes(r, routes.Handlers{
		Orders:   controllers.NewOrderHandler(orderService, logger),
		Payments: controllers.NewPaymentHandler(paymentService, logger),
		Settings: controllers.NewSettingsHandler(settingsStore),
		Invoices: controllers.NewInvoiceHandler(orderService, productStore, userStore, settingsStore, logger),
	})

	port := config.GetEnv("PORT", "8080")
	logger.Info("server listening", "port", port)
	if err := r.Run(":" + port); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
