package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/surajjj07/Ecommerce-website/controllers"
	"github.com/surajjj07/Ecommerce-website/middleware"
)

type Handlers struct {
	Orders   *controllers.OrderHandler
	Payments *controllers.PaymentHandler
	Settings *controllers.SettingsHandler
	Invoices *controllers.InvoiceHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/signup", controllers.Signup)
			users.POST("/login", controllers.Login)
			users.POST("/logout", middleware.AuthMiddleware(), controllers.Logout)
			users.GET("/profile", middleware.AuthMiddleware(), controllers.GetProfile)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/signup", controllers.AdminSignup)
			admin.POST("/login", controllers.AdminLogin)

			protected := admin.Group("/")
			protected.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
			{
				protected.POST("/logout", controllers.Logout)
				protected.GET("/profile", controllers.GetProfile)
				protected.GET("/dashboard", controllers.GetAdminDashboard)
				protected.GET("/settings", h.Settings.GetSettings)
				protected.PUT("/settings", h.Settings.UpdateSettings)
			}
		}

		expenses := api.Group("/expenses")
		expenses.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			expenses.POST("", controllers.AddExpense)
			expenses.GET("", controllers.GetExpenses)
		}

		products := api.Group("/products")
		{
			products.POST("/add", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.AddProduct)
			products.GET("/admin/all", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.GetProductsAdmin)
			products.PUT("/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.UpdateProduct)
			products.DELETE("/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.DeleteProduct)

			products.GET("/all", controllers.GetProductsPublic)
			products.GET("/search", controllers.SearchProducts)
			products.GET("/category/:category", controllers.GetProductsByCategory)
			products.GET("/:id", controllers.GetProductByID)
		}

		categories := api.Group("/categories")
		{
			categories.GET("/all", controllers.GetAllCategories)
			categories.POST("/add", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.AddCategory)
		}

		cart := api.Group("/cart")
		cart.Use(middleware.AuthMiddleware())
		{
			cart.POST("", controllers.AddToCart)
			cart.GET("", controllers.GetCart)
			cart.PUT("/:productId", controllers.UpdateCart)
			cart.DELETE("/:productId", controllers.RemoveFromCart)
		}

		orders := api.Group("/orders")
		{
			user := orders.Group("/")
			user.Use(middleware.AuthMiddleware())
			{
				user.POST("/create", h.Orders.CreateOrder)
				user.POST("/payment/create-order", h.Payments.CreateRazorpayOrder)
				user.POST("/payment/verify", h.Payments.VerifyPayment)
				user.GET("/my-orders", h.Orders.MyOrders)
			}

			adminOrders := orders.Group("/")
			adminOrders.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
			{
				adminOrders.GET("/all", h.Orders.AllOrders)
				adminOrders.GET("/completed", h.Orders.CompletedOrders)
				adminOrders.GET("/completed/count-last-month", h.Orders.CompletedOrdersCountLastMonth)
				adminOrders.GET("/profit-last-month", h.Orders.ProfitLastMonth)
				adminOrders.PUT("/:id/status", h.Orders.UpdateOrderStatus)
			}
		}

		api.GET("/invoice/:id", middleware.AuthMiddleware(), h.Invoices.GenerateInvoicePDF)
	}
}
