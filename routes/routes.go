package routes

import (
	"log"

	"wakeup-cafe/controllers"
	"wakeup-cafe/middleware"
	"wakeup-cafe/models"
	"wakeup-cafe/repositories"
	"wakeup-cafe/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	carts := services.NewCartManager()
	orderRepo := repositories.NewOrderRepository()
	productRepo := repositories.NewProductRepository()
	feedbackRepo := repositories.NewFeedbackRepository()

	mailer, err := models.NewEmailService()
	if err != nil {
		log.Println("Email disabled:", err)
	}

	authCtrl := &controllers.AuthController{}
	productCtrl := controllers.NewProductController(productRepo)
	orderCtrl := controllers.NewOrderController(carts, orderRepo)
	checkoutCtrl := controllers.NewCheckoutController(carts, orderRepo, mailer)
	feedbackCtrl := controllers.NewFeedbackController(feedbackRepo, productRepo)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	{
		api.POST("/auth/register", authCtrl.Register)
		api.POST("/auth/login", authCtrl.Login)
		api.GET("/products", productCtrl.GetAllProducts)
		api.GET("/products/:id", productCtrl.GetProductByID)
		api.GET("/blogs", feedbackCtrl.GetAllBlogs)
	}

	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/orders", orderCtrl.GetOrders)
		auth.PATCH("/orders/:id/increment", orderCtrl.IncrementOrder)
		auth.PATCH("/orders/:id/decrement", orderCtrl.DecrementOrder)
		auth.DELETE("/orders/:id", orderCtrl.DeleteOrder)
		auth.GET("/orders/total", orderCtrl.GetCartTotal)
		auth.POST("/orders/reset", orderCtrl.ResetCart)

		auth.POST("/checkout", checkoutCtrl.Checkout)
		auth.GET("/checkout", checkoutCtrl.GetHistory)

		auth.POST("/feedback", feedbackCtrl.SubmitFeedback)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/products", productCtrl.CreateProduct)
	}

	router.Static("/uploads", "./uploads")
}
