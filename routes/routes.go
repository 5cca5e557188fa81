package routes

import (
	"storefront-api/config"
	"storefront-api/controllers"
	"storefront-api/middleware"
	"storefront-api/repositories"
	"storefront-api/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	commerce := repositories.NewCommerceRepository()
	cartStore := repositories.NewCartStore(config.AppConfig.CartTTL)
	confirmations := repositories.NewConfirmationStore(config.AppConfig.ConfirmationTTL)

	pricingSvc := services.NewPricingService()
	shippingSvc := services.NewShippingService(commerce)
	checkoutSvc := services.NewCheckoutService(commerce)
	couponSvc := services.NewCouponService(commerce)
	orderSvc := services.NewOrderService(commerce, checkoutSvc, confirmations)
	cartSvc := services.NewCartService(cartStore, pricingSvc)

	checkoutCtrl := controllers.NewCheckoutController(shippingSvc, checkoutSvc, orderSvc)
	couponCtrl := controllers.NewCouponController(couponSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	paymentCtrl := controllers.NewPaymentController(orderSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	healthCtrl := &controllers.HealthController{}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", healthCtrl.Check)

	api := router.Group("/")
	api.Use(middleware.OptionalAuth())
	{
		api.POST("/checkout/shipping-analysis", checkoutCtrl.ShippingAnalysis)
		api.POST("/checkout/calculation", checkoutCtrl.Calculation)
		api.POST("/checkout/complete", checkoutCtrl.Complete)
		api.GET("/checkout/confirmation/:request_id", checkoutCtrl.Confirmation)

		api.GET("/coupons", couponCtrl.List)
		api.POST("/coupons/validate", couponCtrl.Validate)

		api.POST("/orders/submit", orderCtrl.Submit)
		api.GET("/payment/accounts", paymentCtrl.Accounts)

		api.GET("/cart", cartCtrl.Get)
		api.DELETE("/cart", cartCtrl.Clear)
		api.POST("/cart/items", cartCtrl.AddItem)
		api.PATCH("/cart/items/:variant_id", cartCtrl.UpdateItem)
		api.DELETE("/cart/items/:variant_id", cartCtrl.RemoveItem)
	}
}
