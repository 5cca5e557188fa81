package main

import (
	"log"

	"storefront-api/config"
	_ "storefront-api/docs"
	"storefront-api/middleware"
	"storefront-api/models"
	"storefront-api/routes"

	"github.com/gin-gonic/gin"
)

// @title Storefront API
// @description Checkout orchestration layer for the storefront: cart, pricing, shipping analysis, coupons and order submission.
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	models.InitRedis()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Commerce backend: %s", config.AppConfig.BackendAPIURL)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
