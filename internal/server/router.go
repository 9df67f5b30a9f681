package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/andrelobo/zoe-backend/internal/handlers"
  "github.com/andrelobo/zoe-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler     *handlers.AuthHandler
  AuthMiddleware  *middleware.AuthMiddleware
  ClientHandler   *handlers.ClientHandler
  PurchaseHandler *handlers.PurchaseHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // ===============
  // || Public    ||
  // ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

  // ===============
  // || Protected ||
  // ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Purchases
  protected.GET("/purchases", cfg.PurchaseHandler.GetAllPurchases)
  protected.POST("/purchases", cfg.PurchaseHandler.CreatePurchase)
  protected.GET("/purchases/:id", cfg.PurchaseHandler.GetPurchaseByID)
  protected.PUT("/purchases/:id", cfg.PurchaseHandler.UpdatePurchaseByID)
  protected.DELETE("/purchases/:id", cfg.PurchaseHandler.DeletePurchaseByID)
  // Clients
  protected.POST("/clients", cfg.ClientHandler.CreateClient)
  protected.GET("/clients", cfg.ClientHandler.GetAllClients)
  protected.GET("/clients/:clientId", cfg.ClientHandler.GetClientByID)
  protected.GET("/clients/:clientId/purchases", cfg.PurchaseHandler.GetPurchasesByClientID)

  return router
}
