package main

import (
  "fmt"
  "os"
  "time"

  "github.com/shopspring/decimal"

  "github.com/andrelobo/zoe-backend/internal/db"
  "github.com/andrelobo/zoe-backend/internal/handlers"
  "github.com/andrelobo/zoe-backend/internal/logger"
  "github.com/andrelobo/zoe-backend/internal/middleware"
  "github.com/andrelobo/zoe-backend/internal/repos"
  "github.com/andrelobo/zoe-backend/internal/server"
  "github.com/andrelobo/zoe-backend/internal/services"
  "github.com/andrelobo/zoe-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Amounts are serialized as JSON numbers, not quoted strings.
  decimal.MarshalJSONWithoutQuotes = true

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  clientRepo := repos.NewClientRepo(thePG, log)
  purchaseRepo := repos.NewPurchaseRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  clientService := services.NewClientService(thePG, log, clientRepo)
  purchaseService := services.NewPurchaseService(thePG, log, purchaseRepo, clientRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  clientHandler := handlers.NewClientHandler(log, clientService)
  purchaseHandler := handlers.NewPurchaseHandler(log, purchaseService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:     authHandler,
    AuthMiddleware:  authMiddleware,
    ClientHandler:   clientHandler,
    PurchaseHandler: purchaseHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Server listening", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
