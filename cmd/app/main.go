package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "affiliate-bot-backend/docs"
	"affiliate-bot-backend/internal/common/cache"
	"affiliate-bot-backend/internal/common/config"
	"affiliate-bot-backend/internal/common/logger"
	"affiliate-bot-backend/internal/common/middleware"
	botHTTP "affiliate-bot-backend/internal/features/bot/delivery/http"
	botRepo "affiliate-bot-backend/internal/features/bot/repository/redis"
	botService "affiliate-bot-backend/internal/features/bot/service"
	earningsHTTP "affiliate-bot-backend/internal/features/earnings/delivery/http"
	earningsService "affiliate-bot-backend/internal/features/earnings/service"
	userHTTP "affiliate-bot-backend/internal/features/user/delivery/http"
	userRepo "affiliate-bot-backend/internal/features/user/repository/redis"
	userService "affiliate-bot-backend/internal/features/user/service"
	withdrawalHTTP "affiliate-bot-backend/internal/features/withdrawal/delivery/http"
	withdrawalRepo "affiliate-bot-backend/internal/features/withdrawal/repository/redis"
	withdrawalService "affiliate-bot-backend/internal/features/withdrawal/service"
	"affiliate-bot-backend/internal/platform/affiliate"
	"affiliate-bot-backend/internal/platform/marketplace"
	"affiliate-bot-backend/internal/platform/payout"
	"affiliate-bot-backend/internal/platform/publisher"
	"affiliate-bot-backend/internal/platform/redis"
	"affiliate-bot-backend/internal/service/notifications"
	"affiliate-bot-backend/internal/workers"
)

// @title           Affiliate Bot API
// @version         1.0
// @description     API server for the affiliate marketing dashboard. All endpoints require init_data authentication.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string for authentication

// @tag.name users
// @tag.description User accounts and balances

// @tag.name bots
// @tag.description Posting bot control - start, stop, status and manual cycles

// @tag.name earnings
// @tag.description Aggregated affiliate earnings

// @tag.name withdrawals
// @tag.description Withdrawals and payout history

func main() {
	cfg := config.Load()

	logger.Init("affiliate-bot-backend", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("Starting affiliate bot backend")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := redis.Open(ctx, redis.Addr(cfg.Redis.Host, cfg.Redis.Port), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	cacheService := cache.NewService(redisClient.Client)
	hub := notifications.NewRedisHub(redisClient)

	userRepository := userRepo.NewUserRepository(redisClient.Client)
	botRepository := botRepo.NewBotRepository(redisClient.Client)
	withdrawalRepository := withdrawalRepo.NewWithdrawalRepository(redisClient.Client)

	market := marketplace.NewClient(cfg.Amazon.SearchBaseURL, cfg.Amazon.SearchAPIKey, cfg.Amazon.Marketplace)

	publishers := publisher.NewRegistry(
		publisher.NewTwitter(cfg.Publishers.TwitterBaseURL, cfg.Publishers.TwitterBearerToken),
		publisher.NewPinterest(cfg.Publishers.PinterestBaseURL, cfg.Publishers.PinterestToken, cfg.Publishers.PinterestBoardID),
		publisher.NewFacebook(cfg.Publishers.FacebookBaseURL, cfg.Publishers.FacebookPageID, cfg.Publishers.FacebookToken),
		publisher.NewYouTube(),
		publisher.NewEtsy(),
	)

	aggregator := earningsService.NewAggregator(
		affiliate.NewAssociatesProvider(cfg.Earnings.AssociatesBaseURL, cfg.Earnings.AssociatesAPIKey, cfg.Amazon.AssociateTag),
		affiliate.NewCJProvider(cfg.Earnings.CJBaseURL, cfg.Earnings.CJToken, cfg.Earnings.CJCompanyID),
	)

	processors := payout.NewRegistry(
		payout.NewPayPal(cfg.Payouts.PayPalBaseURL, cfg.Payouts.PayPalClientID, cfg.Payouts.PayPalSecret),
		payout.NewTON(cfg.Payouts.TonSeed, cfg.Payouts.TonConfigURL),
	)

	runner := botService.NewRunner(market, publishers, cfg.Amazon.AssociateTag, cfg.Bot.ProductsPerCycle, cfg.Bot.ProductDelay)

	userSvc := userService.NewUserService(userRepository)
	botSvc := botService.NewBotService(botRepository, userRepository, runner, aggregator, hub, botService.Timings{
		CyclePeriod:     cfg.Bot.CyclePeriod,
		KeywordDelay:    cfg.Bot.KeywordDelay,
		DefaultKeywords: cfg.Bot.DefaultKeywords,
	})
	withdrawalSvc := withdrawalService.NewWithdrawalService(withdrawalRepository, userRepository, processors, hub)

	activityWorker := workers.NewActivityWorker(redisClient, userRepository)
	go activityWorker.Start(ctx)

	logger.Info().Msg("Services initialized")

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "init_data"}
	router.Use(cors.New(corsConfig))

	setupRoutes(router, userSvc, botSvc, withdrawalSvc, aggregator, cacheService, hub, redisClient)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	cancel()
	botSvc.Shutdown()

	logger.Info().Msg("Server exited")
}

func setupRoutes(
	router *gin.Engine,
	userSvc userService.UserService,
	botSvc botService.BotService,
	withdrawalSvc withdrawalService.WithdrawalService,
	aggregator *earningsService.Aggregator,
	cacheService *cache.Service,
	hub notifications.Hub,
	redisClient *redis.Client,
) {
	v1 := router.Group("/api/v1")
	v1.Use(middleware.TelegramInitDataMiddleware())
	{
		userHTTP.NewUserHandler(userSvc).RegisterRoutes(v1)
		botHTTP.NewBotHandler(botSvc).RegisterRoutes(v1)
		earningsHTTP.NewEarningsHandler(aggregator, cacheService).RegisterRoutes(v1)
		withdrawalHTTP.NewWithdrawalHandler(withdrawalSvc).RegisterRoutes(v1)
		notifications.NewHandler(hub).RegisterRoutes(v1)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "affiliate-bot-backend",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "redis unavailable",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "affiliate-bot-backend",
		})
	})
}
