package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"restaurant-service/controllers"
	"restaurant-service/database"
	"restaurant-service/kafka"
	"restaurant-service/middleware"
	"restaurant-service/repository"
	"restaurant-service/routes"
	"restaurant-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	// --- Database ---
	if err := database.Connect(database.DBConfig{
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		Name:     cfg.PostgresDB,
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		SSLMode:  cfg.PostgresSSLMode,
		TimeZone: cfg.PostgresTimeZone,
	}); err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	// --- Redis (commit lock) ---
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Redis connection failed", zap.Error(err))
	}

	// --- Kafka (order events, optional) ---
	var producer kafka.ProducerAPI
	if cfg.KafkaBrokers != "" {
		kp := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.OrderTopic)
		defer kp.Close()
		producer = kp
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	// --- HTTP router ---
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	}

	// Structured HTTP request logging
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		switch {
		case status >= 500:
			logger.Error("http_request", fields...)
		case status >= 400:
			logger.Warn("http_request", fields...)
		default:
			logger.Info("http_request", fields...)
		}
	})

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- Dependency injection ---
	categoryRepo := repository.NewGormCategoryRepository(database.DB)
	menuRepo := repository.NewGormMenuItemRepository(database.DB)
	cartRepo := repository.NewGormCartRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)
	userRepo := repository.NewGormUserRepository(database.DB)
	commitLock := repository.NewRedisCommitLock(redisClient, 30*time.Second)

	menuService := services.NewMenuService(categoryRepo, menuRepo, logger)
	cartService := services.NewCartService(cartRepo, menuRepo, logger)
	orderService := services.NewOrderService(orderRepo, userRepo, commitLock, producer, logger)
	directoryService := services.NewDirectoryService(userRepo, logger)

	menuController := controllers.NewMenuController(menuService)
	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(orderService)
	groupController := controllers.NewGroupController(directoryService)

	menuThrottle := middleware.NewThrottle(cfg.ThrottlePerMinute, cfg.ThrottleBurst)
	orderThrottle := middleware.NewThrottle(cfg.ThrottlePerMinute, cfg.ThrottleBurst)

	routes.Register(r, userRepo, []byte(cfg.JWTSecret),
		menuThrottle.Handler(), orderThrottle.Handler(),
		menuController, cartController, orderController, groupController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "restaurant-service"})
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Restaurant Service started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("Redis close error", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}

	log.Println("Restaurant Service stopped gracefully")
}
