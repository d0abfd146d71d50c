package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/speaksmart/speaksmart-api/api/swagger"
	"github.com/speaksmart/speaksmart-api/internal/gateway"
	"github.com/speaksmart/speaksmart-api/internal/handler"
	"github.com/speaksmart/speaksmart-api/internal/middleware"
	"github.com/speaksmart/speaksmart-api/internal/models"
	"github.com/speaksmart/speaksmart-api/internal/repository"
	"github.com/speaksmart/speaksmart-api/internal/service"
	"github.com/speaksmart/speaksmart-api/pkg/cache"
	"github.com/speaksmart/speaksmart-api/pkg/config"
	"github.com/speaksmart/speaksmart-api/pkg/database"
	"github.com/speaksmart/speaksmart-api/pkg/export"
	"github.com/speaksmart/speaksmart-api/pkg/logger"
	corsmiddleware "github.com/speaksmart/speaksmart-api/pkg/middleware/cors"
	reqidmiddleware "github.com/speaksmart/speaksmart-api/pkg/middleware/requestid"
)

// @title SpeakSmart API
// @version 1.0.0
// @description Course marketplace backend: class lifecycle, selections, payments and enrollments.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// The API runs without Redis; listings just skip the cache.
	var cacheRepo *repository.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close()
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	selectionRepo := repository.NewSelectionRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Popular.CacheTTL, logr)
	}

	stripeGateway := gateway.NewStripeGateway(cfg.Stripe, logr)

	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr, cfg.Popular.Limit)
	classSvc := service.NewClassService(classRepo, cacheSvc, validate, logr, cfg.Popular.Limit)
	selectionSvc := service.NewSelectionService(selectionRepo, classRepo, validate, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, classRepo, stripeGateway, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, paymentRepo, classRepo, selectionRepo, cacheSvc, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	classHandler := handler.NewClassHandler(classSvc)
	selectionHandler := handler.NewSelectionHandler(selectionSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, export.NewReceiptRenderer(), cfg.Stripe.Currency)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/credentials", authHandler.Issue)

	requireAuth := middleware.JWT(authSvc)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	instructorOrAdmin := middleware.RequireRoles(models.RoleInstructor, models.RoleAdmin)
	selfOrAdmin := middleware.RBAC(middleware.Self, string(models.RoleAdmin))

	users := api.Group("/users")
	{
		users.GET("", requireAuth, adminOnly, userHandler.List)
		users.PUT("/:email", userHandler.Upsert)
		users.GET("/:email", userHandler.Get)
	}

	instructors := api.Group("/instructors")
	{
		instructors.GET("", userHandler.ListInstructors)
		instructors.GET("/popular", userHandler.ListPopularInstructors)
		instructors.GET("/:email/classes", classHandler.ListByInstructor)
	}

	classes := api.Group("/classes")
	{
		classes.GET("", classHandler.List)
		classes.GET("/popular", classHandler.ListPopular)
		classes.GET("/:id", classHandler.Get)
		classes.POST("", requireAuth, instructorOrAdmin, classHandler.Create)
		classes.PUT("/:id", requireAuth, instructorOrAdmin, classHandler.Update)
		classes.PATCH("/:id", requireAuth, instructorOrAdmin, classHandler.Update)
		classes.PATCH("/:id/approve", requireAuth, adminOnly, classHandler.Approve)
	}

	selections := api.Group("/selections", requireAuth)
	{
		selections.POST("", selectionHandler.Select)
		selections.GET("/:email", selfOrAdmin, selectionHandler.ListForStudent)
		selections.GET("/:email/:id", selfOrAdmin, selectionHandler.Get)
		selections.DELETE("/:id", selectionHandler.Remove)
	}

	enrollments := api.Group("/enrollments", requireAuth)
	{
		enrollments.POST("", enrollmentHandler.Complete)
		enrollments.GET("/:email", selfOrAdmin, enrollmentHandler.ListForStudent)
	}

	api.POST("/payment-reservations", requireAuth, paymentHandler.Reserve)

	payments := api.Group("/payments", requireAuth)
	{
		payments.GET("/:email", selfOrAdmin, paymentHandler.ListForStudent)
		payments.GET("/:email/:id/receipt", selfOrAdmin, paymentHandler.Receipt)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("forced shutdown", "error", err)
	}
}
