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

	"github.com/Mervedgan/uretim-takip-sistemi/internal/config"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/handler"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/middleware"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting uretim-takip service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	handlers := handler.NewHandlers(services)

	if err := seed(repos, zapLogger); err != nil {
		zapLogger.Warn("Seeding failed", zap.Error(err))
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// seed creates a default admin account and a demo work order on an empty
// store so a fresh install is usable right away.
func seed(repos *repository.Repositories, zapLogger *zap.Logger) error {
	admin, err := repos.User.GetByUsername("admin")
	if err != nil {
		return err
	}
	if admin == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin = &entity.User{
			Username:     "admin",
			PasswordHash: string(hash),
			Role:         entity.RoleAdmin,
		}
		if err := repos.User.Create(admin); err != nil {
			return err
		}
		zapLogger.Info("Seeded default admin user")
	}

	count, err := repos.WorkOrder.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	start := time.Now().UTC().Truncate(time.Hour)
	end := start.Add(8 * time.Hour)
	windows, err := service.DeriveStageWindows(start, end, service.DefaultStageCount, nil)
	if err != nil {
		return err
	}

	wo := &entity.WorkOrder{
		ProductCode:  "DEMO-001",
		LotNo:        "LOT-0001",
		Qty:          1000,
		PlannedStart: &start,
		PlannedEnd:   &end,
		CreatedBy:    admin.ID,
	}
	for _, w := range windows {
		wStart, wEnd := w.Start, w.End
		wo.Stages = append(wo.Stages, entity.WorkOrderStage{
			StageName:    w.Name,
			PlannedStart: &wStart,
			PlannedEnd:   &wEnd,
			Status:       entity.StageStatusPlanned,
		})
	}
	if err := repos.WorkOrder.Create(wo); err != nil {
		return err
	}
	zapLogger.Info("Seeded demo work order", zap.Uint("id", wo.ID))
	return nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			workOrders := authorized.Group("/work-orders")
			{
				workOrders.GET("", h.WorkOrder.List)
				workOrders.GET("/:id", h.WorkOrder.Get)
				workOrders.GET("/:id/stages", h.WorkOrder.Stages)
				workOrders.GET("/:id/metrics", h.Metrics.WorkOrder)
				workOrders.POST("",
					middleware.RequireRoles(entity.RolePlanner, entity.RoleAdmin),
					h.WorkOrder.Create)
				workOrders.PATCH("/:id/progress", h.WorkOrder.UpdateProgress)
			}

			stages := authorized.Group("/stages")
			{
				stages.GET("/:id/metrics", h.Metrics.Stage)

				// Floor operations: workers run stages, planners may step in.
				operate := middleware.RequireRoles(entity.RoleWorker, entity.RolePlanner, entity.RoleAdmin)
				stages.POST("/:id/start", operate, h.Stage.Start)
				stages.POST("/:id/complete", operate, h.Stage.Complete)
				stages.POST("/:id/pause", operate, h.Stage.Pause)
				stages.POST("/:id/resume", operate, h.Stage.Resume)
			}

			issues := authorized.Group("/issues")
			{
				issues.POST("", h.Issue.Report)
				issues.GET("", h.Issue.List)
				issues.PATCH("/:id/status",
					middleware.RequireRoles(entity.RoleAdmin, entity.RolePlanner),
					h.Issue.Transition)
			}

			notifications := authorized.Group("/notifications")
			notifications.Use(middleware.RequireRoles(entity.RoleAdmin, entity.RolePlanner))
			{
				notifications.GET("", h.Notification.List)
				notifications.PATCH("/:id/read", h.Notification.MarkRead)
			}

			products := authorized.Group("/products")
			{
				products.GET("", h.Product.List)
				products.GET("/:id", h.Product.Get)
				products.POST("", h.Product.Create)
				products.PATCH("/:id", h.Product.Update)
				products.POST("/import", h.Product.Import)

				adminOnly := middleware.RequireRoles(entity.RoleAdmin)
				products.DELETE("/:id", adminOnly, h.Product.Delete)
				products.POST("/:id/restore", adminOnly, h.Product.Restore)
			}

			molds := authorized.Group("/molds")
			{
				molds.GET("", h.Mold.List)
				molds.GET("/:id", h.Mold.Get)
				molds.POST("", h.Mold.Create)
				molds.PATCH("/:id", h.Mold.Update)

				adminOnly := middleware.RequireRoles(entity.RoleAdmin)
				molds.DELETE("/:id", adminOnly, h.Mold.Delete)
				molds.POST("/:id/restore", adminOnly, h.Mold.Restore)
			}

			machines := authorized.Group("/machines")
			{
				machines.GET("", h.Machine.List)
				machines.GET("/:id", h.Machine.Get)
				machines.POST("",
					middleware.RequireRoles(entity.RoleAdmin),
					h.Machine.Create)
				machines.POST("/:id/readings", h.Machine.AddReading)
				machines.GET("/:id/readings", h.Machine.Readings)
			}

			recipes := authorized.Group("/recipes")
			{
				recipes.GET("/resolve", h.Recipe.Resolve)
				recipes.POST("/estimate", h.Recipe.Estimate)
				recipes.GET("/product-names", h.Recipe.ProductNames)
				recipes.GET("/materials", h.Recipe.Materials)
			}

			model := authorized.Group("/model")
			{
				model.GET("/status", h.Model.Status)
				model.GET("/predict", h.Model.Predict)
				model.POST("/train",
					middleware.RequireRoles(entity.RoleAdmin, entity.RolePlanner),
					h.Model.Train)
			}
		}
	}
}
