// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Mohit-R-04/FarmToMarket/internal/booking"
	"github.com/Mohit-R-04/FarmToMarket/internal/config"
	"github.com/Mohit-R-04/FarmToMarket/internal/integrity"
	"github.com/Mohit-R-04/FarmToMarket/internal/jobs"
	"github.com/Mohit-R-04/FarmToMarket/internal/middleware"
	"github.com/Mohit-R-04/FarmToMarket/internal/notification"
	"github.com/Mohit-R-04/FarmToMarket/internal/product"
	"github.com/Mohit-R-04/FarmToMarket/internal/sellerrequest"
	"github.com/Mohit-R-04/FarmToMarket/internal/transportrequest"
	"github.com/Mohit-R-04/FarmToMarket/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Jobs
	orphanSweepJob *jobs.OrphanSweepJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	productHandler *product.Handler,
	sellerRequestHandler *sellerrequest.Handler,
	transporterRequestHandler *transportrequest.Handler,
	bookingHandler *booking.Handler,
	notificationHandler *notification.Handler,
	userHandler *user.Handler,
	integrityHandler *integrity.Handler,
	orphanSweepJob *jobs.OrphanSweepJob,
	db *gorm.DB,
) (*Server, error) {
	if err := db.AutoMigrate(
		&product.Product{},
		&sellerrequest.SellerRequest{},
		&transportrequest.TransporterRequest{},
		&booking.Booking{},
		&notification.Notification{},
		&user.User{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Farm To Market API is healthy!"})
	})

	api := router.Group("/api")

	productHandler.RegisterRoutes(api)
	sellerRequestHandler.RegisterRoutes(api)
	transporterRequestHandler.RegisterRoutes(api)
	bookingHandler.RegisterRoutes(api)
	notificationHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	integrityHandler.RegisterRoutes(api)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		orphanSweepJob: orphanSweepJob,
	}, nil
}

func (s *Server) Start() error {
	if s.orphanSweepJob != nil {
		if err := s.orphanSweepJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start orphan sweep job", zap.Error(err))
		}
	} else {
		s.logger.Info("Orphan sweep job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.orphanSweepJob != nil {
		s.orphanSweepJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
