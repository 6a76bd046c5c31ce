package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fleetmon/internal/config"
	"fleetmon/internal/handlers"
	"fleetmon/internal/middleware"
	"fleetmon/internal/store"
	"fleetmon/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type App struct {
	cfg         *config.Config
	store       *store.Store
	authService *middleware.AuthService
	wsHub       *middleware.Hub
	rateLimiter *middleware.RateLimiter
	logger      *utils.Logger
}

func main() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger := utils.NewLogger(cfg.LogFile)
	defer logger.Close()

	app := &App{
		cfg:         cfg,
		store:       store.New(),
		authService: middleware.NewAuthService(cfg.APIKey, logger),
		wsHub:       middleware.NewHub(logger),
		rateLimiter: middleware.NewRateLimiter(rate.Every(time.Minute/300), 20),
		logger:      logger,
	}

	go app.wsHub.Run()

	r := setupRouter(app)

	srv := &http.Server{
		Addr:           ":" + strconv.Itoa(cfg.Port),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if cfg.TLSEnabled {
			log.Printf("Starting HTTPS server on port %d (stale threshold %s)", cfg.Port, cfg.StaleThreshold)
			if err := srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath); err != nil && err != http.ErrServerClosed {
				log.Fatalf("HTTPS server failed to start: %v", err)
			}
			return
		}
		log.Printf("Starting server on port %d (stale threshold %s)", cfg.Port, cfg.StaleThreshold)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	app.rateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func setupRouter(app *App) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))

	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(app.rateLimiter.Middleware())

	h := handlers.NewMonitorHandlers(app.store, app.cfg, app.wsHub, app.logger)

	r.GET("/", h.Healthz)
	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/status", h.APIStatus)
		api.GET("/machines", h.APIMachines)
		api.GET("/hosts", h.APIHosts)
		api.GET("/server/:alias", h.APIServer)
		api.GET("/docker/:host/containers", h.APIHostContainers)

		admin := api.Group("/")
		admin.Use(app.authService.RequireAPIKey())
		{
			admin.POST("/report", h.APIReport)
			admin.DELETE("/server/:alias", h.APIDeleteServer)
		}
	}

	r.GET("/ws", app.wsHub.HandleWebSocket())

	return r
}
