package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripmate/cmd/fx/cache_fx"
	"tripmate/cmd/fx/config_fx"
	"tripmate/cmd/fx/controllers_fx"
	"tripmate/cmd/fx/llm_fx"
	"tripmate/cmd/fx/logger_fx"
	"tripmate/cmd/fx/search_fx"
	"tripmate/cmd/fx/services_fx"
	"tripmate/internal/api/controllers"
	"tripmate/internal/config"
	"tripmate/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		cache_fx.Module,
		search_fx.Module,
		llm_fx.Module,
		services_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", zap.String("port", cfg.Port))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server listen error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type RouteControllers struct {
	fx.In

	Plan      *controllers.PlanController
	Place     *controllers.PlaceController
	Itinerary *controllers.ItineraryController
	Health    *controllers.HealthController
}

func ProvideRouter(cfg *config.Config, log *zap.Logger, ctrl RouteControllers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.GinMode == gin.DebugMode {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.GinZapLogger(log))
	r.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		log.Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.TraceIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.TraceIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	RegisterRoutes(r, ctrl)

	// after the routes so every handler is instrumented; also mounts /metrics
	p.Use(r)

	return r
}

func RegisterRoutes(r *gin.Engine, ctrl RouteControllers) {
	r.GET("/healthz", ctrl.Health.HealthzHandler)

	api := r.Group("/api")

	planGroup := api.Group("/plan")
	planGroup.POST("", ctrl.Plan.CreatePlanHandler)
	planGroup.POST("/slots", ctrl.Plan.GenerateSlotsHandler)

	api.POST("/place", ctrl.Place.SearchPlacesHandler)
	api.POST("/itinerary", ctrl.Itinerary.BuildItineraryHandler)
}
