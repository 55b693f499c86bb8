package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/gridpeak/voltra/internal/auth"
	"github.com/gridpeak/voltra/internal/authz"
	"github.com/gridpeak/voltra/internal/config"
	gendomain "github.com/gridpeak/voltra/internal/generation/domain"
	marketdomain "github.com/gridpeak/voltra/internal/market/domain"
	obslogger "github.com/gridpeak/voltra/internal/observability/logger"
	obsmetrics "github.com/gridpeak/voltra/internal/observability/metrics"
	orgdomain "github.com/gridpeak/voltra/internal/organization/domain"
	plantdomain "github.com/gridpeak/voltra/internal/plant/domain"
	eventdomain "github.com/gridpeak/voltra/internal/plantevent/domain"
	userdomain "github.com/gridpeak/voltra/internal/user/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           cfg.Environment != "production",
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	genID           *snowflake.Node
	authSvc         auth.Service
	authzSvc        authz.Service
	organizationSvc orgdomain.Service
	userSvc         userdomain.Service
	plantSvc        plantdomain.Service
	eventSvc        eventdomain.Service
	generationSvc   gendomain.Service
	marketSvc       marketdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	GenID           *snowflake.Node
	AuthSvc         auth.Service
	AuthzSvc        authz.Service
	OrganizationSvc orgdomain.Service
	UserSvc         userdomain.Service
	PlantSvc        plantdomain.Service
	EventSvc        eventdomain.Service
	GenerationSvc   gendomain.Service
	MarketSvc       marketdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		genID:           p.GenID,
		authSvc:         p.AuthSvc,
		authzSvc:        p.AuthzSvc,
		organizationSvc: p.OrganizationSvc,
		userSvc:         p.UserSvc,
		plantSvc:        p.PlantSvc,
		eventSvc:        p.EventSvc,
		generationSvc:   p.GenerationSvc,
		marketSvc:       p.MarketSvc,
	}

	svc.registerRoutes()
	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.POST("/auth/login", s.Login)

	api := s.engine.Group("/", s.AuthRequired())
	{
		api.POST("/organizations", s.requireCapability(authz.ObjectOrganization, authz.ActionCreate), s.CreateOrganization)
		api.GET("/organizations", s.requireCapability(authz.ObjectOrganization, authz.ActionView), s.ListOrganizations)

		api.POST("/users", s.requireCapability(authz.ObjectUser, authz.ActionCreate), s.CreateUser)
		api.GET("/users", s.requireCapability(authz.ObjectUser, authz.ActionView), s.ListUsers)

		api.POST("/plants", s.requireCapability(authz.ObjectPlant, authz.ActionCreate), s.CreatePlant)
		api.GET("/plants", s.requireCapability(authz.ObjectPlant, authz.ActionView), s.ListPlants)

		// Role gating for event mutations lives in the service so a missing
		// or cross-tenant plant is reported before a role denial.
		api.POST("/plant-events", s.CreatePlantEvent)
		api.PUT("/plant-events/:id/finish", s.FinishPlantEvent)
		api.GET("/plant-events", s.requireCapability(authz.ObjectPlantEvent, authz.ActionView), s.ListPlantEvents)

		api.GET("/generation", s.requireCapability(authz.ObjectGeneration, authz.ActionView), s.ListRealtimeGeneration)

		api.GET("/consumption/real-time", s.requireCapability(authz.ObjectMarketFeed, authz.ActionView), s.ListRealtimeConsumption)
		api.GET("/consumption/forecast", s.requireCapability(authz.ObjectMarketFeed, authz.ActionView), s.ListDemandForecast)
		api.GET("/market/ptf", s.requireCapability(authz.ObjectMarketFeed, authz.ActionView), s.ListMarketClearingPrice)
		api.GET("/market/smp", s.requireCapability(authz.ObjectMarketFeed, authz.ActionView), s.ListSystemMarginalPrice)
	}
}
