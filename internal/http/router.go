package http

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/breachwatch/breachwatch/internal/auth"
	"github.com/breachwatch/breachwatch/internal/breach"
	"github.com/breachwatch/breachwatch/internal/config"
	"github.com/breachwatch/breachwatch/internal/http/handlers"
	"github.com/breachwatch/breachwatch/internal/http/middlewares"
	"github.com/breachwatch/breachwatch/internal/observability"
	"github.com/breachwatch/breachwatch/internal/repo/postgres"
	"github.com/breachwatch/breachwatch/web"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1MB

func NewRouter(cfg config.Config, log *slog.Logger, pool *pgxpool.Pool, prom *observability.Prom, reg *prometheus.Registry) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(otelgin.Middleware("breachwatch-api"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	r.Use(middlewares.RequestLogger(log))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if reg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// wire up the auth service and the breach lookup gateway

	usersRepo := postgres.NewUsersRepo(pool, prom)
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	breachClient := breach.NewClient(cfg.BreachAPIURL, cfg.BreachTimeout)

	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager)
	breachHandler := handlers.NewBreachHandler(breachClient, log, prom)
	authMw := middlewares.NewAuthMiddleware(jwtManager)

	api := r.Group("/api/auth", middlewares.RequireJSON())
	api.POST("/signup", authHandler.SignUp)
	api.POST("/login", authHandler.Login)
	// the lookup route is open; a presented token only enriches logs
	api.POST("/email-breach", authMw.OptionalAuth(), breachHandler.EmailBreach)

	// embedded dashboard

	staticFS, err := fs.Sub(web.Static, "static")

	if err == nil {
		r.StaticFS("/static", http.FS(staticFS))
		r.GET("/", func(ctx *gin.Context) {
			ctx.FileFromFS("/", http.FS(staticFS))
		})
	}

	return r
}
