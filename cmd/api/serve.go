package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/auth"
	"github.com/justsurfingit/jobboard/internal/cache"
	"github.com/justsurfingit/jobboard/internal/config"
	"github.com/justsurfingit/jobboard/internal/database"
	"github.com/justsurfingit/jobboard/internal/handlers"
	"github.com/justsurfingit/jobboard/internal/media"
	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/justsurfingit/jobboard/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(gin.ReleaseMode)

	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	var jobCache cache.JobList = cache.Nop{}
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, job list cache disabled")
		} else {
			defer rdb.Close()
			jobCache = cache.NewRedis(rdb, cfg.CacheTTL)
			log.Info().Dur("ttl", cfg.CacheTTL).Msg("job list cache enabled")
		}
	}

	var uploader media.Uploader = media.Disabled{}
	if cld, err := media.NewCloudinary(cfg.CloudinaryURL); err != nil {
		log.Warn().Err(err).Msg("uploads disabled")
	} else {
		uploader = cld
	}

	tokens := auth.NewCompanyTokens(cfg.JWTSecret, cfg.JWTTTL)
	companies := services.NewCompanyService(db, tokens, uploader)
	jobs := services.NewJobService(db, jobCache, models.NewCatalog(cfg.ExtraLocations()...))

	deps := handlers.Deps{
		Companies:       companies,
		Jobs:            jobs,
		Tokens:          tokens,
		AllowedOrigins:  cfg.AllowedOrigins(),
		LoginRatePerMin: cfg.LoginRatePerMin,
	}
	if cfg.ClerkSecretKey != "" {
		deps.Users = services.NewUserService(db, uploader)
		deps.UserVerifier = auth.NewClerkVerifier(cfg.ClerkSecretKey)
	}
	if cfg.WebhookSecretKey != "" {
		wh, err := auth.NewWebhookVerifier(cfg.WebhookSecretKey)
		if err != nil {
			return err
		}
		deps.Webhooks = services.NewWebhookService(db, wh)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if _, ok := jobCache.(*cache.Redis); ok {
		warmer, err := cache.NewWarmer(cfg.CacheWarmSchedule, jobCache, jobs.LoadVisible)
		if err != nil {
			return err
		}
		g.Go(func() error { return warmer.Run(gctx) })
	}

	return g.Wait()
}
