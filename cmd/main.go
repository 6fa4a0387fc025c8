package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/OBATA-VTU/oGig/internal/api"
	"github.com/OBATA-VTU/oGig/internal/auth"
	"github.com/OBATA-VTU/oGig/internal/clients/gemini"
	"github.com/OBATA-VTU/oGig/internal/config"
	"github.com/OBATA-VTU/oGig/internal/logger"
	"github.com/OBATA-VTU/oGig/internal/metrics"
	"github.com/OBATA-VTU/oGig/internal/repositories"
	"github.com/OBATA-VTU/oGig/internal/services"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)
	profiles := repositories.NewProfilesRepository(dbContext.DB)
	cachedProfiles := repositories.NewCachedProfiles(profiles)
	credentials := repositories.NewCredentialsRepository(dbContext.DB)

	bus := EventBus.New()

	board, err := services.NewJobBoard(bus, jobs)
	if err != nil {
		log.Fatalf("can't create job board: %v", err)
	}

	authenticator, err := auth.NewLocal(credentials, profiles, bus)
	if err != nil {
		log.Fatalf("can't create authenticator: %v", err)
	}

	aiClient, err := gemini.NewClient(ctx, cfg.AI.Key, cfg.AI.TextModel, cfg.AI.ImageModel)
	if err != nil {
		log.Fatalf("can't create AI client: %v", err)
	}
	defer aiClient.Close()
	aiClient.SetMinuteRateLimit(cfg.AI.MaxRequestsPerMinute)
	aiClient.SetDayRateLimit(cfg.AI.MaxRequestsPerDay)

	if cfg.Board.ListingExpirationInDays > 0 {
		cleaner, err := services.NewListingsCleaner(jobs, cfg.Board.ListingExpirationInDays)
		if err != nil {
			log.Fatalf("can't create listings cleaner: %v", err)
		}
		defer cleaner.Stop()
	}

	logos := services.NewLogoGenerator(aiClient)

	server, err := api.NewServer(api.Dependencies{
		Board:          board,
		Submissions:    services.NewSubmissionService(board),
		Formatter:      services.NewFormatterService(aiClient, board).WithLogoGenerator(logos),
		Logos:          logos,
		Authenticator:  authenticator,
		Profiles:       cachedProfiles,
		ProfileUpdates: profiles,
		ProfileCache:   cachedProfiles,
	}, cfg.Server.AllowedOrigins)
	if err != nil {
		log.Fatalf("can't create api server: %v", err)
	}

	go func() {
		if err := server.Run(cfg.Server.Port); err != nil {
			log.Fatalf("api server stopped: %v", err)
		}
	}()
	log.Infof("api server listening on port %d", cfg.Server.Port)

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("api server shutdown: %v", err)
	}
	log.Info("Services stopped.")
}
