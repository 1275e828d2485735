package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/kdsprimark-ship-it/shipdesk/internal/backup"
	"github.com/kdsprimark-ship-it/shipdesk/internal/cache"
	"github.com/kdsprimark-ship-it/shipdesk/internal/config"
	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/gateway"
	"github.com/kdsprimark-ship-it/shipdesk/internal/handler"
	"github.com/kdsprimark-ship-it/shipdesk/internal/logger"
	"github.com/kdsprimark-ship-it/shipdesk/internal/repo"
	"github.com/kdsprimark-ship-it/shipdesk/internal/router"
	"github.com/kdsprimark-ship-it/shipdesk/internal/session"
	"github.com/kdsprimark-ship-it/shipdesk/internal/state"
	"github.com/kdsprimark-ship-it/shipdesk/internal/stats"
	s3storage "github.com/kdsprimark-ship-it/shipdesk/internal/storage/s3"
	"github.com/kdsprimark-ship-it/shipdesk/internal/syncer"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	logg := logger.WithComponent("server")

	cacheStore, err := cache.NewBadgerStore(&cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer cacheStore.Close()

	// In-memory dataset, seeded from the durable cache so the console shows
	// data before the first refresh lands.
	store := state.NewStore()
	store.LoadFromCache(cacheStore)

	gw := gateway.NewClient(&cfg.Remote)
	coordinator := syncer.New(gw, store, cacheStore, cfg.Sync.Interval, logg)

	// Repositories
	entryRepo := repo.New(store.IndianEntries, gw, coordinator, logg)
	billRepo := repo.New(store.BillInfos, gw, coordinator, logg)
	accountRepo := repo.New(store.AccountEntries, gw, coordinator, logg)
	truckRepo := repo.New(store.TruckInfos, gw, coordinator, logg)
	entityRepo := repo.New(store.BusinessEntities, gw, coordinator, logg)
	depotRepo := repo.New(store.DepotCodes, gw, coordinator, logg)
	rateRepo := repo.New(store.PriceRates, gw, coordinator, logg)
	userRepo := repo.New(store.Users, gw, coordinator, logg)

	// Session and services
	verifier := session.NewStaticVerifier(cfg.Auth)
	tokens := session.NewTokenManager(cfg.JWT)
	sessions := session.NewManager(verifier, tokens, store, cacheStore, coordinator, cfg.Auth.AdminIdentifier, logg)

	statsSvc := stats.New(store)
	backupSvc := backup.New(store, sessions, cacheStore, logg)

	var archiver *backup.Archiver
	if cfg.S3.Bucket != "" {
		s3Client, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		archiver = backup.NewArchiver(backupSvc, s3Client, cfg.S3, logg)
	}

	// Handlers
	authH := handler.NewAuthHandler(sessions)
	colls := router.Collections{
		IndianEntries: handler.NewCollectionHandler(entryRepo).
			WithPrepare(func(e *domain.IndianEntry) {
				e.TotalTaka = domain.ComputeTotalTaka(*e, store.PriceRates.Items(), sessions.Settings().DefaultRates)
			}),
		BillInfos:      handler.NewCollectionHandler(billRepo),
		AccountEntries: handler.NewCollectionHandler(accountRepo),
		TruckInfos:     handler.NewCollectionHandler(truckRepo),
		BusinessEntities: handler.NewCollectionHandler(entityRepo).
			WithValidation(handler.ValidateBusinessEntity),
		DepotCodes: handler.NewCollectionHandler(depotRepo),
		PriceRates: handler.NewCollectionHandler(rateRepo).
			WithValidation(handler.ValidatePriceRate),
		Users: handler.NewCollectionHandler(userRepo),
	}
	billH := handler.NewBillHandler(store, billRepo)
	syncH := handler.NewSyncHandler(coordinator)
	settingsH := handler.NewSettingsHandler(sessions)
	statsH := handler.NewStatsHandler(statsSvc)
	sheetH := handler.NewSheetHandler(statsSvc)
	backupH := handler.NewBackupHandler(backupSvc, archiver)
	healthH := handler.NewHealthHandler(func() bool {
		st := coordinator.Status()
		return st.State != syncer.StateError || !st.LastSync.IsZero()
	})

	// Background refresh loop
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if !sessions.IsAuthenticated() {
		coordinator.Pause()
	}
	go coordinator.Start(ctx)

	r := router.Setup(cfg, logg, sessions, authH, colls, billH, syncH, settingsH, statsH, sheetH, backupH, healthH)

	logg.Info().
		Str("port", cfg.Server.Port).
		Dur("sync_interval", cfg.Sync.Interval).
		Msg("server starting")

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
