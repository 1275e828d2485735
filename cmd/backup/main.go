// Command backup exports the cached dataset as a backup document, restores
// one, or pushes it to the configured S3 bucket.
// Usage:
//
//	go run ./cmd/backup                       # write backup JSON to stdout
//	go run ./cmd/backup -out backup.json      # write to a file
//	go run ./cmd/backup -import backup.json   # restore a backup into the cache
//	go run ./cmd/backup -upload               # archive to the configured bucket
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kdsprimark-ship-it/shipdesk/internal/backup"
	"github.com/kdsprimark-ship-it/shipdesk/internal/cache"
	"github.com/kdsprimark-ship-it/shipdesk/internal/config"
	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/logger"
	"github.com/kdsprimark-ship-it/shipdesk/internal/state"
	s3storage "github.com/kdsprimark-ship-it/shipdesk/internal/storage/s3"
)

// cacheSettings adapts the durable settings entry to backup.SettingsStore
// without pulling in the whole session manager.
type cacheSettings struct {
	cache *cache.BadgerStore
}

func (s *cacheSettings) Settings() domain.Settings {
	settings := domain.DefaultSettings()
	s.cache.Load(cache.SettingsKey(), &settings)
	return settings
}

func (s *cacheSettings) UpdateSettings(v domain.Settings) error {
	return s.cache.Save(cache.SettingsKey(), v)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outPath := flag.String("out", "", "write the backup JSON to this file instead of stdout")
	importPath := flag.String("import", "", "restore the given backup file into the cache")
	upload := flag.Bool("upload", false, "archive the backup to the configured S3 bucket")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	logg := logger.WithComponent("backup-cli")

	cacheStore, err := cache.NewBadgerStore(&cfg.Cache)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer func() { _ = cacheStore.Close() }()

	store := state.NewStore()
	store.LoadFromCache(cacheStore)

	settings := &cacheSettings{cache: cacheStore}
	svc := backup.New(store, settings, cacheStore, logg)

	if *importPath != "" {
		data, err := os.ReadFile(*importPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", *importPath, err)
		}
		if err := svc.Import(data); err != nil {
			return err
		}
		logg.Info().Str("file", *importPath).Msg("backup restored into cache")
		return nil
	}

	if *upload {
		if cfg.S3.Bucket == "" {
			return fmt.Errorf("no backup bucket configured; set SHIPDESK_S3_BUCKET")
		}
		s3Client, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("initializing S3 client: %w", err)
		}
		arch := backup.NewArchiver(svc, s3Client, cfg.S3, logg)
		key, err := arch.Archive(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(key)
		return nil
	}

	data, err := svc.ExportJSON()
	if err != nil {
		return err
	}
	if *outPath == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *outPath, err)
	}
	logg.Info().Str("file", *outPath).Msg("backup written")
	return nil
}
