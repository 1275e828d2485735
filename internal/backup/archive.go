package backup

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/rs/zerolog"

	"github.com/kdsprimark-ship-it/shipdesk/internal/config"
	"github.com/kdsprimark-ship-it/shipdesk/internal/port"
)

// Archiver pushes backup documents to cloud object storage and restores
// from it.
type Archiver struct {
	svc     *Service
	storage port.ObjectStorage
	cfg     config.S3Config
	log     zerolog.Logger
}

// NewArchiver builds an archiver over the backup service.
func NewArchiver(svc *Service, storage port.ObjectStorage, cfg config.S3Config, log zerolog.Logger) *Archiver {
	return &Archiver{
		svc:     svc,
		storage: storage,
		cfg:     cfg,
		log:     log.With().Str("component", "archive").Logger(),
	}
}

// Archive exports the current dataset and uploads it. Returns the object key.
func (a *Archiver) Archive(ctx context.Context) (string, error) {
	data, err := a.svc.ExportJSON()
	if err != nil {
		return "", err
	}

	key := path.Join(a.cfg.Prefix, a.svc.Filename())
	out, err := a.storage.Upload(ctx, port.UploadInput{
		Bucket:      a.cfg.Bucket,
		Key:         key,
		ContentType: "application/json",
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("archiving backup: %w", err)
	}

	a.log.Info().Str("key", key).Str("location", out.Location).Msg("backup archived")
	return key, nil
}

// Restore downloads the object at key and imports it.
func (a *Archiver) Restore(ctx context.Context, key string) error {
	data, err := a.storage.Download(ctx, a.cfg.Bucket, key)
	if err != nil {
		return fmt.Errorf("fetching backup %s: %w", key, err)
	}
	return a.svc.Import(data)
}
