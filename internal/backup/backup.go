package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/port"
	"github.com/kdsprimark-ship-it/shipdesk/internal/state"
)

// SettingsStore is the slice of the session manager the backup service
// needs.
type SettingsStore interface {
	Settings() domain.Settings
	UpdateSettings(domain.Settings) error
}

// Service exports and imports full-dataset backup documents.
type Service struct {
	store    *state.Store
	settings SettingsStore
	cache    port.CacheStore
	log      zerolog.Logger
}

// New builds a backup service. cache may be nil; imports then stay
// in-memory only.
func New(store *state.Store, settings SettingsStore, cacheStore port.CacheStore, log zerolog.Logger) *Service {
	return &Service{
		store:    store,
		settings: settings,
		cache:    cacheStore,
		log:      log.With().Str("component", "backup").Logger(),
	}
}

// Export captures the current settings and every collection.
func (s *Service) Export() domain.Backup {
	return domain.Backup{
		Settings: s.settings.Settings(),
		Snapshot: s.store.SnapshotAll(),
	}
}

// ExportJSON renders the backup document as indented JSON.
func (s *Service) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s.Export(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling backup: %w", err)
	}
	return data, nil
}

// Filename returns the suggested download name for a backup taken now.
func (s *Service) Filename() string {
	return fmt.Sprintf("shipdesk-backup-%s.json", time.Now().Format("2006-01-02"))
}

// backupDoc distinguishes absent keys from empty collections: a nil pointer
// means the document never mentioned the key and the current data for that
// kind is kept.
type backupDoc struct {
	Settings         *domain.Settings         `json:"settings"`
	IndianEntries    *[]domain.IndianEntry    `json:"indianEntries"`
	BillInfos        *[]domain.BillInfo       `json:"billInfos"`
	AccountEntries   *[]domain.AccountEntry   `json:"accountEntries"`
	TruckInfos       *[]domain.TruckInfo      `json:"truckInfos"`
	BusinessEntities *[]domain.BusinessEntity `json:"businessEntities"`
	DepotCodes       *[]domain.DepotCode      `json:"depotCodes"`
	PriceRates       *[]domain.PriceRate      `json:"priceRates"`
	Users            *[]domain.User           `json:"users"`
}

func (d *backupDoc) empty() bool {
	return d.Settings == nil &&
		d.IndianEntries == nil &&
		d.BillInfos == nil &&
		d.AccountEntries == nil &&
		d.TruckInfos == nil &&
		d.BusinessEntities == nil &&
		d.DepotCodes == nil &&
		d.PriceRates == nil &&
		d.Users == nil
}

// Import restores a backup document. Collections named in the document
// replace the current ones wholesale; collections it omits are untouched.
// A document that does not parse, or that carries none of the known keys,
// fails with domain.ErrBackupFormat and changes nothing.
func (s *Service) Import(data []byte) error {
	var doc backupDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackupFormat, err)
	}
	if doc.empty() {
		return fmt.Errorf("%w: no recognized sections", domain.ErrBackupFormat)
	}

	snap := s.store.SnapshotAll()
	if doc.IndianEntries != nil {
		snap.IndianEntries = *doc.IndianEntries
	}
	if doc.BillInfos != nil {
		snap.BillInfos = *doc.BillInfos
	}
	if doc.AccountEntries != nil {
		snap.AccountEntries = *doc.AccountEntries
	}
	if doc.TruckInfos != nil {
		snap.TruckInfos = *doc.TruckInfos
	}
	if doc.BusinessEntities != nil {
		snap.BusinessEntities = *doc.BusinessEntities
	}
	if doc.DepotCodes != nil {
		snap.DepotCodes = *doc.DepotCodes
	}
	if doc.PriceRates != nil {
		snap.PriceRates = *doc.PriceRates
	}
	if doc.Users != nil {
		snap.Users = *doc.Users
	}
	s.store.ReplaceAll(snap)

	if doc.Settings != nil {
		if err := s.settings.UpdateSettings(*doc.Settings); err != nil {
			return err
		}
	}

	if s.cache != nil {
		if err := s.store.SaveToCache(s.cache); err != nil {
			s.log.Warn().Err(err).Msg("persisting imported dataset failed")
		}
	}
	s.log.Info().Msg("backup imported")
	return nil
}
