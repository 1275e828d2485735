package backup_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kdsprimark-ship-it/shipdesk/internal/backup"
	"github.com/kdsprimark-ship-it/shipdesk/internal/config"
	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/port"
	"github.com/kdsprimark-ship-it/shipdesk/internal/state"
	"github.com/kdsprimark-ship-it/shipdesk/mocks"
)

type settingsStub struct {
	current domain.Settings
}

func (s *settingsStub) Settings() domain.Settings { return s.current }
func (s *settingsStub) UpdateSettings(v domain.Settings) error {
	s.current = v
	return nil
}

func newService(t *testing.T) (*backup.Service, *state.Store, *settingsStub) {
	t.Helper()
	store := state.NewStore()
	settings := &settingsStub{current: domain.DefaultSettings()}
	return backup.New(store, settings, nil, zerolog.Nop()), store, settings
}

func TestService_ExportImportRoundTrip(t *testing.T) {
	svc, store, settings := newService(t)
	store.ReplaceAll(domain.Snapshot{
		IndianEntries: []domain.IndianEntry{{ID: "e1", InvoiceNo: "INV-1", TotalTaka: 5583}},
		BillInfos:     []domain.BillInfo{{ID: "b1", TotalBill: 1500}},
		PriceRates:    []domain.PriceRate{{ID: "p1", BuyerName: "ACME", Condition: domain.ConditionDoc, Rate: 500}},
	})
	settings.current.Theme = "Midnight"

	data, err := svc.ExportJSON()
	require.NoError(t, err)

	// Restore into a fresh store.
	svc2, store2, settings2 := newService(t)
	require.NoError(t, svc2.Import(data))

	assert.Equal(t, store.SnapshotAll(), store2.SnapshotAll())
	assert.Equal(t, "Midnight", settings2.current.Theme)
}

func TestService_Import_OmittedSectionsUntouched(t *testing.T) {
	svc, store, _ := newService(t)
	store.ReplaceAll(domain.Snapshot{
		Users:      []domain.User{{ID: "u1"}},
		DepotCodes: []domain.DepotCode{{ID: "d1", Code: "CTG"}},
	})

	err := svc.Import([]byte(`{"users":[{"id":"u2"},{"id":"u3"}]}`))

	require.NoError(t, err)
	assert.Equal(t, 2, store.Users.Len())
	// depotCodes was absent from the document and survives.
	assert.Equal(t, 1, store.DepotCodes.Len())
}

func TestService_Import_EmptySliceClearsCollection(t *testing.T) {
	svc, store, _ := newService(t)
	store.ReplaceAll(domain.Snapshot{TruckInfos: []domain.TruckInfo{{ID: "t1"}}})

	require.NoError(t, svc.Import([]byte(`{"truckInfos":[]}`)))

	assert.Equal(t, 0, store.TruckInfos.Len())
}

func TestService_Import_MalformedDocument(t *testing.T) {
	svc, store, _ := newService(t)
	store.ReplaceAll(domain.Snapshot{Users: []domain.User{{ID: "u1"}}})

	for _, doc := range []string{`{broken`, `[1,2,3]`, `"just a string"`, `{"unrelated":true}`} {
		err := svc.Import([]byte(doc))
		assert.ErrorIs(t, err, domain.ErrBackupFormat, doc)
	}
	// Nothing changed.
	assert.Equal(t, 1, store.Users.Len())
}

func TestService_Filename(t *testing.T) {
	svc, _, _ := newService(t)
	assert.Regexp(t, `^shipdesk-backup-\d{4}-\d{2}-\d{2}\.json$`, svc.Filename())
}

func TestArchiver_ArchiveUploadsExport(t *testing.T) {
	svc, store, _ := newService(t)
	store.ReplaceAll(domain.Snapshot{AccountEntries: []domain.AccountEntry{{ID: "a1", Amount: 900}}})

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "ops-backups" && in.ContentType == "application/json"
	})).Return(&port.UploadOutput{Location: "https://ops-backups/x"}, nil)

	arch := backup.NewArchiver(svc, storage, config.S3Config{Bucket: "ops-backups", Prefix: "backups"}, zerolog.Nop())
	key, err := arch.Archive(context.Background())

	require.NoError(t, err)
	assert.Contains(t, key, "backups/shipdesk-backup-")
	storage.AssertExpectations(t)
}

func TestArchiver_RestoreImportsDownloadedDocument(t *testing.T) {
	svc, store, _ := newService(t)

	doc, err := json.Marshal(domain.Backup{
		Settings: domain.DefaultSettings(),
		Snapshot: domain.Snapshot{BillInfos: []domain.BillInfo{{ID: "b9"}}},
	})
	require.NoError(t, err)

	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "ops-backups", "backups/old.json").Return(doc, nil)

	arch := backup.NewArchiver(svc, storage, config.S3Config{Bucket: "ops-backups"}, zerolog.Nop())
	require.NoError(t, arch.Restore(context.Background(), "backups/old.json"))

	assert.Equal(t, 1, store.BillInfos.Len())
}
