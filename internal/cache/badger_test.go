package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdsprimark-ship-it/shipdesk/internal/cache"
	"github.com/kdsprimark-ship-it/shipdesk/internal/config"
	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
)

func newStore(t *testing.T) *cache.BadgerStore {
	t.Helper()
	s, err := cache.NewBadgerStore(&config.CacheConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBadgerStore_SaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)

	entries := []domain.IndianEntry{
		{ID: "a", InvoiceNo: "INV-1", TotalTaka: 100},
		{ID: "b", InvoiceNo: "INV-2", TotalTaka: 200},
	}
	require.NoError(t, s.Save(cache.CollectionKey(domain.KindIndianEntry), entries))

	var loaded []domain.IndianEntry
	ok := s.Load(cache.CollectionKey(domain.KindIndianEntry), &loaded)

	assert.True(t, ok)
	assert.Equal(t, entries, loaded)
}

func TestBadgerStore_LoadMissingKeyLeavesDefault(t *testing.T) {
	s := newStore(t)

	loaded := []domain.User{{ID: "default"}}
	ok := s.Load(cache.CollectionKey(domain.KindUser), &loaded)

	assert.False(t, ok)
	assert.Equal(t, "default", loaded[0].ID)
}

func TestBadgerStore_CorruptedValueDiscarded(t *testing.T) {
	s := newStore(t)
	key := cache.SettingsKey()

	require.NoError(t, s.SetRaw(key, []byte("{not valid json")))

	var settings domain.Settings
	ok := s.Load(key, &settings)
	assert.False(t, ok)

	// The corrupted entry must not resurface.
	var again domain.Settings
	assert.False(t, s.Load(key, &again))
}

func TestBadgerStore_DeleteAbsentKey(t *testing.T) {
	s := newStore(t)
	assert.NoError(t, s.Delete("shipdesk/v1/never-written"))
}

func TestBadgerStore_ResetDropsEverything(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save(cache.AuthKey(), true))
	require.NoError(t, s.Reset())

	var flag bool
	assert.False(t, s.Load(cache.AuthKey(), &flag))
}

func TestKeys_CarrySchemaVersion(t *testing.T) {
	assert.Contains(t, cache.CollectionKey(domain.KindBillInfo), cache.SchemaVersion)
	assert.Contains(t, cache.SettingsKey(), cache.SchemaVersion)
	assert.Contains(t, cache.AuthKey(), cache.SchemaVersion)
}
