package state

import (
	"sync"

	"github.com/kdsprimark-ship-it/shipdesk/internal/cache"
	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/port"
)

// Store owns every entity collection. The combined state is conceptually one
// shared document: refreshes replace it wholesale, mutations patch it
// piecemeal. The generation counter increments on every local mutation; a
// refresh started at generation g only lands if the store is still at g, so
// a slow readAll can never clobber a mutation that finished after it began.
// Clearing on logout bumps the generation too, which makes late-arriving
// refresh results fall on the floor.
type Store struct {
	mu  sync.RWMutex
	gen uint64

	IndianEntries    *Collection[domain.IndianEntry]
	BillInfos        *Collection[domain.BillInfo]
	AccountEntries   *Collection[domain.AccountEntry]
	TruckInfos       *Collection[domain.TruckInfo]
	BusinessEntities *Collection[domain.BusinessEntity]
	DepotCodes       *Collection[domain.DepotCode]
	PriceRates       *Collection[domain.PriceRate]
	Users            *Collection[domain.User]
}

// NewStore creates an empty store. Transactional logs display newest-first
// and therefore prepend on optimistic insert; registries append.
func NewStore() *Store {
	s := &Store{}
	s.IndianEntries = newCollection[domain.IndianEntry](&s.mu, &s.gen, domain.KindIndianEntry, true)
	s.BillInfos = newCollection[domain.BillInfo](&s.mu, &s.gen, domain.KindBillInfo, true)
	s.AccountEntries = newCollection[domain.AccountEntry](&s.mu, &s.gen, domain.KindAccountEntry, true)
	s.TruckInfos = newCollection[domain.TruckInfo](&s.mu, &s.gen, domain.KindTruckInfo, true)
	s.BusinessEntities = newCollection[domain.BusinessEntity](&s.mu, &s.gen, domain.KindBusinessEntity, false)
	s.DepotCodes = newCollection[domain.DepotCode](&s.mu, &s.gen, domain.KindDepotCode, false)
	s.PriceRates = newCollection[domain.PriceRate](&s.mu, &s.gen, domain.KindPriceRate, false)
	s.Users = newCollection[domain.User](&s.mu, &s.gen, domain.KindUser, false)
	return s
}

// Generation returns the current mutation generation.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// ReplaceAllIfCurrent installs a refresh snapshot, but only if no local
// mutation happened since expectedGen was read. Returns false when the
// snapshot is stale and was discarded.
func (s *Store) ReplaceAllIfCurrent(snap domain.Snapshot, expectedGen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != expectedGen {
		return false
	}
	s.setAll(snap)
	return true
}

// ReplaceAll installs a snapshot unconditionally and counts as a local
// mutation. Used by cache restore at startup and by backup import.
func (s *Store) ReplaceAll(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAll(snap)
	s.gen++
}

func (s *Store) setAll(snap domain.Snapshot) {
	s.IndianEntries.set(snap.IndianEntries)
	s.BillInfos.set(snap.BillInfos)
	s.AccountEntries.set(snap.AccountEntries)
	s.TruckInfos.set(snap.TruckInfos)
	s.BusinessEntities.set(snap.BusinessEntities)
	s.DepotCodes.set(snap.DepotCodes)
	s.PriceRates.set(snap.PriceRates)
	s.Users.set(snap.Users)
}

// SnapshotAll copies every collection into one combined snapshot.
func (s *Store) SnapshotAll() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{
		IndianEntries:    s.IndianEntries.snapshot(),
		BillInfos:        s.BillInfos.snapshot(),
		AccountEntries:   s.AccountEntries.snapshot(),
		TruckInfos:       s.TruckInfos.snapshot(),
		BusinessEntities: s.BusinessEntities.snapshot(),
		DepotCodes:       s.DepotCodes.snapshot(),
		PriceRates:       s.PriceRates.snapshot(),
		Users:            s.Users.snapshot(),
	}
}

// Clear empties every collection. Counts as a local mutation so in-flight
// refreshes started before the clear are rejected.
func (s *Store) Clear() {
	s.ReplaceAll(domain.Snapshot{})
}

// SaveToCache persists every collection under its versioned key.
func (s *Store) SaveToCache(c port.CacheStore) error {
	snap := s.SnapshotAll()
	pairs := map[domain.Kind]any{
		domain.KindIndianEntry:    snap.IndianEntries,
		domain.KindBillInfo:       snap.BillInfos,
		domain.KindAccountEntry:   snap.AccountEntries,
		domain.KindTruckInfo:      snap.TruckInfos,
		domain.KindBusinessEntity: snap.BusinessEntities,
		domain.KindDepotCode:      snap.DepotCodes,
		domain.KindPriceRate:      snap.PriceRates,
		domain.KindUser:           snap.Users,
	}
	for kind, items := range pairs {
		if err := c.Save(cache.CollectionKey(kind), items); err != nil {
			return err
		}
	}
	return nil
}

// LoadFromCache restores collections from durable keys. Missing or
// corrupted entries load as empty; the next refresh supplies server truth.
func (s *Store) LoadFromCache(c port.CacheStore) {
	var snap domain.Snapshot
	c.Load(cache.CollectionKey(domain.KindIndianEntry), &snap.IndianEntries)
	c.Load(cache.CollectionKey(domain.KindBillInfo), &snap.BillInfos)
	c.Load(cache.CollectionKey(domain.KindAccountEntry), &snap.AccountEntries)
	c.Load(cache.CollectionKey(domain.KindTruckInfo), &snap.TruckInfos)
	c.Load(cache.CollectionKey(domain.KindBusinessEntity), &snap.BusinessEntities)
	c.Load(cache.CollectionKey(domain.KindDepotCode), &snap.DepotCodes)
	c.Load(cache.CollectionKey(domain.KindPriceRate), &snap.PriceRates)
	c.Load(cache.CollectionKey(domain.KindUser), &snap.Users)
	s.ReplaceAll(snap)
}
