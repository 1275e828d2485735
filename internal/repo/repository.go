package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/port"
	"github.com/kdsprimark-ship-it/shipdesk/internal/state"
)

// TempIDPrefix marks locally assigned ids that have not yet been confirmed
// by the remote store. They are superseded by server ids on the next refresh.
const TempIDPrefix = "tmp-"

// NewTempID returns a fresh provisional id.
func NewTempID() string {
	return TempIDPrefix + uuid.NewString()
}

// IsTempID reports whether id was locally assigned and is still provisional.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// Refresher triggers a background reconciliation refresh after a confirmed
// mutation. Implemented by the sync coordinator.
type Refresher interface {
	Resume()
}

// Repository applies optimistic mutations to one entity collection. Every
// mutation updates the in-memory collection first, then confirms with the
// remote store; a remote failure restores the collection to its pre-mutation
// contents.
type Repository[T domain.Entity[T]] struct {
	kind    domain.Kind
	coll    *state.Collection[T]
	gw      port.RemoteGateway
	refresh Refresher
	log     zerolog.Logger
}

// New builds a repository over coll. refresh may be nil when no
// reconciliation is wanted (tests, one-shot tools).
func New[T domain.Entity[T]](coll *state.Collection[T], gw port.RemoteGateway, refresh Refresher, log zerolog.Logger) *Repository[T] {
	return &Repository[T]{
		kind:    coll.Kind(),
		coll:    coll,
		gw:      gw,
		refresh: refresh,
		log:     log.With().Str("kind", string(coll.Kind())).Logger(),
	}
}

// List returns the collection in display order.
func (r *Repository[T]) List() []T {
	return r.coll.Items()
}

// Get returns the entity with the given id, or domain.ErrNotFound.
func (r *Repository[T]) Get(id string) (T, error) {
	item, ok := r.coll.Get(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", r.kind, id, domain.ErrNotFound)
	}
	return item, nil
}

// Add inserts item optimistically under a provisional id and confirms the
// insert remotely. The returned entity carries the provisional id; the next
// refresh replaces it with the server-assigned one.
func (r *Repository[T]) Add(ctx context.Context, item T) (T, error) {
	tempID := NewTempID()
	optimistic := item.WithEntityID(tempID)
	r.coll.Insert(optimistic)

	_, err := r.gw.Request(ctx, "add"+r.kind.ActionSuffix(), item.WithEntityID(""))
	if err != nil {
		r.coll.RemoveByID(tempID)
		r.log.Warn().Err(err).Msg("add rejected, optimistic insert rolled back")
		var zero T
		return zero, err
	}

	r.reconcile()
	return optimistic, nil
}

// Update replaces the entity with the given id wholesale and confirms the
// update remotely. On remote failure the whole collection is restored to the
// snapshot taken before the mutation.
func (r *Repository[T]) Update(ctx context.Context, id string, item T) (T, error) {
	before := r.coll.Items()
	updated := item.WithEntityID(id)
	if !r.coll.ReplaceByID(id, updated) {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", r.kind, id, domain.ErrNotFound)
	}

	_, err := r.gw.Request(ctx, "update"+r.kind.ActionSuffix(), updated)
	if err != nil {
		r.coll.Replace(before)
		r.log.Warn().Err(err).Str("id", id).Msg("update rejected, collection restored")
		var zero T
		return zero, err
	}

	r.reconcile()
	return updated, nil
}

// Delete removes the entity with the given id and confirms the delete
// remotely, restoring the pre-mutation snapshot on failure.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	before := r.coll.Items()
	if !r.coll.RemoveByID(id) {
		return fmt.Errorf("%s %q: %w", r.kind, id, domain.ErrNotFound)
	}

	_, err := r.gw.Request(ctx, "delete"+r.kind.ActionSuffix(), map[string]string{"id": id})
	if err != nil {
		r.coll.Replace(before)
		r.log.Warn().Err(err).Str("id", id).Msg("delete rejected, collection restored")
		return err
	}

	r.reconcile()
	return nil
}

func (r *Repository[T]) reconcile() {
	if r.refresh != nil {
		r.refresh.Resume()
	}
}
