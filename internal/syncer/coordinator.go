package syncer

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/port"
	"github.com/kdsprimark-ship-it/shipdesk/internal/state"
)

// State is the coordinator's externally visible sync state.
type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateError   State = "error"
)

// Status is a point-in-time view of the coordinator.
type Status struct {
	State    State     `json:"state"`
	LastErr  string    `json:"lastError,omitempty"`
	LastSync time.Time `json:"lastSync,omitzero"`
}

// Coordinator runs the readAll refresh cycle: periodic background pulls plus
// on-demand pulls after confirmed mutations. Refreshes are single-flight;
// a refresh requested while one is running is dropped, not queued.
type Coordinator struct {
	gw       port.RemoteGateway
	store    *state.Store
	cache    port.CacheStore
	interval time.Duration
	log      zerolog.Logger

	inFlight atomic.Bool
	paused   atomic.Bool
	kick     chan struct{}

	mu     sync.Mutex
	status Status
}

// New builds a coordinator. cache may be nil when durable persistence is not
// wanted.
func New(gw port.RemoteGateway, store *state.Store, cache port.CacheStore, interval time.Duration, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		gw:       gw,
		store:    store,
		cache:    cache,
		interval: interval,
		log:      log.With().Str("component", "syncer").Logger(),
		kick:     make(chan struct{}, 1),
		status:   Status{State: StateIdle},
	}
}

// Status returns the current sync state.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Resume lifts a pause and requests a refresh soon. Safe to call from any
// goroutine; requests arriving while a refresh is pending collapse into one.
func (c *Coordinator) Resume() {
	c.paused.Store(false)
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// Pause suspends refreshes until Resume. Used on logout so the background
// loop cannot repopulate a cleared dataset.
func (c *Coordinator) Pause() {
	c.paused.Store(true)
}

// Start runs the refresh loop until ctx is cancelled. One immediate refresh
// happens on startup so the console never opens on an empty dataset when the
// remote is reachable.
func (c *Coordinator) Start(ctx context.Context) {
	if _, err := c.Refresh(ctx); err != nil {
		c.log.Warn().Err(err).Msg("initial refresh failed, serving cached data")
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-c.kick:
		}
		if _, err := c.Refresh(ctx); err != nil {
			c.log.Warn().Err(err).Msg("refresh failed")
		}
	}
}

// Refresh performs one readAll pull. Returns (false, nil) when the
// coordinator is paused, when another refresh was already running and this
// one was dropped, or when the result was stale and discarded. On remote failure the previous
// dataset is retained and the error is recorded in the status.
func (c *Coordinator) Refresh(ctx context.Context) (bool, error) {
	if c.paused.Load() {
		return false, nil
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return false, nil
	}
	defer c.inFlight.Store(false)

	c.setState(StateSyncing, "")

	// The generation captured here pins the dataset this refresh is allowed
	// to replace. Any mutation or logout after this point makes the result
	// stale.
	gen := c.store.Generation()
	started := time.Now()

	data, err := c.gw.Request(ctx, "readAll", nil)
	if err != nil {
		c.setState(StateError, err.Error())
		return false, err
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		err = domain.NewRemoteError("readAll", err)
		c.setState(StateError, err.Error())
		return false, err
	}

	if !c.store.ReplaceAllIfCurrent(snap, gen) {
		c.log.Debug().Uint64("generation", gen).Msg("refresh result stale, discarded")
		c.setState(StateIdle, "")
		return false, nil
	}

	if c.cache != nil {
		if err := c.store.SaveToCache(c.cache); err != nil {
			c.log.Warn().Err(err).Msg("persisting refreshed dataset failed")
		}
	}

	c.mu.Lock()
	c.status = Status{State: StateIdle, LastSync: time.Now()}
	c.mu.Unlock()

	c.log.Debug().Dur("took", time.Since(started)).Msg("refresh applied")
	return true, nil
}

func (c *Coordinator) setState(s State, errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	last := c.status.LastSync
	c.status = Status{State: s, LastErr: errMsg, LastSync: last}
}
