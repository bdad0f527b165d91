// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/covidtracker/internal/logging"
	"github.com/tomtom215/covidtracker/internal/metrics"
)

// Eviction reasons, used as metric labels.
const (
	EvictIdle     = "idle"
	EvictCapacity = "capacity"
	EvictShutdown = "shutdown"
)

// ErrSessionNotFound is returned for unknown or evicted session IDs.
var ErrSessionNotFound = errors.New("dashboard session not found")

// RegistryConfig configures session lifetime.
type RegistryConfig struct {
	Settings Settings

	// IdleTimeout evicts sessions not touched for this long.
	IdleTimeout time.Duration

	// MaxSessions caps live controllers; the least recently seen session
	// is evicted to make room. Zero means unlimited.
	MaxSessions int

	// CleanupInterval defaults to a quarter of IdleTimeout, at most one minute.
	CleanupInterval time.Duration

	// OnEvict is called after a session's controller has been stopped.
	OnEvict func(sessionID, reason string)
}

type session struct {
	ctrl     *Controller
	cancel   context.CancelFunc
	lastSeen atomic.Int64 // unix nanoseconds
}

func (s *session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// Registry owns one Controller per dashboard session and evicts idle ones.
//
// Thread Safety: all methods are safe for concurrent use. Serve must run
// for idle sessions to be evicted.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session

	fetcher  Fetcher
	notifier Notifier
	cfg      RegistryConfig
	now      func() time.Time
}

// NewRegistry creates a registry whose controllers share fetcher and
// notifier.
func NewRegistry(fetcher Fetcher, notifier Notifier, cfg RegistryConfig) *Registry {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = min(cfg.IdleTimeout/4, time.Minute)
	}
	return &Registry{
		sessions: make(map[string]*session),
		fetcher:  fetcher,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Create starts a new session and returns its controller. The controller
// begins its initial load immediately.
func (r *Registry) Create() *Controller {
	id := uuid.NewString()
	ctrl := NewController(id, r.fetcher, r.cfg.Settings, r.notifier)
	ctx, cancel := context.WithCancel(context.Background())

	sess := &session{ctrl: ctrl, cancel: cancel}
	sess.touch(r.now())

	var evicted *session
	var evictedID string

	r.mu.Lock()
	if r.cfg.MaxSessions > 0 && len(r.sessions) >= r.cfg.MaxSessions {
		evictedID, evicted = r.oldestLocked()
		if evicted != nil {
			delete(r.sessions, evictedID)
		}
	}
	r.sessions[id] = sess
	count := len(r.sessions)
	r.mu.Unlock()

	metrics.DashboardSessionsActive.Set(float64(count))

	if evicted != nil {
		r.stop(evictedID, evicted, EvictCapacity)
	}

	go func() {
		_ = ctrl.Run(ctx) //nolint:errcheck // returns context.Canceled on eviction
	}()

	logging.Debug().Str("session_id", id).Int("sessions", count).Msg("Dashboard session created")
	return ctrl
}

// Get returns the controller for id and marks the session as active.
func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touch(r.now())
	return sess.ctrl, nil
}

// Touch marks the session as active. It reports whether the session exists.
func (r *Registry) Touch(id string) bool {
	_, err := r.Get(id)
	return err == nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Serve evicts idle sessions until ctx is canceled, then stops every
// controller. It implements suture.Service.
func (r *Registry) Serve(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.shutdown()
			return ctx.Err()
		case <-ticker.C:
			r.cleanup()
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (r *Registry) String() string {
	return "dashboard-sessions"
}

// cleanup evicts sessions idle longer than IdleTimeout.
func (r *Registry) cleanup() {
	cutoff := r.now().Add(-r.cfg.IdleTimeout).UnixNano()

	expired := make(map[string]*session)
	r.mu.Lock()
	for id, sess := range r.sessions {
		if sess.lastSeen.Load() < cutoff {
			expired[id] = sess
			delete(r.sessions, id)
		}
	}
	count := len(r.sessions)
	r.mu.Unlock()

	metrics.DashboardSessionsActive.Set(float64(count))
	for id, sess := range expired {
		r.stop(id, sess, EvictIdle)
	}
	if len(expired) > 0 {
		logging.Debug().Int("evicted", len(expired)).Int("sessions", count).Msg("Evicted idle dashboard sessions")
	}
}

func (r *Registry) shutdown() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*session)
	r.mu.Unlock()

	metrics.DashboardSessionsActive.Set(0)
	for id, sess := range all {
		r.stop(id, sess, EvictShutdown)
	}
	logging.Info().Int("sessions", len(all)).Msg("Dashboard sessions stopped")
}

// stop cancels the controller and waits for its loop to exit.
func (r *Registry) stop(id string, sess *session, reason string) {
	sess.cancel()
	<-sess.ctrl.Done()
	metrics.DashboardSessionsEvicted.WithLabelValues(reason).Inc()
	if r.cfg.OnEvict != nil {
		r.cfg.OnEvict(id, reason)
	}
}

func (r *Registry) oldestLocked() (string, *session) {
	var oldestID string
	var oldest *session
	for id, sess := range r.sessions {
		if oldest == nil || sess.lastSeen.Load() < oldest.lastSeen.Load() {
			oldestID, oldest = id, sess
		}
	}
	return oldestID, oldest
}
