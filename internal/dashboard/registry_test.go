// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type evictLog struct {
	mu      sync.Mutex
	reasons map[string]string
}

func (l *evictLog) record(id, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reasons[id] = reason
}

func (l *evictLog) get(id string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reasons[id]
}

func newTestRegistry(maxSessions int) (*Registry, *evictLog, *time.Time) {
	log := &evictLog{reasons: make(map[string]string)}
	now := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(newFakeFetcher(), nil, RegistryConfig{
		Settings:    DefaultSettings(),
		IdleTimeout: 10 * time.Minute,
		MaxSessions: maxSessions,
		OnEvict:     log.record,
	})
	r.now = func() time.Time { return now }
	return r, log, &now
}

func TestRegistry_CreateAndGet(t *testing.T) {
	r, _, _ := newTestRegistry(0)
	t.Cleanup(r.shutdown)

	ctrl := r.Create()
	got, err := r.Get(ctrl.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != ctrl {
		t.Error("Get returned a different controller")
	}
	waitFor(t, ctrl, "initial load", loaded)

	if _, err := r.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(unknown) = %v, want ErrSessionNotFound", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistry_EvictsIdleSessions(t *testing.T) {
	r, log, now := newTestRegistry(0)
	t.Cleanup(r.shutdown)

	idle := r.Create()
	*now = now.Add(6 * time.Minute)
	active := r.Create()
	*now = now.Add(6 * time.Minute)

	r.cleanup()

	if _, err := r.Get(idle.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session still present: %v", err)
	}
	if _, err := r.Get(active.ID()); err != nil {
		t.Errorf("active session evicted: %v", err)
	}
	if reason := log.get(idle.ID()); reason != EvictIdle {
		t.Errorf("evict reason = %q, want %q", reason, EvictIdle)
	}
	select {
	case <-idle.Done():
	default:
		t.Error("evicted controller still running")
	}
}

func TestRegistry_CapacityEvictsLeastRecentlySeen(t *testing.T) {
	r, log, now := newTestRegistry(2)
	t.Cleanup(r.shutdown)

	first := r.Create()
	*now = now.Add(time.Second)
	second := r.Create()
	*now = now.Add(time.Second)
	// Touching first makes second the least recently seen.
	r.Touch(first.ID())
	*now = now.Add(time.Second)
	third := r.Create()

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
	if r.Touch(second.ID()) {
		t.Error("second session should have been evicted")
	}
	if !r.Touch(first.ID()) || !r.Touch(third.ID()) {
		t.Error("first and third sessions should remain")
	}
	if reason := log.get(second.ID()); reason != EvictCapacity {
		t.Errorf("evict reason = %q, want %q", reason, EvictCapacity)
	}
}

func TestRegistry_ServeStopsSessionsOnShutdown(t *testing.T) {
	r, log, _ := newTestRegistry(0)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- r.Serve(ctx) }()

	a := r.Create()
	b := r.Create()
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}

	for _, c := range []*Controller{a, b} {
		select {
		case <-c.Done():
		default:
			t.Errorf("controller %s still running", c.ID())
		}
		if reason := log.get(c.ID()); reason != EvictShutdown {
			t.Errorf("evict reason = %q, want %q", reason, EvictShutdown)
		}
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}
