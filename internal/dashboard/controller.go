// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package dashboard

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tomtom215/covidtracker/internal/logging"
	"github.com/tomtom215/covidtracker/internal/models"
	"github.com/tomtom215/covidtracker/internal/validation"
)

// eventBufferSize bounds queued intents and fetch results per controller.
const eventBufferSize = 16

// Controller serializes all changes to one dashboard's ViewState.
type Controller struct {
	id       string
	fetcher  Fetcher
	settings Settings
	notifier Notifier

	events  chan event
	done    chan struct{}
	started atomic.Bool

	mu    sync.RWMutex
	state ViewState

	// Owned by the Run goroutine.
	gen          uint64
	cancelSelect context.CancelFunc
	fetches      sync.WaitGroup
}

// NewController creates a controller for session id. notifier may be nil.
func NewController(id string, fetcher Fetcher, settings Settings, notifier Notifier) *Controller {
	return &Controller{
		id:       id,
		fetcher:  fetcher,
		settings: settings,
		notifier: notifier,
		events:   make(chan event, eventBufferSize),
		done:     make(chan struct{}),
		state:    initialState(settings),
	}
}

// ID returns the session ID.
func (c *Controller) ID() string {
	return c.id
}

// Done is closed once Run has returned.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Run performs the initial load and processes events until ctx is
// canceled. In-flight fetches are canceled and awaited before it returns.
func (c *Controller) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(c.done)

	ctx = logging.ContextWithSessionID(ctx, c.id)
	log := logging.Ctx(ctx)
	log.Debug().Msg("Dashboard controller started")

	c.publish(c.Snapshot())
	c.initialLoad(ctx)

	for {
		select {
		case <-ctx.Done():
			if c.cancelSelect != nil {
				c.cancelSelect()
			}
			c.fetches.Wait()
			log.Debug().Msg("Dashboard controller stopped")
			return ctx.Err()
		case ev := <-c.events:
			ev.apply(ctx, c)
		}
	}
}

// SelectCountry requests worldwide ("worldwide") or a country (ISO 3166-1
// alpha-2 code). The state changes only when the fetch succeeds.
func (c *Controller) SelectCountry(ctx context.Context, code string) error {
	if !validation.IsCountrySelection(code) {
		return fmt.Errorf("%w: %q", ErrInvalidSelection, code)
	}
	return c.dispatch(ctx, selectCountryEvent{code: validation.NormalizeCountrySelection(code)})
}

// SelectStatType switches the statistic used by the map and graph.
func (c *Controller) SelectStatType(ctx context.Context, statType string) error {
	t, err := models.ParseStatType(statType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStatType, err)
	}
	return c.dispatch(ctx, selectStatEvent{stat: t})
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() ViewState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Controller) dispatch(ctx context.Context, ev event) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.events <- ev:
		return nil
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post delivers a fetch result back to the loop. It gives up when ctx is
// canceled so fetch goroutines never outlive Run.
func (c *Controller) post(ctx context.Context, ev event) {
	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}

// initialLoad starts the three independent startup fetches. The global
// fetch belongs to generation 0 so an early user selection supersedes it.
func (c *Controller) initialLoad(ctx context.Context) {
	selCtx, cancel := context.WithCancel(ctx)
	c.cancelSelect = cancel
	c.spawnActive(ctx, selCtx, 0, Worldwide)

	c.spawn(func() {
		list, err := c.fetcher.FetchCountries(ctx)
		c.post(ctx, countriesResultEvent{countries: list, err: err})
	})

	days := c.settings.HistoricalDays
	c.spawn(func() {
		timeline, err := c.fetcher.FetchHistorical(ctx, days)
		c.post(ctx, historicalResultEvent{timeline: timeline, err: err})
	})
}

// beginSelection supersedes the previous selection and fetches code.
func (c *Controller) beginSelection(ctx context.Context, code string) {
	if c.cancelSelect != nil {
		c.cancelSelect()
	}
	c.gen++
	gen := c.gen

	selCtx, cancel := context.WithCancel(ctx)
	c.cancelSelect = cancel

	c.update(func(s *ViewState) {
		s.Generation = gen
		s.Loading.Active = true
	})

	logging.Ctx(ctx).Debug().
		Str("country", code).
		Uint64("generation", gen).
		Msg("Selection requested")

	c.spawnActive(ctx, selCtx, gen, code)
}

// spawnActive fetches the stat for code under selCtx and posts the result
// on loopCtx, so a superseded fetch still reports back and is counted as
// stale.
func (c *Controller) spawnActive(loopCtx, selCtx context.Context, gen uint64, code string) {
	c.spawn(func() {
		ev := activeResultEvent{gen: gen, code: code}
		if code == Worldwide {
			ev.op = OpGlobal
			ev.global, ev.err = c.fetcher.FetchGlobal(selCtx)
		} else {
			ev.op = OpCountry
			ev.country, ev.err = c.fetcher.FetchCountry(selCtx, code)
		}
		c.post(loopCtx, ev)
	})
}

func (c *Controller) spawn(fn func()) {
	c.fetches.Add(1)
	go func() {
		defer c.fetches.Done()
		fn()
	}()
}

// update applies fn under the write lock and publishes the result.
func (c *Controller) update(fn func(*ViewState)) {
	c.mu.Lock()
	fn(&c.state)
	c.state.Version++
	snapshot := c.state
	c.mu.Unlock()

	c.publish(snapshot)
}

func (c *Controller) publish(state ViewState) {
	if c.notifier != nil {
		c.notifier.Publish(c.id, state)
	}
}
