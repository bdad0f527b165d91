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

	"github.com/tomtom215/covidtracker/internal/diseaseapi"
	"github.com/tomtom215/covidtracker/internal/models"
)

// fakeFetcher serves canned data. Hooks, when set, replace the canned
// response for that operation.
type fakeFetcher struct {
	mu    sync.Mutex
	calls map[string]int

	global     *models.GlobalStat
	countries  []models.CountryStat
	byISO      map[string]models.CountryStat
	historical *models.HistoricalTimeline

	countryHook   func(ctx context.Context, iso string) (*models.CountryStat, error)
	countriesHook func(ctx context.Context) ([]models.CountryStat, error)
}

func newFakeFetcher() *fakeFetcher {
	a := models.CountryStat{Name: "Aland", ISOCode: "AX", Counts: models.Counts{Cases: 500, TodayCases: 5}, Latitude: 60, Longitude: 20}
	b := models.CountryStat{Name: "Bhutan", ISOCode: "BT", Counts: models.Counts{Cases: 1000, TodayCases: 10}, Latitude: 27.5, Longitude: 90.5}
	return &fakeFetcher{
		calls: make(map[string]int),
		global: &models.GlobalStat{
			Counts: models.Counts{Cases: 1500, TodayCases: 1234, Recovered: 900, Deaths: 30},
		},
		countries: []models.CountryStat{a, b},
		byISO:     map[string]models.CountryStat{"AX": a, "BT": b},
		historical: &models.HistoricalTimeline{
			Cases:     map[string]int64{"1/1/21": 100, "1/2/21": 150, "1/3/21": 175},
			Deaths:    map[string]int64{"1/1/21": 1, "1/2/21": 2, "1/3/21": 4},
			Recovered: map[string]int64{"1/1/21": 10, "1/2/21": 20, "1/3/21": 30},
		},
	}
}

func (f *fakeFetcher) record(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *fakeFetcher) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeFetcher) FetchGlobal(ctx context.Context) (*models.GlobalStat, error) {
	f.record(OpGlobal)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g := *f.global
	return &g, nil
}

func (f *fakeFetcher) FetchCountries(ctx context.Context) ([]models.CountryStat, error) {
	f.record(OpCountries)
	if f.countriesHook != nil {
		return f.countriesHook(ctx)
	}
	return append([]models.CountryStat(nil), f.countries...), nil
}

func (f *fakeFetcher) FetchCountry(ctx context.Context, iso string) (*models.CountryStat, error) {
	f.record(OpCountry)
	if f.countryHook != nil {
		return f.countryHook(ctx, iso)
	}
	c, ok := f.byISO[iso]
	if !ok {
		return nil, &diseaseapi.FetchError{Op: OpCountry, StatusCode: 404, Kind: diseaseapi.ErrParse, Err: errors.New("country not found")}
	}
	return &c, nil
}

func (f *fakeFetcher) FetchHistorical(ctx context.Context, _ int) (*models.HistoricalTimeline, error) {
	f.record(OpHistorical)
	return f.historical, nil
}

// startController runs a controller until the test ends.
func startController(t *testing.T, f Fetcher) *Controller {
	t.Helper()
	ctrl := NewController("test-session", f, DefaultSettings(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = ctrl.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-ctrl.Done():
		case <-time.After(5 * time.Second):
			t.Error("controller did not stop")
		}
	})
	return ctrl
}

// waitFor polls the controller until cond holds.
func waitFor(t *testing.T, ctrl *Controller, what string, cond func(ViewState) bool) ViewState {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		s := ctrl.Snapshot()
		if cond(s) {
			return s
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s; state: %+v", what, s)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func loaded(s ViewState) bool {
	return !s.Loading.Active && !s.Loading.Countries && !s.Loading.Historical
}

func networkErr(op string) error {
	return &diseaseapi.FetchError{Op: op, Kind: diseaseapi.ErrNetwork, Err: errors.New("connection refused")}
}
