// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package models

import "testing"

func TestParseStatType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    StatType
		wantErr bool
	}{
		{"cases", StatCases, false},
		{"Recovered", StatRecovered, false},
		{" deaths ", StatDeaths, false},
		{"active", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCounts_TotalAndToday(t *testing.T) {
	t.Parallel()

	c := Counts{Cases: 10, TodayCases: 1, Recovered: 20, TodayRecovered: 2, Deaths: 30, TodayDeaths: 3}
	for _, tc := range []struct {
		t            StatType
		total, today int64
	}{
		{StatCases, 10, 1},
		{StatRecovered, 20, 2},
		{StatDeaths, 30, 3},
	} {
		if got := c.Total(tc.t); got != tc.total {
			t.Errorf("Total(%s) = %d, want %d", tc.t, got, tc.total)
		}
		if got := c.Today(tc.t); got != tc.today {
			t.Errorf("Today(%s) = %d, want %d", tc.t, got, tc.today)
		}
	}
}

func TestActiveFromCountry(t *testing.T) {
	t.Parallel()

	c := &CountryStat{Name: "Italy", ISOCode: "IT", Latitude: 42.8333, Longitude: 12.8333, Counts: Counts{Cases: 5}}
	a := ActiveFromCountry(c)
	if !a.IsCountry() || a.ISOCode != "IT" || a.Latitude != 42.8333 || a.Cases != 5 {
		t.Errorf("unexpected active stat %+v", a)
	}

	g := ActiveFromGlobal(&GlobalStat{Counts: Counts{Cases: 99}})
	if g.IsCountry() {
		t.Error("global active stat must not report a country")
	}
}

func TestHistoricalTimeline_SeriesNil(t *testing.T) {
	t.Parallel()

	var h *HistoricalTimeline
	if h.Series(StatCases) != nil {
		t.Error("nil timeline should yield nil series")
	}
}
