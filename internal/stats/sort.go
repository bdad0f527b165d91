// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package stats

import (
	"cmp"
	"slices"

	"github.com/tomtom215/covidtracker/internal/models"
)

// SortByCasesDescending returns a copy of records ordered by cases, highest
// first. Ties keep their input order and the input slice is not modified,
// so sorting an already sorted slice yields the same order.
func SortByCasesDescending(records []models.CountryStat) []models.CountryStat {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b models.CountryStat) int {
		return cmp.Compare(b.Cases, a.Cases)
	})
	return sorted
}
