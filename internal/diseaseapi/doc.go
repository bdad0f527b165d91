// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

// Package diseaseapi fetches COVID-19 statistics from the disease.sh REST API.
//
// # Endpoints
//
//	GET {base}/all                        -> models.GlobalStat
//	GET {base}/countries                  -> []models.CountryStat (API order)
//	GET {base}/countries/{iso}            -> models.CountryStat
//	GET {base}/historical/all?lastdays=N  -> models.HistoricalTimeline
//
// The base URL defaults to https://disease.sh/v3/covid-19.
//
// # Errors
//
// Every failure is a *FetchError that matches exactly one of two sentinels:
//
//   - ErrNetwork: the request could not complete (DNS, connection, timeout,
//     cancelled context, open circuit breaker)
//   - ErrParse: a response arrived but is not the expected JSON shape. This
//     covers non-2xx statuses and the {"message": "..."} object the API
//     returns for unknown countries.
//
//	stat, err := client.FetchCountry(ctx, "US")
//	if errors.Is(err, diseaseapi.ErrNetwork) {
//	    // show "could not reach server"
//	}
//
// # No Retry
//
// Requests are issued once. There is no retry, backoff, caching or
// deduplication of concurrent requests; callers decide what to do with a
// failure. [CircuitBreakerClient] adds fail-fast behaviour only: once the
// upstream is clearly down, calls are rejected immediately instead of
// waiting for the timeout.
package diseaseapi
