// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once with the application's custom
// tags and shared by every caller. It checks two kinds of input:
//
//   - Request bodies posted by the dashboard page (country selection,
//     statistic type toggle)
//   - The minimal shape of upstream API payloads, so an error object
//     returned in place of a record is reported as a parse failure
//
// # Custom Tags
//
//	country_selection  "worldwide" or a two-letter country code, any case
//
// Field names in messages come from the json tag, so errors read the way
// the client sent the payload:
//
//	type SelectCountryRequest struct {
//	    Country string `json:"country" validate:"required,country_selection"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	}
package validation
