// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package diseaseapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks transport failures.
	ErrNetwork = errors.New("network error")

	// ErrParse marks responses that are not the expected JSON shape.
	ErrParse = errors.New("parse error")
)

// FetchError describes a failed API call.
type FetchError struct {
	Op         string // global, countries, country, historical
	URL        string
	StatusCode int // 0 when no response was received
	Kind       error
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s: %v", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func networkError(op, url string, err error) *FetchError {
	return &FetchError{Op: op, URL: url, Kind: ErrNetwork, Err: err}
}

func parseError(op, url string, status int, err error) *FetchError {
	return &FetchError{Op: op, URL: url, StatusCode: status, Kind: ErrParse, Err: err}
}

// KindOf returns "network", "parse" or "unknown" for metric labels and logs.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrParse):
		return "parse"
	default:
		return "unknown"
	}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}
