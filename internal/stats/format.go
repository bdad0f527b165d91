// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package stats

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CountPlaceholder is shown for a count that has not loaded.
const CountPlaceholder = "-"

// compactSuffixes renames SI prefixes to the k/m/b/t style used for
// population counts.
var compactSuffixes = map[string]string{
	"":  "",
	"k": "k",
	"M": "m",
	"G": "b",
	"T": "t",
	"P": "q",
}

// Formatter renders counts with a locale's digit grouping.
// A Formatter is safe for concurrent use.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter returns a Formatter for a BCP 47 locale such as "en-US".
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

var defaultFormatter = &Formatter{tag: language.English, printer: message.NewPrinter(language.English)}

// DefaultFormatter returns the English formatter used by FormatCount.
func DefaultFormatter() *Formatter {
	return defaultFormatter
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Count formats n with thousands separators, or returns CountPlaceholder
// when n is nil.
func (f *Formatter) Count(n *int64) string {
	if n == nil {
		return CountPlaceholder
	}
	return f.printer.Sprintf("%d", *n)
}

// Delta formats n as a signed compact figure: 1234 -> "+1.2k",
// 2500000 -> "+2.5m". nil and zero give "+0".
func (f *Formatter) Delta(n *int64) string {
	return FormatDelta(n)
}

// FormatCount formats n with English thousands separators:
// 1234567 -> "1,234,567", 0 -> "0", nil -> CountPlaceholder.
func FormatCount(n *int64) string {
	return defaultFormatter.Count(n)
}

// FormatDelta formats a daily change in compact signed form.
func FormatDelta(n *int64) string {
	if n == nil || *n == 0 {
		return "+0"
	}

	sign := "+"
	magnitude := float64(*n)
	if magnitude < 0 {
		sign = "-"
		magnitude = -magnitude
	}

	// FtoaWithDigits truncates, so 999,999 reads "999.9k" rather than "1000k".
	value, prefix := humanize.ComputeSI(magnitude)

	suffix, ok := compactSuffixes[prefix]
	if !ok {
		suffix = prefix
	}
	return sign + humanize.FtoaWithDigits(value, 1) + suffix
}

// Int64 returns a pointer to v, for formatting loaded values.
func Int64(v int64) *int64 {
	return &v
}
