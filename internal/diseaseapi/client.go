// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package diseaseapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/covidtracker/internal/logging"
	"github.com/tomtom215/covidtracker/internal/metrics"
	"github.com/tomtom215/covidtracker/internal/models"
	"github.com/tomtom215/covidtracker/internal/validation"
)

// maxErrorBodySize limits how much of a failed response is kept for diagnostics.
const maxErrorBodySize = 64 * 1024

// maxResponseBodySize caps a successful response; /countries is ~150KB.
const maxResponseBodySize = 16 << 20

const userAgent = "covidtracker/1.0 (+https://github.com/tomtom215/covidtracker)"

// Client is a plain disease.sh API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client rooted at baseURL (e.g. https://disease.sh/v3/covid-19).
// timeout bounds each request; zero means no client-side timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP creates a client using a caller-supplied http.Client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: httpClient}
}

// FetchGlobal retrieves the worldwide aggregate.
func (c *Client) FetchGlobal(ctx context.Context) (*models.GlobalStat, error) {
	var payload apiGlobal
	if err := c.get(ctx, "global", "/all", "/all", nil, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

// FetchCountries retrieves every country in the order the API returns them.
func (c *Client) FetchCountries(ctx context.Context) ([]models.CountryStat, error) {
	var payload []apiCountry
	if err := c.get(ctx, "countries", "/countries", "/countries", nil, &payload); err != nil {
		return nil, err
	}
	out := make([]models.CountryStat, len(payload))
	for i := range payload {
		out[i] = payload[i].toModel()
	}
	return out, nil
}

// FetchCountry retrieves a single country by ISO code. The code is passed
// through as-is; the API also accepts names and ISO3 codes.
func (c *Client) FetchCountry(ctx context.Context, iso string) (*models.CountryStat, error) {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return nil, parseError("country", c.baseURL+"/countries/", 0, errors.New("empty country code"))
	}
	var payload apiCountry
	path := "/countries/" + url.PathEscape(iso)
	if err := c.get(ctx, "country", path, "/countries/{iso}", nil, &payload); err != nil {
		return nil, err
	}
	stat := payload.toModel()
	return &stat, nil
}

// FetchHistorical retrieves the cumulative worldwide series for the last
// lastDays days.
func (c *Client) FetchHistorical(ctx context.Context, lastDays int) (*models.HistoricalTimeline, error) {
	if lastDays < 1 {
		lastDays = 1
	}
	var payload apiHistorical
	query := url.Values{"lastdays": []string{strconv.Itoa(lastDays)}}
	if err := c.get(ctx, "historical", "/historical/all", "/historical/all", query, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

// get performs one GET and decodes the JSON body into out. endpoint is the
// low-cardinality route used as the metric label.
func (c *Client) get(ctx context.Context, op, path, endpoint string, query url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	start := time.Now()
	err := c.do(ctx, op, reqURL, out)
	metrics.RecordUpstreamRequest(endpoint, outcomeLabel(err), time.Since(start))

	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("op", op).Str("url", reqURL).Msg("Upstream fetch failed")
		return err
	}
	logging.Ctx(ctx).Debug().Str("op", op).Dur("elapsed", time.Since(start)).Msg("Upstream fetch complete")
	return nil
}

func (c *Client) do(ctx context.Context, op, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return networkError(op, reqURL, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return networkError(op, reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := readBodyForError(resp.Body)
		return parseError(op, reqURL, resp.StatusCode, errors.New(errorMessage(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize+1))
	if err != nil {
		return networkError(op, reqURL, fmt.Errorf("failed to read response body: %w", err))
	}
	if len(body) > maxResponseBodySize {
		return parseError(op, reqURL, resp.StatusCode, fmt.Errorf("response exceeds %d bytes", maxResponseBodySize))
	}

	if err := json.Unmarshal(body, out); err != nil {
		// The API answers some lookups with 200 and a message object.
		var msg apiMessage
		if json.Unmarshal(body, &msg) == nil && msg.Message != "" {
			return parseError(op, reqURL, resp.StatusCode, errors.New(msg.Message))
		}
		return parseError(op, reqURL, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}

	if err := validatePayload(out); err != nil {
		var msg apiMessage
		if json.Unmarshal(body, &msg) == nil && msg.Message != "" {
			return parseError(op, reqURL, resp.StatusCode, errors.New(msg.Message))
		}
		return parseError(op, reqURL, resp.StatusCode, err)
	}
	return nil
}

// validatePayload checks required fields on a decoded record or each
// record of a list.
func validatePayload(out interface{}) error {
	switch v := out.(type) {
	case *[]apiCountry:
		for i := range *v {
			if verr := validation.ValidateStruct(&(*v)[i]); verr != nil {
				return fmt.Errorf("country %d: %w", i, verr)
			}
		}
		return nil
	default:
		if verr := validation.ValidateStruct(out); verr != nil {
			return verr
		}
		return nil
	}
}

// readBodyForError reads at most maxErrorBodySize bytes of r.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// errorMessage prefers the API's {"message": ...} text over the raw body.
func errorMessage(body []byte) string {
	var msg apiMessage
	if json.Unmarshal(body, &msg) == nil && msg.Message != "" {
		return msg.Message
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty response body"
	}
	return text
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNetwork):
		return "network_error"
	default:
		return "parse_error"
	}
}
