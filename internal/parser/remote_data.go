package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// maxRemoteDataSize caps the body read from a data_url.
const maxRemoteDataSize = 16 << 20

// SeriesData is the payload served at a data_url.
type SeriesData struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// newHTTPClient returns the retrying client used for data_url fetches.
func newHTTPClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil // Disable logging
	return client
}

// FetchSeriesData retrieves series data from an HTTP/HTTPS endpoint.
func FetchSeriesData(ctx context.Context, client *retryablehttp.Client, url string) (*SeriesData, error) {
	if client == nil {
		client = newHTTPClient()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch series data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("failed to fetch series data (status %d): %s", resp.StatusCode, string(body))
	}

	var data SeriesData
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRemoteDataSize)).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode series data: %w", err)
	}
	return &data, nil
}

// ResolveRemoteData fills X and Y of every series that has a data_url and
// no inline Y values. Inline X values are kept when the payload has none.
func ResolveRemoteData(ctx context.Context, client *retryablehttp.Client, spec *FigureSpec) error {
	for i := range spec.Series {
		s := &spec.Series[i]
		if s.DataURL == "" || len(s.Y) > 0 {
			continue
		}

		data, err := FetchSeriesData(ctx, client, s.DataURL)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Label, err)
		}
		s.Y = data.Y
		if len(data.X) > 0 {
			s.X = data.X
		}
	}
	return nil
}
