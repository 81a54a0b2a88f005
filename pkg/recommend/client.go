// Package recommend provides the client for the station recommendation
// service and the request payload contract it expects.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single recommendation round trip.
const DefaultTimeout = 30 * time.Second

// StatusError carries a non-2xx HTTP status and the raw response body,
// surfaced verbatim to the caller. No retry is attempted.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recommendation service returned status %d: %s", e.Code, e.Body)
}

// Client posts recommendation requests to a remote service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a recommendation client for the given base URL with
// default settings.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Recommend posts the request to /recommend and returns the ordered station
// list. Non-2xx responses yield a *StatusError.
func (c *Client) Recommend(ctx context.Context, recReq Request) ([]Station, error) {
	payload, err := json.Marshal(recReq)
	if err != nil {
		return nil, fmt.Errorf("error encoding request: %w", err)
	}

	url := c.baseURL + "/recommend"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error posting request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var stations []Station
	if err := json.Unmarshal(body, &stations); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %w", err)
	}

	return stations, nil
}
