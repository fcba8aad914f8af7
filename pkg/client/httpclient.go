package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultTimeout = 10 * time.Second

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"extensions"`
}

type graphqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []graphqlError             `json:"errors"`
}

// HttpClient posts GraphQL requests to a single endpoint.
type HttpClient struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewHttpClient(endpoint string) *HttpClient {
	return &HttpClient{
		Endpoint: endpoint,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Do executes query and decodes data.<field> into out. The first GraphQL
// error is returned as *APIError; everything else wraps ErrTransport.
func (c *HttpClient) Do(ctx context.Context, query string, variables map[string]any, field string, out any) error {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return transportError("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return transportError("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError("failed to read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transportError("unexpected status %d", resp.StatusCode)
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return transportError("failed to decode response: %v", err)
	}

	if len(gqlResp.Errors) > 0 {
		first := gqlResp.Errors[0]
		return &APIError{
			Code:    first.Extensions.Code,
			Message: first.Message,
			Details: first.Extensions.Details,
		}
	}

	raw, ok := gqlResp.Data[field]
	if !ok {
		return transportError("response has no data.%s", field)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return transportError("failed to decode data.%s: %v", field, err)
	}
	return nil
}

// WaitForHealthy polls the /health endpoint on the API's host.
func (c *HttpClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return transportError("invalid endpoint: %v", err)
	}
	u.Path = "/health"
	u.RawQuery = ""

	ctx, cancel := context.WithTimeout(ctx, maxWait)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return transportError("failed to create request: %v", err)
		}
		resp, err := c.HTTPClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return transportError("service did not become healthy within %v", maxWait)
		case <-ticker.C:
		}
	}
}
