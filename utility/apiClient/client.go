package apiClient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"wallet-engine/utility/logger"
)

const (
	defaultTimeout = 15 * time.Second
	backoffBase    = 200 * time.Millisecond
	backoffCap     = 2 * time.Second
)

// Client object for external API requests. MaxAttempts above 1 enables
// exponential-backoff retries and must only be set for idempotent calls;
// anything that broadcasts a transaction stays at a single attempt.
type Client struct {
	BaseURL     *url.URL
	UserAgent   string
	HttpClient  *http.Client
	MaxAttempts int
}

// New ... Creates a client for the given base URL with a bounded timeout
func New(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	c := &Client{HttpClient: httpClient, MaxAttempts: 1}
	c.BaseURL, _ = url.Parse(baseURL)
	return c
}

// WithRetries ... Enables retries for idempotent requests
func (c *Client) WithRetries(attempts int) *Client {
	if attempts > 0 {
		c.MaxAttempts = attempts
	}
	return c
}

// NewRequest ... Builds a JSON request against the client base URL
func (c *Client) NewRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	rel := &url.URL{Path: path}
	u := c.BaseURL.ResolveReference(rel)
	var buf io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return req, nil
}

// AddHeader ... Sets extra headers on a request
func (c *Client) AddHeader(req *http.Request, headers map[string]string) *http.Request {
	for header, value := range headers {
		req.Header.Set(header, value)
	}
	return req
}

// Do ... Executes the request, decoding the JSON response into v. Non-2xx
// responses come back as an error wrapping the raw body so callers can
// unmarshal upstream error envelopes.
func (c *Client) Do(req *http.Request, v interface{}) (*http.Response, error) {
	var lastResp *http.Response
	var lastErr error

	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-req.Context().Done():
				return lastResp, req.Context().Err()
			case <-time.After(backoff(attempt)):
			}
		}

		attemptReq := req
		if attempt > 1 {
			attemptReq = req.Clone(req.Context())
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return lastResp, err
				}
				attemptReq.Body = body
			}
		}

		startTime := time.Now()
		resp, err := c.HttpClient.Do(attemptReq)
		if err != nil {
			logger.Warning("Request to %s failed on attempt %d : %s", c.BaseURL, attempt, err)
			lastErr = err
			continue
		}

		resBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastResp, lastErr = resp, readErr
			continue
		}

		duration := time.Since(startTime).Milliseconds()
		logger.Info("Response from %s : [%d] Time: %dms", c.BaseURL, resp.StatusCode, duration)

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			lastResp = resp
			lastErr = errors.New(string(resBody))
			continue
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return resp, errors.New(string(resBody))
		}
		if v == nil {
			return resp, nil
		}
		return resp, json.Unmarshal(resBody, v)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("request to %s failed", c.BaseURL)
	}
	return lastResp, lastErr
}

func backoff(attempt int) time.Duration {
	d := backoffBase * time.Duration(1<<uint(attempt-2))
	if d > backoffCap {
		d = backoffCap
	}
	jitter := time.Duration(rand.Intn(75)) * time.Millisecond
	return d + jitter
}
