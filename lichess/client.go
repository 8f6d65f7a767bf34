package lichess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const DefaultHost = "https://lichess.org/"

var rateLimitCooloff = time.Minute
var rateLimitRetries = 4
var ErrRateLimited = errors.New("api: request was rate limited on each attempt")

// APIError is returned for any non-200 response that isn't a rate limit.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	apiKey string
	host   string
	client *http.Client

	rateLimitMu   sync.Mutex
	rateLimitTime time.Time
}

type Option func(*Client)

// WithHost points the client at another lichess instance.
func WithHost(host string) Option {
	return func(lc *Client) {
		lc.host = strings.TrimRight(host, "/") + "/"
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(lc *Client) {
		client.CheckRedirect = redirectPolicyFunc(lc.apiKey)
		lc.client = client
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	lc := &Client{
		apiKey: apiKey,
		host:   DefaultHost,
		client: &http.Client{
			CheckRedirect: redirectPolicyFunc(apiKey),
		},
	}
	for _, opt := range opts {
		opt(lc)
	}

	return lc
}

// Host is the base URL the client talks to, with a trailing slash.
func (lc *Client) Host() string {
	return lc.host
}

// Redirects remove the authorization header and by default redirect using a
// GET request, so both are restored from the original request.
func redirectPolicyFunc(apiKey string) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		req.Header.Set("Authorization", "Bearer "+apiKey)
		req.Method = via[0].Method
		return nil
	}
}

func (lc *Client) newRequest(ctx context.Context, method, apiUrl string, params url.Values) (*http.Request, error) {
	body := strings.NewReader(params.Encode())
	url := lc.host + strings.Trim(apiUrl, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+lc.apiKey)
	if len(params) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

// doRequest builds a fresh request for every attempt since the body of a
// rate limited request has already been consumed.
func (lc *Client) doRequest(ctx context.Context, method, apiUrl string, params url.Values) (*http.Response, error) {
	for attempts := 0; attempts < rateLimitRetries; attempts++ {
		cooloff := lc.getRateLimitCooloff()
		if cooloff != 0 {
			log.Printf("api: Rate limited, sleeping for %.0f seconds.", cooloff.Seconds())
			select {
			case <-time.After(cooloff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := lc.newRequest(ctx, method, apiUrl, params)
		if err != nil {
			return nil, err
		}

		res, err := lc.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("api: %s %s: %w", method, apiUrl, err)
		}

		if res.StatusCode == http.StatusTooManyRequests {
			res.Body.Close()
			lc.setRateLimitTime(time.Now())
			continue
		}

		if res.StatusCode != http.StatusOK {
			defer res.Body.Close()
			apiErr := &APIError{StatusCode: res.StatusCode}
			bytes, err := io.ReadAll(res.Body)
			if err != nil {
				return nil, err
			}

			// Not every error body is JSON, the status code is enough then.
			_ = json.Unmarshal(bytes, apiErr)
			return nil, apiErr
		}

		return res, nil
	}

	return nil, ErrRateLimited
}

func (lc *Client) doJSONRequest(ctx context.Context, method, apiUrl string, params url.Values, buffer interface{}) error {
	res, err := lc.doRequest(ctx, method, apiUrl, params)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	return json.NewDecoder(res.Body).Decode(buffer)
}

// doEmptyRequest is used for endpoints that only answer {"ok":true}.
func (lc *Client) doEmptyRequest(ctx context.Context, method, apiUrl string, params url.Values) error {
	res, err := lc.doRequest(ctx, method, apiUrl, params)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	_, err = io.Copy(io.Discard, res.Body)
	return err
}

func (lc *Client) getRateLimitTime() time.Time {
	lc.rateLimitMu.Lock()
	defer lc.rateLimitMu.Unlock()

	return lc.rateLimitTime
}

func (lc *Client) setRateLimitTime(rateLimitTime time.Time) {
	lc.rateLimitMu.Lock()
	defer lc.rateLimitMu.Unlock()

	lc.rateLimitTime = rateLimitTime
}

func (lc *Client) getRateLimitCooloff() time.Duration {
	rateLimitTime := lc.getRateLimitTime()
	if rateLimitTime.IsZero() {
		return 0
	}

	diff := time.Since(rateLimitTime)
	if diff < rateLimitCooloff {
		return rateLimitCooloff - diff
	}

	return 0
}
