// Package apifootball is the client for the credentialed primary data
// provider (an API-Football style service fronted by a RapidAPI gateway).
package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fikri/scorehub/internal/platform/logging"
	"github.com/fikri/scorehub/internal/platform/resilience"
	"github.com/fikri/scorehub/internal/usecase"
)

const (
	defaultBaseURL = "https://api-football-v1.p.rapidapi.com/v3"

	headerHost = "x-rapidapi-host"
	headerKey  = "x-rapidapi-key"

	maxResponseBytes = 6 << 20
)

var errTransient = crerr.New("primary provider transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	// Credential returns the caller-supplied API key at request time so a
	// key saved mid-session takes effect without rebuilding the client.
	Credential     func(ctx context.Context) string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	host           string
	credential     func(ctx context.Context) string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	credential := cfg.Credential
	if credential == nil {
		credential = func(context.Context) string { return "" }
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		host:           hostOf(baseURL),
		credential:     credential,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchStandings(ctx context.Context, leagueID int, season string) ([]StandingItem, error) {
	var envelope standingsEnvelope
	err := c.doJSON(ctx, "/standings", map[string]string{
		"league": strconv.Itoa(leagueID),
		"season": season,
	}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch standings league=%d: %w", leagueID, err)
	}

	for _, wrapper := range envelope.Response {
		for _, group := range wrapper.League.Standings {
			if len(group) > 0 {
				return group, nil
			}
		}
	}
	return nil, nil
}

// FetchFixtures requests the league's matches inside [from, to]; the provider
// returns played and unplayed matches in one list.
func (c *Client) FetchFixtures(ctx context.Context, leagueID int, season string, from, to time.Time) ([]FixtureItem, error) {
	var envelope fixturesEnvelope
	err := c.doJSON(ctx, "/fixtures", map[string]string{
		"league": strconv.Itoa(leagueID),
		"season": season,
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures league=%d: %w", leagueID, err)
	}

	return envelope.Response, nil
}

func (c *Client) FetchTopScorers(ctx context.Context, leagueID int, season string) ([]PlayerItem, error) {
	return c.fetchLeaders(ctx, "/players/topscorers", leagueID, season)
}

func (c *Client) FetchTopAssists(ctx context.Context, leagueID int, season string) ([]PlayerItem, error) {
	return c.fetchLeaders(ctx, "/players/topassists", leagueID, season)
}

func (c *Client) fetchLeaders(ctx context.Context, path string, leagueID int, season string) ([]PlayerItem, error) {
	var envelope playersEnvelope
	err := c.doJSON(ctx, path, map[string]string{
		"league": strconv.Itoa(leagueID),
		"season": season,
	}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch leaders league=%d: %w", leagueID, err)
	}

	return envelope.Response, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	key := strings.TrimSpace(c.credential(ctx))
	if key == "" {
		return fmt.Errorf("%w: no API credential configured", usecase.ErrSourceSkipped)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "primary circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: primary provider temporarily unavailable", usecase.ErrTransport)
		}
	}

	values := url.Values{}
	for name, value := range query {
		values.Set(name, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	flightKey := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(flightKey, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL, key)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return fmt.Errorf("%w: %s", usecase.ErrTransport, sanitize(err.Error(), key))
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("%w: unexpected response payload type %T", usecase.ErrParse, out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode provider payload: %v", usecase.ErrParse, err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL, key string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(headerHost, c.host)
		req.Header.Set(headerKey, key)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, sanitize(err.Error(), key))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "primary request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

// sanitize scrubs the API key from error text before it reaches logs.
func sanitize(value, key string) string {
	value = strings.TrimSpace(value)
	if key != "" {
		value = strings.ReplaceAll(value, key, "REDACTED")
	}
	return value
}

func hostOf(baseURL string) string {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return strings.TrimPrefix(baseURL, "https://")
	}
	return parsed.Host
}
