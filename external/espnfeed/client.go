// Package espnfeed is the credential-free secondary data source: the public
// JSON endpoints a sports site's own scoreboard pages read. No key, no
// guarantees, so the client is rate-limited and treated as best effort.
package espnfeed

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/fikri/scorehub/internal/platform/logging"
	"github.com/fikri/scorehub/internal/usecase"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis"
	defaultTimeout = 10 * time.Second

	// One request in flight per half second; polite for an unkeyed feed.
	defaultRPS = 2

	maxResponseBytes = 6 << 20
)

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond caps outbound calls; zero applies the default.
	RequestsPerSecond float64
	Logger            *logging.Logger
}

type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}

	return &Client{
		http: &fasthttp.Client{
			MaxResponseBodySize: maxResponseBytes,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
		baseURL: baseURL,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

func (c *Client) FetchStandings(ctx context.Context, leagueCode, season string) ([]StandingEntry, error) {
	path := fmt.Sprintf("/v2/sports/soccer/%s/standings?season=%s", leagueCode, season)

	var envelope standingsEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings code=%s: %w", leagueCode, err)
	}

	for _, group := range envelope.Children {
		if len(group.Standings.Entries) > 0 {
			return group.Standings.Entries, nil
		}
	}
	return nil, nil
}

// FetchScoreboard returns the combined fixtures-and-results list inside
// [from, to]; callers split it by score presence.
func (c *Client) FetchScoreboard(ctx context.Context, leagueCode string, from, to time.Time) ([]Event, error) {
	path := fmt.Sprintf("/site/v2/sports/soccer/%s/scoreboard?dates=%s-%s",
		leagueCode, from.Format("20060102"), to.Format("20060102"))

	var envelope scoreboardEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("fetch scoreboard code=%s: %w", leagueCode, err)
	}

	return envelope.Events, nil
}

func (c *Client) FetchLeaders(ctx context.Context, leagueCode string) ([]LeaderCategory, error) {
	path := fmt.Sprintf("/site/v2/sports/soccer/%s/leaders", leagueCode)

	var envelope leadersEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("fetch leaders code=%s: %w", leagueCode, err)
	}

	return envelope.Leaders.Categories, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrTransport, err)
	}

	raw, err := c.execute(ctx, c.baseURL+path)
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode feed payload: %v", usecase.ErrParse, err)
	}

	return nil
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrTransport, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		c.logger.WarnContext(ctx, "secondary request failed", "url", fullURL, "error", err)
		return nil, fmt.Errorf("%w: send request: %v", usecase.ErrTransport, err)
	}

	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: feed status=%d", usecase.ErrTransport, status)
	}

	// The response buffer is pooled; copy before release.
	body := resp.Body()
	raw := make([]byte, len(body))
	copy(raw, body)
	return raw, nil
}
