package rucard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mocno/bandex/pkg/defaults"
	cnserrors "github.com/mocno/bandex/pkg/errors"
	"github.com/mocno/bandex/pkg/menu"
)

const (
	// DefaultBaseURL is the DWR plaincall endpoint of the rucard service.
	DefaultBaseURL = "https://uspdigital.usp.br/rucard/dwr/call/plaincall"

	// ScriptName is the DWR script exposing the menu methods.
	ScriptName = "CardapioControleDWR"

	// MethodRestaurant returns restaurant details.
	MethodRestaurant = "obterRestauranteUsp"

	// MethodMenus returns the weekly menus of a restaurant.
	MethodMenus = "obterCardapioRestUSP"

	// DefaultScriptSessionID is sent with every call; the service does not validate it.
	DefaultScriptSessionID = "$$cHGUA$xN69qjKpKBPg$r4l5bn/pM7m5bn-HStgR4BS4"
)

// Client calls the rucard DWR endpoints.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	limiter         *rate.Limiter
	scriptSessionID string
	maxReplyBytes   int64
}

// Option is a functional option for configuring Client instances.
type Option func(*Client)

// WithBaseURL overrides the DWR endpoint, e.g. for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets the HTTP client used for calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit limits outbound calls to r per second with the given burst.
// A limit of rate.Inf disables limiting.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// WithScriptSessionID sets the DWR scriptSessionId parameter.
func WithScriptSessionID(id string) Option {
	return func(c *Client) {
		c.scriptSessionID = id
	}
}

// New creates a Client with the provided options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:         DefaultBaseURL,
		httpClient:      &http.Client{Timeout: defaults.HTTPClientTimeout},
		limiter:         rate.NewLimiter(rate.Limit(defaults.SourceRateLimit), defaults.SourceRateBurst),
		scriptSessionID: DefaultScriptSessionID,
		maxReplyBytes:   defaults.MaxReplyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch loads the name and weekly menus of a restaurant. Both calls run
// concurrently. It implements menu.Fetcher.
func (c *Client) Fetch(ctx context.Context, id menu.RestaurantID) (*menu.Restaurant, error) {
	r := &menu.Restaurant{ID: id}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		name, err := c.RestaurantName(gctx, id)
		if err != nil {
			return err
		}
		r.Name = name
		return nil
	})

	g.Go(func() error {
		menus, err := c.Menus(gctx, id)
		if err != nil {
			return err
		}
		r.Menus = menus
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("fetched restaurant", "restaurant", int(id), "name", r.Name, "menus", len(r.Menus))
	return r, nil
}

// RestaurantName returns the display name of a restaurant.
func (c *Client) RestaurantName(ctx context.Context, id menu.RestaurantID) (string, error) {
	reply, err := c.call(ctx, MethodRestaurant, id)
	if err != nil {
		return "", err
	}
	return parseRestaurantName(reply, id)
}

// Menus returns the menus of the current week for a restaurant.
func (c *Client) Menus(ctx context.Context, id menu.RestaurantID) ([]menu.Menu, error) {
	reply, err := c.call(ctx, MethodMenus, id)
	if err != nil {
		return nil, err
	}
	return parseMenus(reply, id)
}

// call performs a DWR plaincall for method with the restaurant id as the only parameter.
func (c *Client) call(ctx context.Context, method string, id menu.RestaurantID) (string, error) {
	start := time.Now()
	status := "error"
	defer func() {
		requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(method, status).Inc()
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", cnserrors.Wrap(cnserrors.ErrCodeTimeout, "waiting for rate limiter", err)
	}

	endpoint := fmt.Sprintf("%s/%s.%s.dwr", c.baseURL, ScriptName, method)
	form := c.form(method, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", cnserrors.Wrap(cnserrors.ErrCodeInternal, "building request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", cnserrors.Wrap(cnserrors.ErrCodeTimeout, "menu source call canceled", err)
		}
		return "", cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable, "menu source unreachable", err,
			map[string]any{"method": method, "restaurant": int(id)})
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxReplyBytes))
	if err != nil {
		return "", cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "reading menu source reply", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable,
			fmt.Sprintf("menu source returned status %d", resp.StatusCode), nil,
			map[string]any{"method": method, "restaurant": int(id), "status": resp.StatusCode})
	}

	slog.Debug("menu source call complete",
		"method", method,
		"restaurant", int(id),
		"bytes", len(body),
		"duration", time.Since(start),
	)

	status = "success"
	return string(body), nil
}

func (c *Client) form(method string, id menu.RestaurantID) url.Values {
	v := url.Values{}
	v.Set("page", "")
	v.Set("windowName", "")
	v.Set("c0-id", "a")
	v.Set("batchId", "0")
	v.Set("callCount", "1")
	v.Set("instanceId", "0")
	v.Set("c0-param0", "string:"+strconv.Itoa(int(id)))
	v.Set("c0-scriptName", ScriptName)
	v.Set("c0-methodName", method)
	v.Set("scriptSessionId", c.scriptSessionID)
	return v
}
