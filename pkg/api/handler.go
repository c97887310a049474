package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mocno/bandex/pkg/config"
	"github.com/mocno/bandex/pkg/defaults"
	cnserrors "github.com/mocno/bandex/pkg/errors"
	"github.com/mocno/bandex/pkg/menu"
	"github.com/mocno/bandex/pkg/report"
	"github.com/mocno/bandex/pkg/serializer"
	"github.com/mocno/bandex/pkg/server"
)

// Handler serves menu reports over HTTP.
type Handler struct {
	source  report.Source
	cfg     *config.Config
	builder *report.Builder
	now     func() time.Time
	timeout time.Duration
}

// Option is a functional option for configuring Handler instances.
type Option func(*Handler)

// WithClock overrides the time used to resolve "today" and the current meal.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// WithTimeout bounds the time spent loading menus for one request.
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		h.timeout = d
	}
}

// NewHandler creates a Handler reading menus from src for cfg.
func NewHandler(src report.Source, cfg *config.Config, opts ...Option) *Handler {
	h := &Handler{
		source:  src,
		cfg:     cfg,
		now:     time.Now,
		timeout: defaults.MenuHandlerTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.builder = report.NewBuilder(src, cfg, report.WithClock(h.now))
	return h
}

// Routes returns the API routes served by h.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/menus":       h.HandleMenus,
		"/v1/restaurants": h.HandleRestaurants,
	}
}

// HandleMenus handles GET /v1/menus.
//
// Query parameters:
//   - weekday: 1 (Monday) to 7 (Sunday) or a day name, defaults to today
//   - meal: lunch or dinner, repeatable, defaults to the meal being served
//   - everything: true selects both meals of the whole work week
func (h *Handler) HandleMenus(w http.ResponseWriter, r *http.Request) {
	if !server.AllowGet(w, r) {
		return
	}

	opts, err := parseSelectOptions(r.URL.Query())
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid query", nil)
		return
	}

	sel, err := menu.Select(opts, h.now())
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid selection", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	rep, err := h.builder.Build(ctx, sel)
	if err != nil {
		server.WriteErrorFromErr(w, r, cnserrors.Wrap(cnserrors.ErrCodeTimeout, "loading menus timed out", err),
			"failed to build report", nil)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	serializer.RespondJSON(w, http.StatusOK, rep)
}

// RestaurantStatus is a configured restaurant as seen by the menu source.
type RestaurantStatus struct {
	ID    menu.RestaurantID `json:"id" yaml:"id"`
	Name  string            `json:"name,omitempty" yaml:"name,omitempty"`
	Color string            `json:"color" yaml:"color"`
	Error string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// RestaurantsResponse is the body of GET /v1/restaurants.
type RestaurantsResponse struct {
	Restaurants []RestaurantStatus `json:"restaurants" yaml:"restaurants"`
}

// HandleRestaurants handles GET /v1/restaurants.
func (h *Handler) HandleRestaurants(w http.ResponseWriter, r *http.Request) {
	if !server.AllowGet(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	failures := h.source.Prefetch(ctx, h.cfg.RestaurantIDs())
	if err := ctx.Err(); err != nil {
		server.WriteErrorFromErr(w, r, cnserrors.Wrap(cnserrors.ErrCodeTimeout, "loading restaurants timed out", err),
			"failed to load restaurants", nil)
		return
	}

	resp := RestaurantsResponse{Restaurants: make([]RestaurantStatus, 0, len(h.cfg.Restaurants))}
	for _, rc := range h.cfg.Restaurants {
		st := RestaurantStatus{ID: rc.ID, Color: rc.Color.String()}
		if err, failed := failures[rc.ID]; failed {
			st.Error = err.Error()
		} else if rest, err := h.source.Get(ctx, rc.ID); err != nil {
			st.Error = err.Error()
		} else {
			st.Name = rest.Name
		}
		resp.Restaurants = append(resp.Restaurants, st)
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

func parseSelectOptions(q url.Values) (menu.SelectOptions, error) {
	var opts menu.SelectOptions

	if v := q.Get("weekday"); v != "" {
		d, err := menu.ParseWeekday(v)
		if err != nil {
			return opts, err
		}
		opts.Weekday = &d
	}

	for _, v := range q["meal"] {
		m, err := menu.ParseMeal(v)
		if err != nil {
			return opts, err
		}
		switch m {
		case menu.Lunch:
			opts.Lunch = true
		case menu.Dinner:
			opts.Dinner = true
		}
	}

	if v := q.Get("everything"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
				"everything must be a boolean", err, map[string]any{"everything": v})
		}
		opts.Everything = b
	}

	return opts, nil
}
