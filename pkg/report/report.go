// Package report assembles the filtered and tagged menus shown to the user.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mocno/bandex/pkg/config"
	"github.com/mocno/bandex/pkg/header"
	"github.com/mocno/bandex/pkg/menu"
	"github.com/mocno/bandex/pkg/preference"
)

// Report is the set of menus selected for display, grouped by day and meal.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
	Days        []Day     `json:"days" yaml:"days"`
}

// Day groups the meals of one weekday.
type Day struct {
	Weekday time.Weekday  `json:"-" yaml:"-"`
	Number  int           `json:"weekday" yaml:"weekday"`
	Name    string        `json:"name" yaml:"name"`
	Meals   []MealSection `json:"meals" yaml:"meals"`
}

// MealSection groups the restaurants serving one meal.
type MealSection struct {
	Meal        menu.Meal `json:"meal" yaml:"meal"`
	Title       string    `json:"title" yaml:"title"`
	Restaurants []Entry   `json:"restaurants" yaml:"restaurants"`
}

// Entry is what one restaurant serves for a meal. Exactly one of Dishes,
// Closed or Error describes it.
type Entry struct {
	RestaurantID menu.RestaurantID `json:"restaurantId" yaml:"restaurantId"`
	Name         string            `json:"name,omitempty" yaml:"name,omitempty"`
	Color        config.Color      `json:"-" yaml:"-"`
	Closed       bool              `json:"closed,omitempty" yaml:"closed,omitempty"`
	Dishes       []Dish            `json:"dishes,omitempty" yaml:"dishes,omitempty"`
	Calories     int               `json:"calories,omitempty" yaml:"calories,omitempty"`
	Observation  string            `json:"observation,omitempty" yaml:"observation,omitempty"`
	Date         time.Time         `json:"date,omitzero" yaml:"date,omitempty"`
	Error        string            `json:"error,omitempty" yaml:"error,omitempty"`
	Detail       string            `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Dish is a menu line and its preference tag.
type Dish struct {
	Name       string         `json:"name" yaml:"name"`
	Preference preference.Tag `json:"preference" yaml:"preference"`
}

// Source provides restaurants and their menus.
type Source interface {
	Get(ctx context.Context, id menu.RestaurantID) (*menu.Restaurant, error)
	Prefetch(ctx context.Context, ids []menu.RestaurantID) map[menu.RestaurantID]error
}

// Builder builds reports for a configuration.
type Builder struct {
	source  Source
	cfg     *config.Config
	matcher *preference.Matcher
	now     func() time.Time
}

// Option is a functional option for configuring Builder instances.
type Option func(*Builder)

// WithClock overrides the time source used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// NewBuilder creates a Builder reading menus from src.
func NewBuilder(src Source, cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		source:  src,
		cfg:     cfg,
		matcher: preference.NewMatcher(cfg.Foods),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build fetches every configured restaurant and assembles the report for
// sel. Restaurants that fail to load or lack a menu produce error entries;
// only a canceled context fails the build.
func (b *Builder) Build(ctx context.Context, sel menu.Selection) (*Report, error) {
	ids := b.cfg.RestaurantIDs()

	if failures := b.source.Prefetch(ctx, ids); len(failures) > 0 {
		slog.Debug("some restaurants failed to load", "failed", len(failures), "total", len(ids))
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}

	loaded := make([]selected, 0, len(b.cfg.Restaurants))
	for _, rc := range b.cfg.Restaurants {
		loaded = append(loaded, b.load(ctx, rc, sel))
	}

	rep := &Report{GeneratedAt: b.now()}
	rep.Set(header.KindMenuReport, rep.GeneratedAt)
	for _, day := range sel.Days {
		d := Day{
			Weekday: day,
			Number:  menu.WeekdayNumber(day),
			Name:    menu.WeekdayName(day),
		}
		for _, meal := range sel.Meals {
			section := MealSection{Meal: meal, Title: meal.Title()}
			for _, l := range loaded {
				section.Restaurants = append(section.Restaurants, b.entry(l, day, meal))
			}
			d.Meals = append(d.Meals, section)
		}
		rep.Days = append(rep.Days, d)
	}

	return rep, nil
}

// selected is a configured restaurant narrowed down to the selected menus.
type selected struct {
	rc         config.Restaurant
	restaurant *menu.Restaurant
	err        error
}

func (b *Builder) load(ctx context.Context, rc config.Restaurant, sel menu.Selection) selected {
	r, err := b.source.Get(ctx, rc.ID)
	if err != nil {
		return selected{rc: rc, err: err}
	}
	return selected{rc: rc, restaurant: &menu.Restaurant{
		ID:    r.ID,
		Name:  r.Name,
		Menus: menu.Filter(r.Menus, sel),
	}}
}

func (b *Builder) entry(l selected, day time.Weekday, meal menu.Meal) Entry {
	rc := l.rc
	e := Entry{RestaurantID: rc.ID, Color: rc.Color}

	if l.err != nil {
		e.Error = fmt.Sprintf("Não foi possível carregar dados desse restaurante (Rest %d)", rc.ID)
		e.Detail = l.err.Error()
		return e
	}

	r := l.restaurant
	e.Name = r.Name
	if e.Name == "" {
		e.Name = fmt.Sprintf("Restaurante %d", rc.ID)
	}

	m, ok := r.Lookup(day, meal)
	if !ok {
		e.Error = fmt.Sprintf("Cardápio não disponível (%s de %s)", meal.Title(), menu.WeekdayName(day))
		return e
	}

	if m.Closed() {
		e.Closed = true
		return e
	}

	dishes := m.Dishes()
	tags := b.matcher.TagAll(dishes, rc.ID)
	for i, name := range dishes {
		e.Dishes = append(e.Dishes, Dish{Name: name, Preference: tags[i]})
	}
	e.Calories = m.Calories
	e.Observation = m.Observation
	e.Date = m.Date
	return e
}
