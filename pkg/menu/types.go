package menu

import (
	"context"
	"strings"
	"time"
)

// RestaurantID identifies a restaurant at the menu source.
type RestaurantID int

// ClosedContent is the content the source publishes when a meal is not served.
const ClosedContent = "Fechado"

// Menu is the menu of one meal on one weekday.
type Menu struct {
	Weekday     time.Weekday `json:"weekday" yaml:"weekday"`
	Meal        Meal         `json:"meal" yaml:"meal"`
	Date        time.Time    `json:"date,omitzero" yaml:"date,omitempty"`
	Content     string       `json:"content" yaml:"content"`
	Calories    int          `json:"calories,omitempty" yaml:"calories,omitempty"`
	Observation string       `json:"observation,omitempty" yaml:"observation,omitempty"`
}

// Closed reports whether the restaurant does not serve this meal.
func (m Menu) Closed() bool {
	return strings.EqualFold(strings.TrimSpace(m.Content), ClosedContent)
}

// Dishes returns the menu content split into lines, trimmed, without blanks.
func (m Menu) Dishes() []string {
	lines := strings.Split(m.Content, "\n")
	dishes := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			dishes = append(dishes, line)
		}
	}
	return dishes
}

// Restaurant is a restaurant and its menus for the current week.
type Restaurant struct {
	ID    RestaurantID `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Menus []Menu       `json:"menus" yaml:"menus"`
}

// Lookup returns the menu served on day for meal.
func (r *Restaurant) Lookup(day time.Weekday, meal Meal) (Menu, bool) {
	for _, m := range r.Menus {
		if m.Weekday == day && m.Meal == meal {
			return m, true
		}
	}
	return Menu{}, false
}

// Fetcher loads a restaurant and its weekly menus.
type Fetcher interface {
	Fetch(ctx context.Context, id RestaurantID) (*Restaurant, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id RestaurantID) (*Restaurant, error)

// Fetch calls f(ctx, id).
func (f FetcherFunc) Fetch(ctx context.Context, id RestaurantID) (*Restaurant, error) {
	return f(ctx, id)
}
