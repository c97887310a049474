package config

import (
	"slices"

	"github.com/mocno/bandex/pkg/menu"
)

// Config is the bandex configuration.
type Config struct {
	Restaurants []Restaurant `json:"restaurants" yaml:"restaurants" validate:"required,min=1,unique=ID,dive"`
	Foods       Foods        `json:"foods" yaml:"foods"`
}

// Restaurant is a restaurant to display and its color.
type Restaurant struct {
	ID    menu.RestaurantID `json:"id" yaml:"id" validate:"required,min=1,max=100"`
	Color Color             `json:"color,omitzero" yaml:"color,omitempty"`
}

// Foods holds the food preference lists.
type Foods struct {
	Liked    []Food `json:"liked,omitempty" yaml:"liked,omitempty" validate:"dive"`
	Disliked []Food `json:"disliked,omitempty" yaml:"disliked,omitempty" validate:"dive"`
}

// DefaultRestaurants are shown when no configuration file is found:
// Física (8), Química (7), Prefeitura (9) and Central (6).
var DefaultRestaurants = []menu.RestaurantID{8, 7, 9, 6}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	for _, id := range DefaultRestaurants {
		cfg.Restaurants = append(cfg.Restaurants, Restaurant{ID: id, Color: NamedColor(Blue)})
	}
	return cfg
}

// RestaurantIDs returns the configured restaurant ids in display order.
func (c *Config) RestaurantIDs() []menu.RestaurantID {
	ids := make([]menu.RestaurantID, 0, len(c.Restaurants))
	for _, r := range c.Restaurants {
		ids = append(ids, r.ID)
	}
	return ids
}

// Restaurant returns the configuration of restaurant id.
func (c *Config) Restaurant(id menu.RestaurantID) (Restaurant, bool) {
	i := slices.IndexFunc(c.Restaurants, func(r Restaurant) bool { return r.ID == id })
	if i < 0 {
		return Restaurant{}, false
	}
	return c.Restaurants[i], true
}

// merge appends the restaurants and foods of other to c.
func (c *Config) merge(other *Config) {
	c.Restaurants = append(c.Restaurants, other.Restaurants...)
	c.Foods.Liked = append(c.Foods.Liked, other.Foods.Liked...)
	c.Foods.Disliked = append(c.Foods.Disliked, other.Foods.Disliked...)
}
