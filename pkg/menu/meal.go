package menu

import (
	"fmt"
	"strings"
	"time"

	cnserrors "github.com/mocno/bandex/pkg/errors"
)

// Meal is a meal period.
type Meal string

const (
	Lunch  Meal = "lunch"
	Dinner Meal = "dinner"
)

// AllMeals lists the meal periods in serving order.
var AllMeals = []Meal{Lunch, Dinner}

// Title returns the display name of the meal.
func (m Meal) Title() string {
	switch m {
	case Lunch:
		return "Almoço"
	case Dinner:
		return "Jantar"
	default:
		return string(m)
	}
}

// IsValid reports whether m is a known meal period.
func (m Meal) IsValid() bool {
	return m == Lunch || m == Dinner
}

// ParseMeal parses a meal name in English or Portuguese.
func ParseMeal(s string) (Meal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lunch", "almoco", "almoço", "a":
		return Lunch, nil
	case "dinner", "jantar", "janta", "j":
		return Dinner, nil
	}
	return "", cnserrors.New(cnserrors.ErrCodeInvalidRequest,
		fmt.Sprintf("invalid meal %q, supported values: lunch, dinner", s))
}

// Serving windows used when no meal is requested explicitly.
const (
	lunchStart  = 6 * time.Hour
	dinnerStart = 14 * time.Hour
	dinnerEnd   = 20 * time.Hour
)

// MealsForTime returns the meal being served around t: lunch after 06:00
// and before 14:00, dinner from 14:00 until 20:00, and both otherwise.
func MealsForTime(t time.Time) []Meal {
	h, m, s := t.Clock()
	tod := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())

	switch {
	case lunchStart < tod && tod < dinnerStart:
		return []Meal{Lunch}
	case dinnerStart <= tod && tod < dinnerEnd:
		return []Meal{Dinner}
	default:
		return []Meal{Lunch, Dinner}
	}
}
