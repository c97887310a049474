package menu

import (
	"slices"
	"time"

	cnserrors "github.com/mocno/bandex/pkg/errors"
)

// Selection is the set of days and meals to display, in display order.
type Selection struct {
	Days  []time.Weekday `json:"days" yaml:"days"`
	Meals []Meal         `json:"meals" yaml:"meals"`
}

// SelectOptions are the user's filtering flags.
type SelectOptions struct {
	// Lunch restricts the selection to lunch.
	Lunch bool
	// Dinner restricts the selection to dinner.
	Dinner bool
	// Everything selects the whole work week.
	Everything bool
	// Weekday selects a specific day; nil means today.
	Weekday *time.Weekday
}

// Select resolves filtering flags into a Selection relative to now.
//
// A specific weekday cannot be combined with Everything. Without meal flags
// the meal follows the time of day, unless Everything is set, in which case
// both meals are shown.
func Select(opts SelectOptions, now time.Time) (Selection, error) {
	if opts.Weekday != nil && opts.Everything {
		return Selection{}, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			"choose either a specific weekday or the whole week, not both")
	}

	var sel Selection

	switch {
	case opts.Lunch && !opts.Dinner:
		sel.Meals = []Meal{Lunch}
	case opts.Dinner && !opts.Lunch:
		sel.Meals = []Meal{Dinner}
	case !opts.Lunch && !opts.Dinner && !opts.Everything:
		sel.Meals = MealsForTime(now)
	default:
		sel.Meals = slices.Clone(AllMeals)
	}

	switch {
	case opts.Everything:
		sel.Days = slices.Clone(WorkWeek)
	case opts.Weekday != nil:
		sel.Days = []time.Weekday{*opts.Weekday}
	default:
		sel.Days = []time.Weekday{now.Weekday()}
	}

	return sel, nil
}

// Filter returns the menus inside sel ordered by selected day, then meal.
func Filter(menus []Menu, sel Selection) []Menu {
	out := make([]Menu, 0, len(sel.Days)*len(sel.Meals))
	for _, day := range sel.Days {
		for _, meal := range sel.Meals {
			for _, m := range menus {
				if m.Weekday == day && m.Meal == meal {
					out = append(out, m)
				}
			}
		}
	}
	return out
}
