package rucard

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mocno/bandex/pkg/dwr"
	cnserrors "github.com/mocno/bandex/pkg/errors"
	"github.com/mocno/bandex/pkg/menu"
)

// DWR object keys.
const (
	keyContent     = "cdpdia"
	keyMeal        = "tiprfi"
	keyWeekday     = "diasemana"
	keyDate        = "dtarfi"
	keyCalories    = "vlrclorfi"
	keyObservation = "obscdpsmn"
	keyName        = "nomrtn"
)

const dateLayout = "02/01/2006"

// dateLocation is the timezone menu dates refer to.
var dateLocation = loadLocation("America/Sao_Paulo")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseRestaurantName(reply string, id menu.RestaurantID) (string, error) {
	objs, err := dwr.Parse(reply)
	if err != nil {
		if errors.Is(err, dwr.ErrNoObjects) {
			return "", cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound,
				fmt.Sprintf("restaurant %d not found", id), err, map[string]any{"restaurant": int(id)})
		}
		return "", cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "invalid restaurant reply", err)
	}

	name, ok := objs[0].String(keyName)
	if !ok || strings.TrimSpace(name) == "" {
		return "", cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound,
			fmt.Sprintf("restaurant %d not found", id), nil, map[string]any{"restaurant": int(id)})
	}
	return dwr.FormatText(name), nil
}

func parseMenus(reply string, id menu.RestaurantID) ([]menu.Menu, error) {
	objs, err := dwr.Parse(reply)
	if err != nil {
		if errors.Is(err, dwr.ErrNoObjects) {
			return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound,
				fmt.Sprintf("no menus for restaurant %d", id), err, map[string]any{"restaurant": int(id)})
		}
		return nil, cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "invalid menu reply", err)
	}

	menus := make([]menu.Menu, 0, len(objs))
	for i, obj := range objs {
		m, err := menuFromObject(obj)
		if err != nil {
			skippedMenuTotal.Inc()
			slog.Debug("skipping menu object", "restaurant", int(id), "index", i, "error", err)
			continue
		}
		menus = append(menus, m)
	}
	return menus, nil
}

// menuFromObject maps a DWR menu object to a Menu. The content, meal and
// weekday are required; the remaining fields are optional.
func menuFromObject(obj dwr.Object) (menu.Menu, error) {
	content, ok := obj.String(keyContent)
	if !ok {
		return menu.Menu{}, fmt.Errorf("%w: %s", dwr.ErrMissingKey, keyContent)
	}

	rawMeal, ok := obj.String(keyMeal)
	if !ok {
		return menu.Menu{}, fmt.Errorf("%w: %s", dwr.ErrMissingKey, keyMeal)
	}
	meal, err := mealFromCode(rawMeal)
	if err != nil {
		return menu.Menu{}, err
	}

	day, err := obj.Int(keyWeekday)
	if err != nil {
		return menu.Menu{}, err
	}
	if day < 1 || day > 7 {
		return menu.Menu{}, fmt.Errorf("weekday out of range: %d", day)
	}

	m := menu.Menu{
		Weekday: time.Weekday(day - 1),
		Meal:    meal,
		Content: dwr.FormatText(content),
	}

	if raw, ok := obj.String(keyDate); ok {
		if date, err := time.ParseInLocation(dateLayout, raw, dateLocation); err == nil {
			m.Date = date
		}
	}

	if obj.Has(keyCalories) {
		calories, err := obj.Int(keyCalories)
		switch {
		case err != nil:
			slog.Debug("ignoring menu calories", "error", err)
		case calories > 0:
			m.Calories = calories
		}
	}

	if obs, ok := obj.String(keyObservation); ok {
		m.Observation = dwr.FormatText(obs)
	}

	return m, nil
}

func mealFromCode(code string) (menu.Meal, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "A":
		return menu.Lunch, nil
	case "J":
		return menu.Dinner, nil
	default:
		return "", fmt.Errorf("unknown meal code %q", code)
	}
}
