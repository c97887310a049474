package menu

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	cnserrors "github.com/mocno/bandex/pkg/errors"
)

// WorkWeek is the set of days shown when the whole week is requested.
var WorkWeek = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// weekdayAliases maps accepted day names to weekdays.
var weekdayAliases = map[string]time.Weekday{
	"seg": time.Monday, "segunda": time.Monday, "segunda-feira": time.Monday, "mon": time.Monday, "monday": time.Monday,
	"ter": time.Tuesday, "terca": time.Tuesday, "terça": time.Tuesday, "terca-feira": time.Tuesday, "terça-feira": time.Tuesday, "tue": time.Tuesday, "tuesday": time.Tuesday,
	"qua": time.Wednesday, "quarta": time.Wednesday, "quarta-feira": time.Wednesday, "wed": time.Wednesday, "wednesday": time.Wednesday,
	"qui": time.Thursday, "quinta": time.Thursday, "quinta-feira": time.Thursday, "thu": time.Thursday, "thursday": time.Thursday,
	"sex": time.Friday, "sexta": time.Friday, "sexta-feira": time.Friday, "fri": time.Friday, "friday": time.Friday,
	"sab": time.Saturday, "sáb": time.Saturday, "sabado": time.Saturday, "sábado": time.Saturday, "sat": time.Saturday, "saturday": time.Saturday,
	"dom": time.Sunday, "domingo": time.Sunday, "sun": time.Sunday, "sunday": time.Sunday,
}

// WeekdayName returns the Portuguese display name of d.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// WeekdayNumber returns the user facing number of d (Monday = 1 ... Sunday = 7).
func WeekdayNumber(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// ParseWeekday parses a weekday number (Monday = 1 ... Sunday = 7) or a day
// name in Portuguese or English.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 7 {
			return 0, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("weekday must be an integer between 1 (Monday) and 7 (Sunday), got %d", n))
		}
		return time.Weekday(n % 7), nil
	}

	if d, ok := weekdayAliases[s]; ok {
		return d, nil
	}

	msg := fmt.Sprintf("invalid weekday %q, use 1 (Monday) to 7 (Sunday) or a day name", s)
	if suggestion := closestWeekdayAlias(s); suggestion != "" {
		msg += fmt.Sprintf(", did you mean %q?", suggestion)
	}
	return 0, cnserrors.New(cnserrors.ErrCodeInvalidRequest, msg)
}

// closestWeekdayAlias returns the accepted name nearest to s, if any is close enough.
func closestWeekdayAlias(s string) string {
	if s == "" {
		return ""
	}

	names := make([]string, 0, len(weekdayAliases))
	for name := range weekdayAliases {
		names = append(names, name)
	}
	sort.Strings(names)

	best, bestDist := "", 3
	for _, name := range names {
		if d := levenshtein.ComputeDistance(s, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// WeekStart returns midnight of the Sunday starting the menu week of t, in
// the location of t.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, t.Location())
}
