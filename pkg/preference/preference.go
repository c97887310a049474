// Package preference tags dishes with the user's food preferences.
package preference

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mocno/bandex/pkg/config"
	"github.com/mocno/bandex/pkg/menu"
)

// Tag is the preference assigned to a dish.
type Tag string

const (
	Neutral  Tag = "neutral"
	Liked    Tag = "liked"
	Disliked Tag = "disliked"
)

// Fold lowercases s and strips its diacritics, so "Feijão" and "FEIJAO"
// both fold to "feijao".
func Fold(s string) string {
	// Transformers keep state and must not be shared between goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(strings.Join(strings.Fields(stripped), " "))
}

type rule struct {
	name string
	food config.Food
}

// Matcher tags dishes against liked and disliked foods.
type Matcher struct {
	liked    []rule
	disliked []rule
}

// NewMatcher builds a Matcher from the configured food lists.
func NewMatcher(foods config.Foods) *Matcher {
	return &Matcher{
		liked:    compile(foods.Liked),
		disliked: compile(foods.Disliked),
	}
}

func compile(foods []config.Food) []rule {
	rules := make([]rule, 0, len(foods))
	for _, f := range foods {
		name := Fold(f.Name)
		if name == "" {
			continue
		}
		rules = append(rules, rule{name: name, food: f})
	}
	return rules
}

// Tag returns the preference for dish served at restaurant id. A dish
// matching both lists is Disliked.
func (m *Matcher) Tag(dish string, id menu.RestaurantID) Tag {
	folded := Fold(dish)
	if matches(m.disliked, folded, id) {
		return Disliked
	}
	if matches(m.liked, folded, id) {
		return Liked
	}
	return Neutral
}

// TagAll tags every dish.
func (m *Matcher) TagAll(dishes []string, id menu.RestaurantID) []Tag {
	tags := make([]Tag, len(dishes))
	for i, d := range dishes {
		tags[i] = m.Tag(d, id)
	}
	return tags
}

func matches(rules []rule, folded string, id menu.RestaurantID) bool {
	for _, r := range rules {
		if r.food.AppliesTo(id) && strings.Contains(folded, r.name) {
			return true
		}
	}
	return false
}
