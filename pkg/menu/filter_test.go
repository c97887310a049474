package menu

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wednesdayAt returns a Wednesday (2025-03-05) at the given clock time.
func wednesdayAt(h, m, s int) time.Time {
	return time.Date(2025, time.March, 5, h, m, s, 0, time.Local)
}

func weekdayPtr(d time.Weekday) *time.Weekday {
	return &d
}

func TestMealsForTime(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want []Meal
	}{
		{"before breakfast", wednesdayAt(5, 31, 47), []Meal{Lunch, Dinner}},
		{"exactly six", wednesdayAt(6, 0, 0), []Meal{Lunch, Dinner}},
		{"half a second past six", wednesdayAt(6, 0, 0).Add(500 * time.Millisecond), []Meal{Lunch}},
		{"morning", wednesdayAt(6, 11, 32), []Meal{Lunch}},
		{"before two", wednesdayAt(13, 52, 19), []Meal{Lunch}},
		{"exactly two", wednesdayAt(14, 0, 0), []Meal{Dinner}},
		{"afternoon", wednesdayAt(14, 35, 12), []Meal{Dinner}},
		{"evening", wednesdayAt(19, 49, 41), []Meal{Dinner}},
		{"just before eight", wednesdayAt(19, 59, 59).Add(999 * time.Millisecond), []Meal{Dinner}},
		{"night", wednesdayAt(20, 12, 19), []Meal{Lunch, Dinner}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MealsForTime(tt.at))
		})
	}
}

func TestSelect(t *testing.T) {
	noon := wednesdayAt(12, 0, 0)

	tests := []struct {
		name    string
		opts    SelectOptions
		now     time.Time
		want    Selection
		wantErr bool
	}{
		{
			name: "defaults follow the clock and today",
			now:  noon,
			want: Selection{Days: []time.Weekday{time.Wednesday}, Meals: []Meal{Lunch}},
		},
		{
			name: "defaults at night show both meals",
			now:  wednesdayAt(22, 0, 0),
			want: Selection{Days: []time.Weekday{time.Wednesday}, Meals: []Meal{Lunch, Dinner}},
		},
		{
			name: "dinner only",
			opts: SelectOptions{Dinner: true},
			now:  noon,
			want: Selection{Days: []time.Weekday{time.Wednesday}, Meals: []Meal{Dinner}},
		},
		{
			name: "lunch and dinner",
			opts: SelectOptions{Lunch: true, Dinner: true},
			now:  noon,
			want: Selection{Days: []time.Weekday{time.Wednesday}, Meals: []Meal{Lunch, Dinner}},
		},
		{
			name: "specific weekday",
			opts: SelectOptions{Lunch: true, Weekday: weekdayPtr(time.Tuesday)},
			now:  noon,
			want: Selection{Days: []time.Weekday{time.Tuesday}, Meals: []Meal{Lunch}},
		},
		{
			name: "everything shows the work week and both meals",
			opts: SelectOptions{Everything: true},
			now:  noon,
			want: Selection{Days: WorkWeek, Meals: []Meal{Lunch, Dinner}},
		},
		{
			name: "everything with a meal flag",
			opts: SelectOptions{Everything: true, Dinner: true},
			now:  noon,
			want: Selection{Days: WorkWeek, Meals: []Meal{Dinner}},
		},
		{
			name:    "weekday conflicts with everything",
			opts:    SelectOptions{Everything: true, Weekday: weekdayPtr(time.Monday)},
			now:     noon,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.opts, tt.now)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Select() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	menus := []Menu{
		{Weekday: time.Monday, Meal: Lunch, Content: "mon lunch"},
		{Weekday: time.Monday, Meal: Dinner, Content: "mon dinner"},
		{Weekday: time.Tuesday, Meal: Dinner, Content: "tue dinner"},
		{Weekday: time.Tuesday, Meal: Lunch, Content: "tue lunch"},
		{Weekday: time.Sunday, Meal: Lunch, Content: "sun lunch"},
	}

	sel := Selection{Days: []time.Weekday{time.Tuesday, time.Monday}, Meals: []Meal{Lunch, Dinner}}
	got := Filter(menus, sel)

	contents := make([]string, 0, len(got))
	for _, m := range got {
		contents = append(contents, m.Content)
	}
	assert.Equal(t, []string{"tue lunch", "tue dinner", "mon lunch", "mon dinner"}, contents)
	assert.Empty(t, Filter(menus, Selection{Days: []time.Weekday{time.Friday}, Meals: AllMeals}))
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr string
	}{
		{in: "1", want: time.Monday},
		{in: "2", want: time.Tuesday},
		{in: "3", want: time.Wednesday},
		{in: "4", want: time.Thursday},
		{in: "5", want: time.Friday},
		{in: "6", want: time.Saturday},
		{in: "7", want: time.Sunday},
		{in: " Segunda ", want: time.Monday},
		{in: "sábado", want: time.Saturday},
		{in: "fri", want: time.Friday},
		{in: "0", wantErr: "between 1 (Monday) and 7 (Sunday)"},
		{in: "8", wantErr: "between 1 (Monday) and 7 (Sunday)"},
		{in: "qunta", wantErr: "did you mean \"quinta\"?"},
		{in: "xyzzyzzy", wantErr: "invalid weekday"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdayNumberRoundTrip(t *testing.T) {
	for n := 1; n <= 7; n++ {
		d, err := ParseWeekday(string(rune('0' + n)))
		require.NoError(t, err)
		assert.Equal(t, n, WeekdayNumber(d))
		assert.NotEmpty(t, WeekdayName(d))
	}
}

func TestParseMeal(t *testing.T) {
	for _, in := range []string{"lunch", "Almoço", "almoco", "a"} {
		m, err := ParseMeal(in)
		require.NoError(t, err, in)
		assert.Equal(t, Lunch, m)
	}
	for _, in := range []string{"dinner", "JANTAR", "j"} {
		m, err := ParseMeal(in)
		require.NoError(t, err, in)
		assert.Equal(t, Dinner, m)
	}
	_, err := ParseMeal("breakfast")
	assert.Error(t, err)

	assert.Equal(t, "Almoço", Lunch.Title())
	assert.Equal(t, "Jantar", Dinner.Title())
}

func TestMenuDishesAndClosed(t *testing.T) {
	m := Menu{Content: "Arroz, feijão\n  Carne em cubos \n\nSalada\n"}
	assert.Equal(t, []string{"Arroz, feijão", "Carne em cubos", "Salada"}, m.Dishes())
	assert.False(t, m.Closed())

	assert.True(t, Menu{Content: " Fechado "}.Closed())
}

func TestRestaurantLookup(t *testing.T) {
	r := &Restaurant{ID: 6, Menus: []Menu{
		{Weekday: time.Monday, Meal: Lunch, Content: "a"},
		{Weekday: time.Monday, Meal: Dinner, Content: "b"},
	}}

	m, ok := r.Lookup(time.Monday, Dinner)
	require.True(t, ok)
	assert.Equal(t, "b", m.Content)

	_, ok = r.Lookup(time.Friday, Lunch)
	assert.False(t, ok)
}

func TestWeekStart(t *testing.T) {
	sunday := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"sunday midnight", sunday, sunday},
		{"sunday evening", sunday.Add(20 * time.Hour), sunday},
		{"wednesday", time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC), sunday},
		{"saturday night", time.Date(2025, time.March, 8, 23, 59, 0, 0, time.UTC), sunday},
		{"across months", time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC), time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(WeekStart(tt.in)), "got %s", WeekStart(tt.in))
		})
	}
}
