// Package menu holds the cafeteria domain model and the Menu Filter.
//
// A Restaurant carries the menus published for the current week, one per
// weekday and meal. A Selection describes which days and meals to show; it
// is computed from user flags and the current time by Select:
//
//	sel, err := menu.Select(menu.SelectOptions{Lunch: true}, time.Now())
//	for _, m := range menu.Filter(restaurant.Menus, sel) {
//	    fmt.Println(m.Weekday, m.Meal, m.Dishes())
//	}
//
// Menus are loaded through a Fetcher. Cache memoizes a Fetcher per
// restaurant, collapses concurrent lookups and warms many restaurants in
// parallel with Prefetch.
package menu
