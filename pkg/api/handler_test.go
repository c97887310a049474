package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocno/bandex/pkg/config"
	"github.com/mocno/bandex/pkg/menu"
	"github.com/mocno/bandex/pkg/report"
	"github.com/mocno/bandex/pkg/server"
)

// Monday, 10:00 local time: lunch is being served.
var mondayMorning = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

func testRestaurants() map[menu.RestaurantID]*menu.Restaurant {
	return map[menu.RestaurantID]*menu.Restaurant{
		6: {
			ID:   6,
			Name: "Central",
			Menus: []menu.Menu{
				{Weekday: time.Monday, Meal: menu.Lunch, Content: "Arroz\nStrogonoff de frango", Calories: 900},
				{Weekday: time.Monday, Meal: menu.Dinner, Content: "Fechado"},
				{Weekday: time.Tuesday, Meal: menu.Lunch, Content: "Fígado acebolado"},
				{Weekday: time.Tuesday, Meal: menu.Dinner, Content: "Sopa"},
			},
		},
	}
}

func newTestHandler(t *testing.T) (*Handler, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	restaurants := testRestaurants()
	src := menu.NewCache(menu.FetcherFunc(func(_ context.Context, id menu.RestaurantID) (*menu.Restaurant, error) {
		calls.Add(1)
		if r, ok := restaurants[id]; ok {
			return r, nil
		}
		return nil, errors.New("restaurant unavailable")
	}))

	cfg := &config.Config{
		Restaurants: []config.Restaurant{
			{ID: 6, Color: config.NamedColor("blue")},
			{ID: 9},
		},
		Foods: config.Foods{
			Liked:    []config.Food{{Name: "strogonoff"}},
			Disliked: []config.Food{{Name: "figado"}},
		},
	}

	return NewHandler(src, cfg, WithClock(func() time.Time { return mondayMorning })), &calls
}

func getMenus(t *testing.T, h *Handler, query string) (*httptest.ResponseRecorder, report.Report) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.HandleMenus(rec, httptest.NewRequest(http.MethodGet, "/v1/menus"+query, nil))

	var rep report.Report
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	}
	return rec, rep
}

func TestHandleMenus_Default(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, rep := getMenus(t, h, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	require.Len(t, rep.Days, 1)
	assert.Equal(t, 1, rep.Days[0].Number)
	assert.Equal(t, "Segunda-feira", rep.Days[0].Name)
	require.Len(t, rep.Days[0].Meals, 1)

	section := rep.Days[0].Meals[0]
	assert.Equal(t, menu.Lunch, section.Meal)
	require.Len(t, section.Restaurants, 2)

	central := section.Restaurants[0]
	assert.Equal(t, "Central", central.Name)
	assert.Equal(t, 900, central.Calories)
	require.Len(t, central.Dishes, 2)
	assert.Equal(t, "liked", string(central.Dishes[1].Preference))

	assert.NotEmpty(t, section.Restaurants[1].Error)
}

func TestHandleMenus_Query(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name  string
		query string
		days  int
		meals []menu.Meal
	}{
		{"weekday number", "?weekday=2", 1, []menu.Meal{menu.Lunch}},
		{"weekday name", "?weekday=terca", 1, []menu.Meal{menu.Lunch}},
		{"dinner", "?meal=dinner", 1, []menu.Meal{menu.Dinner}},
		{"both meals", "?meal=lunch&meal=jantar", 1, []menu.Meal{menu.Lunch, menu.Dinner}},
		{"everything", "?everything=true", 5, []menu.Meal{menu.Lunch, menu.Dinner}},
		{"everything dinner", "?everything=1&meal=dinner", 5, []menu.Meal{menu.Dinner}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, rep := getMenus(t, h, tt.query)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			require.Len(t, rep.Days, tt.days)

			var meals []menu.Meal
			for _, s := range rep.Days[0].Meals {
				meals = append(meals, s.Meal)
			}
			assert.Equal(t, tt.meals, meals)
		})
	}
}

func TestHandleMenus_Closed(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, rep := getMenus(t, h, "?meal=dinner")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, rep.Days[0].Meals[0].Restaurants[0].Closed)
}

func TestHandleMenus_InvalidQuery(t *testing.T) {
	h, calls := newTestHandler(t)

	tests := []struct {
		name  string
		query string
	}{
		{"weekday out of range", "?weekday=8"},
		{"unknown weekday", "?weekday=funday"},
		{"unknown meal", "?meal=breakfast"},
		{"bad boolean", "?everything=maybe"},
		{"weekday with everything", "?weekday=1&everything=true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := getMenus(t, h, tt.query)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp server.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "INVALID_REQUEST", resp.Code)
			assert.False(t, resp.Retryable)
		})
	}
	assert.Zero(t, calls.Load())
}

func TestHandleMenus_MethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleMenus(rec, httptest.NewRequest(http.MethodPost, "/v1/menus", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestHandleMenus_Canceled(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	h.HandleMenus(rec, httptest.NewRequest(http.MethodGet, "/v1/menus", nil).WithContext(ctx))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestHandleRestaurants(t *testing.T) {
	h, calls := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleRestaurants(rec, httptest.NewRequest(http.MethodGet, "/v1/restaurants", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RestaurantsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []RestaurantStatus{
		{ID: 6, Name: "Central", Color: "blue"},
		{ID: 9, Color: "white", Error: "restaurant unavailable"},
	}, resp.Restaurants)

	// Served from the cache.
	h.HandleRestaurants(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/restaurants", nil))
	assert.Equal(t, int32(2), calls.Load())
}

func TestRoutes(t *testing.T) {
	h, _ := newTestHandler(t)

	routes := h.Routes()
	assert.Len(t, routes, 2)
	assert.Contains(t, routes, "/v1/menus")
	assert.Contains(t, routes, "/v1/restaurants")
}
