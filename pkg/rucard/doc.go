// Package rucard is a client for the USP "rucard" menu service.
//
// The service is exposed through Direct Web Remoting calls on the
// CardapioControleDWR script:
//
//   - obterRestauranteUsp: restaurant details (name, phone)
//   - obterCardapioRestUSP: the menus of the current week, one object per
//     weekday and meal
//
// Menu objects carry, among others, the following fields:
//
//	cdpdia     menu content, lines separated by <br>
//	tiprfi     meal: "A" (almoço, lunch) or "J" (jantar, dinner)
//	diasemana  weekday: Sunday = 1 ... Saturday = 7
//	dtarfi     date of the meal, dd/mm/yyyy
//	vlrclorfi  calories, 0 when unknown
//	obscdpsmn  notes for the week
//	nomrtn     restaurant name (restaurant details only)
//
// Client implements menu.Fetcher:
//
//	c := rucard.New()
//	r, err := c.Fetch(ctx, 6)
package rucard
