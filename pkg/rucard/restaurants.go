package rucard

import (
	"context"
	"log/slog"

	"github.com/mocno/bandex/pkg/defaults"
	cnserrors "github.com/mocno/bandex/pkg/errors"
	"github.com/mocno/bandex/pkg/menu"
)

// RestaurantInfo is a restaurant id with its name.
type RestaurantInfo struct {
	ID   menu.RestaurantID `json:"id" yaml:"id"`
	Name string            `json:"name" yaml:"name"`
}

// ListRestaurants probes restaurant ids from 'from' to 'to', inclusive, and
// stops at the first id the source does not know. Bounds outside the valid
// id range are clamped.
func (c *Client) ListRestaurants(ctx context.Context, from, to menu.RestaurantID) ([]RestaurantInfo, error) {
	from = max(from, defaults.MinRestaurantID)
	to = min(to, defaults.MaxRestaurantID)

	var found []RestaurantInfo
	for id := from; id <= to; id++ {
		name, err := c.RestaurantName(ctx, id)
		if err != nil {
			if cnserrors.IsCode(err, cnserrors.ErrCodeNotFound) {
				slog.Debug("restaurant scan finished", "last", int(id)-1)
				break
			}
			return found, err
		}
		found = append(found, RestaurantInfo{ID: id, Name: name})
	}

	return found, nil
}
