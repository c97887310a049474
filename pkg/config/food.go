package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/mocno/bandex/pkg/menu"
)

// Food is a food preference. A nil Restaurants applies everywhere; an empty
// non-nil list applies nowhere.
type Food struct {
	Name        string              `json:"name" yaml:"name" validate:"required"`
	Restaurants []menu.RestaurantID `json:"restaurants,omitempty" yaml:"restaurants,omitempty" validate:"omitempty,dive,min=1,max=100"`
}

// AppliesTo reports whether the preference covers restaurant id.
func (f Food) AppliesTo(id menu.RestaurantID) bool {
	if f.Restaurants == nil {
		return true
	}
	for _, r := range f.Restaurants {
		if r == id {
			return true
		}
	}
	return false
}

// UnmarshalYAML accepts either a plain name or a single-key mapping from
// the name to a list of restaurant ids.
func (f *Food) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return typeError(node, "food name must not be empty")
		}
		*f = Food{Name: node.Value}
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return typeError(node, "food must map exactly one name to a list of restaurant ids")
		}
		key, value := node.Content[0], node.Content[1]
		if key.Kind != yaml.ScalarNode {
			return typeError(key, "food name must be a string")
		}
		if value.Kind != yaml.SequenceNode {
			return typeError(value, "restaurants of food "+key.Value+" must be a list of ids")
		}
		ids := make([]menu.RestaurantID, 0, len(value.Content))
		if err := value.Decode(&ids); err != nil {
			return err
		}
		if ids == nil {
			ids = []menu.RestaurantID{}
		}
		*f = Food{Name: key.Value, Restaurants: ids}
		return nil
	default:
		return typeError(node, "food must be a name or a mapping of name to restaurant ids")
	}
}

// MarshalYAML writes the food in the same form it is read.
func (f Food) MarshalYAML() (any, error) {
	if f.Restaurants == nil {
		return f.Name, nil
	}
	ids := make([]int, len(f.Restaurants))
	for i, id := range f.Restaurants {
		ids[i] = int(id)
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
			flowSequence(ids),
		},
	}, nil
}

// MarshalJSON writes the food in the same form it is read.
func (f Food) MarshalJSON() ([]byte, error) {
	if f.Restaurants == nil {
		return json.Marshal(f.Name)
	}
	return json.Marshal(map[string][]menu.RestaurantID{f.Name: f.Restaurants})
}
