package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

// Color names accepted in the configuration. Each of them may be prefixed
// with "bright " or "bright_".
const (
	Black   = "black"
	Red     = "red"
	Green   = "green"
	Yellow  = "yellow"
	Blue    = "blue"
	Magenta = "magenta"
	Purple  = "purple"
	Cyan    = "cyan"
	White   = "white"

	brightPrefix = "bright_"
)

var baseColorNames = []string{Black, Red, Green, Yellow, Blue, Magenta, Purple, Cyan, White}

// ColorNames returns every accepted color name in canonical form.
func ColorNames() []string {
	names := make([]string, 0, 2*len(baseColorNames))
	names = append(names, baseColorNames...)
	for _, n := range baseColorNames {
		names = append(names, brightPrefix+n)
	}
	return names
}

// Color is a restaurant display color: either a named terminal color or an
// RGB triple. The zero value means the default color, white.
type Color struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" validate:"omitempty,colorname"`
	RGB  []int  `json:"rgb,omitempty" yaml:"rgb,omitempty" validate:"omitempty,len=3,dive,min=0,max=255"`
}

// NamedColor returns a Color for name.
func NamedColor(name string) Color {
	return Color{Name: name}
}

// RGBColor returns a Color for the given components.
func RGBColor(r, g, b uint8) Color {
	return Color{RGB: []int{int(r), int(g), int(b)}}
}

// IsZero reports whether no color was configured.
func (c Color) IsZero() bool {
	return c.Name == "" && len(c.RGB) == 0
}

// IsRGB reports whether c is an RGB triple.
func (c Color) IsRGB() bool {
	return len(c.RGB) > 0
}

// Canonical returns the normalized color name, "white" for the zero value.
// The second result is false when the name is not a known color.
func (c Color) Canonical() (string, bool) {
	if c.IsZero() {
		return White, true
	}
	return canonicalColorName(c.Name)
}

// Components returns the RGB components of an RGB color.
func (c Color) Components() (r, g, b uint8) {
	if len(c.RGB) != 3 {
		return 255, 255, 255
	}
	return uint8(c.RGB[0]), uint8(c.RGB[1]), uint8(c.RGB[2])
}

func (c Color) String() string {
	if c.IsRGB() {
		return fmt.Sprint(c.RGB)
	}
	if name, ok := c.Canonical(); ok {
		return name
	}
	return c.Name
}

// canonicalColorName lowercases name and turns "bright x" into "bright_x".
func canonicalColorName(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.Join(strings.Fields(n), " ")
	if rest, ok := strings.CutPrefix(n, "bright "); ok {
		n = brightPrefix + rest
	}
	for _, known := range ColorNames() {
		if n == known {
			return n, true
		}
	}
	return n, false
}

// suggestColor returns the known color name closest to name, or "" when
// nothing is close enough.
func suggestColor(name string) string {
	n, _ := canonicalColorName(name)
	best, bestDist := "", 3
	for _, known := range ColorNames() {
		if d := levenshtein.ComputeDistance(n, known); d < bestDist {
			best, bestDist = known, d
		}
	}
	return best
}

// UnmarshalYAML accepts a color name or a sequence of RGB components.
// Range checks are left to Validate.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*c = Color{}
			return nil
		}
		*c = Color{Name: node.Value}
		return nil
	case yaml.SequenceNode:
		var rgb []int
		if err := node.Decode(&rgb); err != nil {
			return err
		}
		*c = Color{RGB: rgb}
		return nil
	default:
		return typeError(node, "color must be a name or a list of 3 RGB components")
	}
}

// MarshalYAML writes the color in the same form it is read.
func (c Color) MarshalYAML() (any, error) {
	if c.IsRGB() {
		return flowSequence(c.RGB), nil
	}
	if c.Name == "" {
		return nil, nil
	}
	return c.Name, nil
}

// MarshalJSON writes the color as a name or an array of components.
func (c Color) MarshalJSON() ([]byte, error) {
	if c.IsRGB() {
		return json.Marshal(c.RGB)
	}
	if c.Name == "" {
		return []byte("null"), nil
	}
	return json.Marshal(c.Name)
}

// flowSequence renders ints as an inline YAML list.
func flowSequence(values []int) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range values {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return n
}

func typeError(node *yaml.Node, msg string) error {
	return &yaml.TypeError{Errors: []string{fmt.Sprintf("line %d: %s", node.Line, msg)}}
}
