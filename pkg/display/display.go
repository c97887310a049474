package display

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gookit/color"

	"github.com/mocno/bandex/pkg/config"
	"github.com/mocno/bandex/pkg/preference"
	"github.com/mocno/bandex/pkg/report"
)

const (
	h1Width = 50
	h2Width = 48
	h3Width = 46

	headerFill = '~'

	closedLine   = "   ✘ Fechado"
	dishPrefix   = "   ➤  "
	likedPrefix  = "   ♥  "
	hatedPrefix  = "   ✗  "
	errorPrefix  = "   Erro: "
	caloriesLine = "     Valor energético: %d kcal"
	obsLine      = "### Observação: %s ###"
)

// painter is implemented by every gookit color type.
type painter interface {
	Sprint(a ...any) string
}

var (
	weekdayColor painter = color.RGB(153, 153, 255)
	mealColor    painter = color.RGB(204, 153, 255)
	likedColor   painter = color.FgGreen
	hatedColor   painter = color.FgRed
)

var namedPainters = map[string]color.Color{
	config.Black:   color.FgBlack,
	config.Red:     color.FgRed,
	config.Green:   color.FgGreen,
	config.Yellow:  color.FgYellow,
	config.Blue:    color.FgBlue,
	config.Magenta: color.FgMagenta,
	config.Purple:  color.FgMagenta,
	config.Cyan:    color.FgCyan,
	config.White:   color.FgWhite,

	"bright_" + config.Black:   color.FgDarkGray,
	"bright_" + config.Red:     color.FgLightRed,
	"bright_" + config.Green:   color.FgLightGreen,
	"bright_" + config.Yellow:  color.FgLightYellow,
	"bright_" + config.Blue:    color.FgLightBlue,
	"bright_" + config.Magenta: color.FgLightMagenta,
	"bright_" + config.Purple:  color.FgLightMagenta,
	"bright_" + config.Cyan:    color.FgLightCyan,
	"bright_" + config.White:   color.FgLightWhite,
}

// painterFor maps a configured restaurant color to a terminal color.
func painterFor(c config.Color) painter {
	if c.IsRGB() {
		r, g, b := c.Components()
		return color.RGB(r, g, b)
	}
	if name, ok := c.Canonical(); ok {
		if p, ok := namedPainters[name]; ok {
			return p
		}
	}
	return color.FgWhite
}

// Renderer prints reports as text.
type Renderer struct {
	w       io.Writer
	color   bool
	logo    bool
	version string
}

// Option is a functional option for configuring Renderer instances.
type Option func(*Renderer)

// WithColor enables or disables ANSI colors.
func WithColor(enabled bool) Option {
	return func(r *Renderer) {
		r.color = enabled
	}
}

// WithLogo enables or disables the logo printed before the report.
func WithLogo(enabled bool) Option {
	return func(r *Renderer) {
		r.logo = enabled
	}
}

// WithVersion sets the version printed next to the logo.
func WithVersion(v string) Option {
	return func(r *Renderer) {
		r.version = v
	}
}

// NewRenderer creates a Renderer writing to w. Colors and the logo are
// enabled by default.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w, color: true, logo: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes rep to the renderer's writer.
func (r *Renderer) Render(rep *report.Report) error {
	var b strings.Builder

	if r.logo {
		b.WriteString(r.Logo())
		b.WriteString("\n")
	}

	for _, day := range rep.Days {
		r.line(&b, weekdayColor, header("# ", day.Name, h1Width, " #"))
		for _, meal := range day.Meals {
			r.line(&b, mealColor, header(" # ", meal.Title, h2Width, " # "))
			for _, e := range meal.Restaurants {
				r.entry(&b, e)
			}
		}
	}

	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func (r *Renderer) entry(b *strings.Builder, e report.Entry) {
	if e.Name != "" {
		r.line(b, painterFor(e.Color), header("  # ", e.Name, h3Width, " #  "))
	}

	switch {
	case e.Error != "":
		b.WriteString(errorPrefix + e.Error + "\n")
		return
	case e.Closed:
		b.WriteString(closedLine + "\n\n")
		return
	}

	b.WriteString("\n")
	for _, d := range e.Dishes {
		switch d.Preference {
		case preference.Liked:
			r.line(b, likedColor, likedPrefix+d.Name)
		case preference.Disliked:
			r.line(b, hatedColor, hatedPrefix+d.Name)
		default:
			b.WriteString(dishPrefix + d.Name + "\n")
		}
	}
	if e.Calories > 0 {
		b.WriteString("\n" + fmt.Sprintf(caloriesLine, e.Calories) + "\n")
	}
	if e.Observation != "" {
		b.WriteString("\n" + fmt.Sprintf(obsLine, e.Observation) + "\n")
	}
	b.WriteString("\n")
}

func (r *Renderer) line(b *strings.Builder, p painter, s string) {
	if r.color {
		s = p.Sprint(s)
	}
	b.WriteString(s)
	b.WriteString("\n")
}

// header wraps title in spaces, centers it in width using headerFill and
// surrounds it with left and right.
func header(left, title string, width int, right string) string {
	return left + center(" "+title+" ", width, headerFill) + right
}

// center pads s on both sides with fill up to width runes. When the
// padding is odd the extra rune goes to the right.
func center(s string, width int, fill rune) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	f := string(fill)
	return strings.Repeat(f, left) + s + strings.Repeat(f, pad-left)
}
