package display

import (
	"strings"

	"github.com/gookit/color"
)

// logoBackground is the 256-color background behind the logo.
const logoBackground uint8 = 0

// logoLetterColors holds one 256-color foreground per letter of "Bandex".
var logoLetterColors = [6]uint8{167, 185, 77, 68, 134, 170}

type logoPart struct {
	letter int
	text   string
}

// logoRows is the "Bandex" logo in the Doom figlet font, split per letter.
var logoRows = [][]logoPart{
	{{0, `  _____                    `}, {3, `_             `}},
	{{0, ` | ___ \                  `}, {3, `| |            `}},
	{{0, ` | |_/ /`}, {1, `  __ _ `}, {2, ` _ __  `}, {3, `  __| |`}, {4, `  ___ `}, {5, `__  __`}},
	{{0, ` | ___ \`}, {1, ` / _  |`}, {2, `|  _ \ `}, {3, ` / _  |`}, {4, ` / _ \`}, {5, `\ \/ /`}},
	{{0, ` | |_/ /`}, {1, `| (_| |`}, {2, `| | | |`}, {3, `| (_| |`}, {4, `|  __/ `}, {5, `>  < `}},
	{{0, ` |____/ `}, {1, ` \__,_|`}, {2, `|_| |_|`}, {3, ` \__,_|`}, {4, ` \___/`}, {5, `/_/\_\ `}},
}

// Logo returns the bandex logo, followed by the version when one is set.
func (r *Renderer) Logo() string {
	var b strings.Builder
	for i, row := range logoRows {
		for _, part := range row {
			text := part.text
			if i == len(logoRows)-1 && part.letter == len(logoLetterColors)-1 {
				text += r.version
			}
			if r.color {
				text = color.S256(logoLetterColors[part.letter], logoBackground).Sprint(text)
			}
			b.WriteString(text)
		}
		b.WriteString("\n")
	}
	return b.String()
}
