package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                   string
	Title, Muted, Accent, Success, Error   string
	Groups                                 [4]string // glyphs for listId 1..4
	NoGroup                                string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		disableColor = false
		current = Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed,
			Groups:   [4]string{"❶", "❷", "❸", "❹"},
			NoGroup:  "◌",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
		}
	case "mono":
		disableColor = true
		current = Theme{
			Name:     "mono",
			Groups:   [4]string{"[1]", "[2]", "[3]", "[4]"},
			NoGroup:  "[-]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
		}
	default: // classic
		disableColor = false
		current = Theme{
			Name:  "classic",
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed,
			Groups:   [4]string{"①", "②", "③", "④"},
			NoGroup:  "○",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }

// GroupGlyph picks the marker for a listId; unknown groups share one.
func (t Theme) GroupGlyph(listID int) string {
	if listID >= 1 && listID <= len(t.Groups) {
		return t.Groups[listID-1]
	}
	return t.NoGroup
}
