package view

// Colors are the accent colors of the display as CSS hex values
// ("#rgb", "#rrggbb"). The terminal display maps them onto its own palette.
type Colors struct {
	Accent      string `yaml:"accent"`
	Glow        string `yaml:"glow"`
	Timestamp   string `yaml:"timestamp"`
	ButtonStart string `yaml:"button_start"`
	ButtonEnd   string `yaml:"button_end"`
}

var DefaultColors = Colors{
	Accent:      "#ff4b4b",
	Glow:        "#FF00FF",
	Timestamp:   "#FFD700",
	ButtonStart: "#6a11cb",
	ButtonEnd:   "#2575fc",
}

// Merge returns c with every empty field taken from base.
func (c Colors) Merge(base Colors) Colors {
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return Colors{
		Accent:      pick(c.Accent, base.Accent),
		Glow:        pick(c.Glow, base.Glow),
		Timestamp:   pick(c.Timestamp, base.Timestamp),
		ButtonStart: pick(c.ButtonStart, base.ButtonStart),
		ButtonEnd:   pick(c.ButtonEnd, base.ButtonEnd),
	}
}

// IsHexColor reports whether s is a CSS hex color of 3, 4, 6 or 8 digits.
func IsHexColor(s string) bool {
	if len(s) < 2 || s[0] != '#' {
		return false
	}
	switch len(s) - 1 {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
