package locallink

import "fmt"

// ThemeMode selects between the light and dark palettes.
type ThemeMode string

const (
	ThemeDark  ThemeMode = "dark"
	ThemeLight ThemeMode = "light"
)

// Toggle returns the opposite mode.
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ParseThemeMode parses "dark" or "light". Empty input yields ThemeDark.
func ParseThemeMode(s string) (ThemeMode, error) {
	switch ThemeMode(s) {
	case "", ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	default:
		return "", fmt.Errorf("unknown theme %q: must be \"dark\" or \"light\"", s)
	}
}

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values. A negative
// index means no color.
type Theme struct {
	UserMsg    int // User label accent
	BotMsg     int // Bot label accent
	Error      int // Error messages
	Muted      int // Timestamps, status bar, placeholders
	Accent     int // Headings, links
	HeaderFg   int // Header text
	HeaderBg   int // Header background
	QuickReply int // Quick-reply chips
	CodeBg     int // Code block background
}

// DarkTheme returns the palette for dark terminals.
func DarkTheme() Theme {
	return Theme{
		UserMsg:    12,
		BotMsg:     10,
		Error:      9,
		Muted:      8,
		Accent:     13,
		HeaderFg:   15,
		HeaderBg:   4,
		QuickReply: 14,
		CodeBg:     0,
	}
}

// LightTheme returns the palette for light terminals.
func LightTheme() Theme {
	return Theme{
		UserMsg:    4,
		BotMsg:     2,
		Error:      1,
		Muted:      8,
		Accent:     5,
		HeaderFg:   0,
		HeaderBg:   6,
		QuickReply: 6,
		CodeBg:     7,
	}
}

// ThemeFor returns the palette for mode.
func ThemeFor(mode ThemeMode) Theme {
	if mode == ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}
