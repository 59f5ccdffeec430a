// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("RAINWATER_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	// Check for terminals known to commonly have Nerd Fonts
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// iTerm2, Alacritty, WezTerm, Kitty typically have Nerd Fonts
	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	// Check for common Nerd Font environment indicators
	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	// Default to Unicode fallback for maximum compatibility
	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Status indicators
	CheckOK  = Icon{"\uf058", "✓"} // nf-fa-check_circle
	Warning  = Icon{"\uf071", "⚠"} // nf-fa-warning
	Critical = Icon{"\uf057", "✗"} // nf-fa-times_circle
	Info     = Icon{"\uf05a", "ℹ"} // nf-fa-info_circle

	// Trends
	TrendUp   = Icon{"\U000f0535", "↗"} // nf-md-trending_up
	TrendDown = Icon{"\U000f0533", "↘"} // nf-md-trending_down
	TrendFlat = Icon{"\U000f0534", "→"} // nf-md-trending_neutral

	// Domain
	App      = Icon{"\U000f058c", "◈"} // nf-md-water
	Rain     = Icon{"\U000f0597", "☂"} // nf-md-weather_pouring
	Location = Icon{"\U000f034e", "⌖"} // nf-md-map_marker
	Tank     = Icon{"\U000f01bc", "▮"} // nf-md-database
	Cost     = Icon{"\U000f0116", "₹"} // nf-md-cash
)

// ForTrend maps a forecast trend name to its arrow.
func ForTrend(trend string) Icon {
	switch trend {
	case "rising":
		return TrendUp
	case "falling":
		return TrendDown
	default:
		return TrendFlat
	}
}
