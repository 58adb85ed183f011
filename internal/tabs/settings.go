package tabs

import (
	"fmt"
	"strings"
)

// Mode selects the Bootstrap toggle style.
type Mode string

const (
	ModeTab  Mode = "tab"
	ModePill Mode = "pill"
)

// ParseMode maps a configuration value onto a Mode, defaulting to ModeTab.
func ParseMode(value string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(value))) == ModePill {
		return ModePill
	}
	return ModeTab
}

// Settings enumerates the formatter options.
type Settings struct {
	Vertical bool
	Mode     Mode
	// HideEmpty omits tabs whose type has no items.
	HideEmpty bool
	// HeaderText and FooterText are inline templates rendered around each item.
	HeaderText     string
	FooterText     string
	CustomClass    string
	HideOperations bool
}

// DefaultSettings mirrors the formatter's install-time defaults.
func DefaultSettings() Settings {
	return Settings{
		Vertical: true,
		Mode:     ModeTab,
	}
}

// Direction is "vertical" or "horizontal".
func (s Settings) Direction() string {
	if s.Vertical {
		return "vertical"
	}
	return "horizontal"
}

// EffectiveMode applies the rule that vertical tabs always render as pills.
func (s Settings) EffectiveMode() Mode {
	if s.Vertical {
		return ModePill
	}
	if s.Mode == "" {
		return ModeTab
	}
	return s.Mode
}

// Summary lists the human readable lines shown next to the field settings.
func (s Settings) Summary() []string {
	var lines []string
	if s.Vertical {
		lines = append(lines, "Tabs mode vertical")
	}
	if s.HideEmpty {
		lines = append(lines, "Hide empty content")
	}
	if class := strings.TrimSpace(s.CustomClass); class != "" {
		lines = append(lines, fmt.Sprintf("Custom class: %s", class))
	}
	if s.HideOperations {
		lines = append(lines, "Hide line operations.")
	}
	return lines
}

// Configurable is implemented by components exposing formatter settings.
type Configurable interface {
	Settings() Settings
	Summary() []string
	DefaultSettings() Settings
}
