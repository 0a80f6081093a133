package types

import (
	"encoding/json"
	"fmt"
)

// Remote setting keys. Each one becomes a user_settings row.
const (
	SettingDarkMode  = "darkMode"
	SettingLayout    = "layoutSettings"
	SettingAnalytics = "analyticsSettings"
)

// SettingValues is the flat, row-shaped view of Settings: setting name to JSON value.
type SettingValues map[string]json.RawMessage

// Settings holds display preferences plus the calendar month being viewed.
// CurrentMonth and CurrentYear are view state: they travel with backups and
// exports but are not a Local Store entity.
type Settings struct {
	DarkMode     bool           `json:"darkMode"`
	Layout       map[string]any `json:"layoutSettings"`
	Analytics    map[string]any `json:"analyticsSettings"`
	CurrentMonth int            `json:"currentMonth"`
	CurrentYear  int            `json:"currentYear"`
}

func DefaultLayout() map[string]any {
	return map[string]any{
		"viewMode":  "today",
		"weekStart": "monday",
	}
}

func DefaultAnalytics() map[string]any {
	return map[string]any{
		"showRings": true,
		"ringSize":  float64(60),
	}
}

func (s Settings) Clone() Settings {
	out := s
	out.Layout = cloneValues(s.Layout)
	out.Analytics = cloneValues(s.Analytics)
	return out
}

// Values flattens the persisted preferences into setting rows.
func (s Settings) Values() (SettingValues, error) {
	out := SettingValues{}
	for key, v := range map[string]any{
		SettingDarkMode:  s.DarkMode,
		SettingLayout:    s.Layout,
		SettingAnalytics: s.Analytics,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", key, err)
		}
		out[key] = b
	}
	return out, nil
}

// Apply overwrites only the settings present in values. Unknown keys are
// returned so the caller can report them. On error s is left unchanged.
func (s *Settings) Apply(values SettingValues) ([]string, error) {
	next := s.Clone()
	var unknown []string
	for key, raw := range values {
		var err error
		switch key {
		case SettingDarkMode:
			err = json.Unmarshal(raw, &next.DarkMode)
		case SettingLayout:
			var m map[string]any
			if err = json.Unmarshal(raw, &m); err == nil {
				next.Layout = m
			}
		case SettingAnalytics:
			var m map[string]any
			if err = json.Unmarshal(raw, &m); err == nil {
				next.Analytics = m
			}
		default:
			unknown = append(unknown, key)
		}
		if err != nil {
			return unknown, fmt.Errorf("setting %s: %w", key, ErrParse)
		}
	}
	*s = next
	return unknown, nil
}

func cloneValues(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
