package tracker

import (
	"context"
	"fmt"

	"clementus360/daily-tracker/types"
)

func (t *Tracker) Settings() types.Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur.settings.Clone()
}

// SettingsUpdate lists the settings to change. Layout and analytics entries
// are merged one name at a time.
type SettingsUpdate struct {
	DarkMode  *bool
	Layout    map[string]any
	Analytics map[string]any
}

// UpdateSettings applies u as a single commit. An empty name rejects the
// whole update.
func (t *Tracker) UpdateSettings(ctx context.Context, u SettingsUpdate) error {
	for _, m := range []map[string]any{u.Layout, u.Analytics} {
		if _, ok := m[""]; ok {
			return fmt.Errorf("empty setting name: %w", types.ErrValidation)
		}
	}
	if u.DarkMode == nil && len(u.Layout) == 0 && len(u.Analytics) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	s := &t.cur.settings
	if u.DarkMode != nil {
		s.DarkMode = *u.DarkMode
	}
	s.Layout = mergePreferences(s.Layout, u.Layout)
	s.Analytics = mergePreferences(s.Analytics, u.Analytics)
	t.commitLocked(ctx, CategorySettings)
	return nil
}

func (t *Tracker) SetDarkMode(ctx context.Context, on bool) {
	_ = t.UpdateSettings(ctx, SettingsUpdate{DarkMode: &on})
}

func (t *Tracker) SetLayoutSetting(ctx context.Context, name string, value any) error {
	return t.UpdateSettings(ctx, SettingsUpdate{Layout: map[string]any{name: value}})
}

func (t *Tracker) SetAnalyticsSetting(ctx context.Context, name string, value any) error {
	return t.UpdateSettings(ctx, SettingsUpdate{Analytics: map[string]any{name: value}})
}

func mergePreferences(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for name, v := range src {
		dst[name] = v
	}
	return dst
}

// ViewMonth returns the year and 0-based month currently in view.
func (t *Tracker) ViewMonth() (year, month int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur.settings.CurrentYear, t.cur.settings.CurrentMonth
}

// NavigateMonth moves the view by delta months, wrapping across years.
// Navigation is view state and is not committed.
func (t *Tracker) NavigateMonth(delta int) (year, month int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := t.cur.settings.CurrentYear*12 + t.cur.settings.CurrentMonth + delta
	year, month = total/12, total%12
	if month < 0 {
		year, month = year-1, month+12
	}
	t.cur.settings.CurrentYear, t.cur.settings.CurrentMonth = year, month
	return year, month
}

func (t *Tracker) NavigateTo(year, month int) error {
	if month < 0 || month > 11 || year <= 0 {
		return fmt.Errorf("month %d of %d: %w", month, year, types.ErrInvalidDate)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur.settings.CurrentYear, t.cur.settings.CurrentMonth = year, month
	return nil
}

// NavigateToday moves the view to the current month.
func (t *Tracker) NavigateToday() (year, month int) {
	d := types.DateOf(t.now())
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur.settings.CurrentYear, t.cur.settings.CurrentMonth = d.Year, d.Month
	return d.Year, d.Month
}
