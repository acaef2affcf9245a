package model

import (
	"fmt"
	"time"
)

// Timestamps audit columns shared by most tables.
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// ── time of day ──

// ClockLayout is the storage layout of TIME columns.
const ClockLayout = "15:04:05"

// ShortClockLayout is the wire layout of times.
const ShortClockLayout = "15:04"

// ParseClock parses "HH:MM" or "HH:MM:SS" and returns the offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	for _, layout := range []string{ClockLayout, ShortClockLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	// PostgreSQL may return TIME values with a date part through some drivers.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second, nil
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// NormalizeClock converts "HH:MM" or "HH:MM:SS" into "HH:MM:SS".
func NormalizeClock(s string) (string, error) {
	d, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return FormatClock(d, ClockLayout), nil
}

// FormatClock renders an offset from midnight with layout.
func FormatClock(d time.Duration, layout string) string {
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format(layout)
}

// ShortClock renders a stored time as "HH:MM"; malformed input is returned as is.
func ShortClock(s string) string {
	d, err := ParseClock(s)
	if err != nil {
		return s
	}
	return FormatClock(d, ShortClockLayout)
}

// ── dates ──

// DateLayout is the wire layout of DATE columns.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseOptionalDate parses s when non-empty.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatOptionalDate renders t as YYYY-MM-DD, or nil.
func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
